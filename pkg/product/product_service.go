package product

import (
	"context"
	"strings"
	"time"

	"github.com/BalajiReddy1/FreshTrack/domain"
	"github.com/google/uuid"
)

type (
	// ProductService implements the add/edit/lifecycle flows on top of the
	// repository. Validation happens here, before any write reaches storage.
	ProductService interface {
		AddProduct(ctx context.Context, req domain.AddProductRequest) (domain.ProductResponse, error)
		UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest) (domain.ProductResponse, error)
		DeleteProduct(ctx context.Context, id string) error
		GetProductByID(ctx context.Context, id string) (*domain.ProductResponse, error)
		GetProductByBarcode(ctx context.Context, barcode string) (*domain.ProductResponse, error)
		GetExpiringProducts(ctx context.Context, daysThreshold int) ([]domain.ProductResponse, error)
		MarkAsConsumed(ctx context.Context, id string) error
		MarkAsDiscarded(ctx context.Context, id string) error
	}

	productService struct {
		productRepository ProductRepository
		now               func() time.Time
	}
)

func NewProductService(productRepository ProductRepository) ProductService {
	return &productService{
		productRepository: productRepository,
		now:               time.Now,
	}
}

func (s *productService) AddProduct(ctx context.Context, req domain.AddProductRequest) (domain.ProductResponse, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return domain.ProductResponse{}, domain.ErrProductNameRequired
	}
	if req.ExpiryDate <= 0 {
		return domain.ProductResponse{}, domain.ErrExpiryDateRequired
	}

	quantity := req.Quantity
	if quantity < 1 {
		quantity = 1
	}
	notificationEnabled := true
	if req.NotificationEnabled != nil {
		notificationEnabled = *req.NotificationEnabled
	}

	now := s.now()
	product := domain.Product{
		ID:                  uuid.New().String(),
		Name:                name,
		Barcode:             strings.TrimSpace(req.Barcode),
		Category:            req.Category,
		ExpiryDate:          req.ExpiryDate,
		AddedDate:           now.UnixMilli(),
		Quantity:            quantity,
		Notes:               req.Notes,
		ImageURI:            req.ImageURI,
		NotificationEnabled: notificationEnabled,
	}

	if err := s.productRepository.InsertProduct(ctx, product); err != nil {
		return domain.ProductResponse{}, err
	}
	return domain.NewProductResponse(product, now), nil
}

func (s *productService) UpdateProduct(ctx context.Context, id string, req domain.UpdateProductRequest) (domain.ProductResponse, error) {
	product, err := s.productRepository.GetProductByIDOnce(ctx, id)
	if err != nil {
		return domain.ProductResponse{}, err
	}
	if product == nil {
		return domain.ProductResponse{}, domain.ErrProductNotFound
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return domain.ProductResponse{}, domain.ErrProductNameRequired
		}
		product.Name = name
	}
	if req.Barcode != nil {
		product.Barcode = strings.TrimSpace(*req.Barcode)
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.ExpiryDate != nil {
		if *req.ExpiryDate <= 0 {
			return domain.ProductResponse{}, domain.ErrExpiryDateRequired
		}
		product.ExpiryDate = *req.ExpiryDate
	}
	if req.Quantity != nil {
		product.Quantity = *req.Quantity
	}
	if req.Notes != nil {
		product.Notes = *req.Notes
	}
	if req.ImageURI != nil {
		product.ImageURI = *req.ImageURI
	}
	if req.NotificationEnabled != nil {
		product.NotificationEnabled = *req.NotificationEnabled
	}

	// Quantity never drops below 1, whatever the caller sent.
	if product.Quantity < 1 {
		product.Quantity = 1
	}

	if err := s.productRepository.UpdateProduct(ctx, *product); err != nil {
		return domain.ProductResponse{}, err
	}
	return domain.NewProductResponse(*product, s.now()), nil
}

func (s *productService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.productRepository.GetProductByIDOnce(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	return s.productRepository.DeleteProduct(ctx, id)
}

func (s *productService) GetProductByID(ctx context.Context, id string) (*domain.ProductResponse, error) {
	product, err := s.productRepository.GetProductByIDOnce(ctx, id)
	if err != nil || product == nil {
		return nil, err
	}
	res := domain.NewProductResponse(*product, s.now())
	return &res, nil
}

func (s *productService) GetProductByBarcode(ctx context.Context, barcode string) (*domain.ProductResponse, error) {
	product, err := s.productRepository.GetProductByBarcode(ctx, barcode)
	if err != nil || product == nil {
		return nil, err
	}
	res := domain.NewProductResponse(*product, s.now())
	return &res, nil
}

func (s *productService) GetExpiringProducts(ctx context.Context, daysThreshold int) ([]domain.ProductResponse, error) {
	if daysThreshold < 0 {
		return nil, domain.ErrInvalidDaysAhead
	}
	products, err := s.productRepository.GetExpiringProducts(ctx, daysThreshold)
	if err != nil {
		return nil, err
	}
	now := s.now()
	responses := make([]domain.ProductResponse, 0, len(products))
	for _, p := range products {
		responses = append(responses, domain.NewProductResponse(p, now))
	}
	return responses, nil
}

func (s *productService) MarkAsConsumed(ctx context.Context, id string) error {
	return s.productRepository.MarkAsConsumed(ctx, id)
}

func (s *productService) MarkAsDiscarded(ctx context.Context, id string) error {
	return s.productRepository.MarkAsDiscarded(ctx, id)
}
