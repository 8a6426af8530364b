package handlers

import (
	"errors"
	"strconv"
	"time"

	"github.com/BalajiReddy1/FreshTrack/domain"
	"github.com/BalajiReddy1/FreshTrack/internal/api/presenters"
	"github.com/BalajiReddy1/FreshTrack/pkg/product"
	"github.com/BalajiReddy1/FreshTrack/pkg/query"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	ProductHandler interface {
		AddProduct(c *fiber.Ctx) error
		UpdateProduct(c *fiber.Ctx) error
		DeleteProduct(c *fiber.Ctx) error
		GetProducts(c *fiber.Ctx) error
		GetProductDetails(c *fiber.Ctx) error
		GetProductByBarcode(c *fiber.Ctx) error
		GetExpiringProducts(c *fiber.Ctx) error
		MarkAsConsumed(c *fiber.Ctx) error
		MarkAsDiscarded(c *fiber.Ctx) error
		UpdateProductView(c *fiber.Ctx) error
	}

	productHandler struct {
		productService product.ProductService
		queryService   query.QueryService
		validator      *validator.Validate
	}
)

func NewProductHandler(productService product.ProductService, queryService query.QueryService, validator *validator.Validate) ProductHandler {
	return &productHandler{
		productService: productService,
		queryService:   queryService,
		validator:      validator,
	}
}

func (h *productHandler) AddProduct(c *fiber.Ctx) error {
	req := new(domain.AddProductRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddProduct, err)
	}

	res, err := h.productService.AddProduct(c.Context(), *req)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAddProduct, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessAddProduct)
}

func (h *productHandler) UpdateProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	req := new(domain.UpdateProductRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateProduct, err)
	}

	res, err := h.productService.UpdateProduct(c.Context(), productID, *req)
	if err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, domain.ErrProductNotFound) {
			status = fiber.StatusNotFound
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedUpdateProduct, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessUpdateProduct)
}

func (h *productHandler) DeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")

	if err := h.productService.DeleteProduct(c.Context(), productID); err != nil {
		status := fiber.StatusBadRequest
		if errors.Is(err, domain.ErrProductNotFound) {
			status = fiber.StatusNotFound
		}
		return presenters.ErrorResponse(c, status, domain.MessageFailedDeleteProduct, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteProduct)
}

// GetProducts serves the current derived list view: the live active-products
// stream filtered and sorted per the view state set via UpdateProductView.
func (h *productHandler) GetProducts(c *fiber.Ctx) error {
	sub := h.queryService.WatchProducts()
	defer sub.Close()

	select {
	case products := <-sub.C:
		now := time.Now()
		responses := make([]domain.ProductResponse, 0, len(products))
		for _, p := range products {
			responses = append(responses, domain.NewProductResponse(p, now))
		}
		return presenters.SuccessResponse(c, responses, fiber.StatusOK, domain.MessageSuccessGetProducts)
	case <-time.After(5 * time.Second):
		return presenters.ErrorResponse(c, fiber.StatusServiceUnavailable, domain.MessageFailedGetProducts, nil)
	}
}

func (h *productHandler) GetProductDetails(c *fiber.Ctx) error {
	productID := c.Params("id")

	res, err := h.productService.GetProductByID(c.Context(), productID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetProduct, err)
	}
	if res == nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetProduct, domain.ErrProductNotFound)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProduct)
}

func (h *productHandler) GetProductByBarcode(c *fiber.Ctx) error {
	barcode := c.Params("barcode")

	res, err := h.productService.GetProductByBarcode(c.Context(), barcode)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetProduct, err)
	}
	if res == nil {
		return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetProduct, domain.ErrProductNotFound)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetProduct)
}

func (h *productHandler) GetExpiringProducts(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days", "7"))
	if err != nil || days < 0 {
		days = 7
	}

	res, err := h.productService.GetExpiringProducts(c.Context(), days)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetExpiring, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetExpiring)
}

func (h *productHandler) MarkAsConsumed(c *fiber.Ctx) error {
	productID := c.Params("id")

	if err := h.productService.MarkAsConsumed(c.Context(), productID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMarkConsumed, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMarkConsumed)
}

func (h *productHandler) MarkAsDiscarded(c *fiber.Ctx) error {
	productID := c.Params("id")

	if err := h.productService.MarkAsDiscarded(c.Context(), productID); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedMarkDiscarded, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessMarkDiscarded)
}

// UpdateProductView sets the list view's filter, sort, and selected category.
func (h *productHandler) UpdateProductView(c *fiber.Ctx) error {
	if filter := c.Query("filter"); filter != "" {
		h.queryService.SetFilter(domain.ProductFilter(filter))
	}
	if sortBy := c.Query("sort"); sortBy != "" {
		h.queryService.SetSort(domain.ProductSort(sortBy))
	}
	if category := c.Query("category"); category != "" {
		h.queryService.SelectCategory(&category)
	}

	filter, sortBy, category := h.queryService.View()
	return presenters.SuccessResponse(c, fiber.Map{
		"filter":   filter,
		"sort":     sortBy,
		"category": category,
	}, fiber.StatusOK, domain.MessageSuccessUpdateView)
}
