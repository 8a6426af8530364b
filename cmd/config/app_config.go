package config

import (
	"context"
	"os"
	"time"

	"github.com/BalajiReddy1/FreshTrack/internal/api/handlers"
	"github.com/BalajiReddy1/FreshTrack/internal/api/routes"
	"github.com/BalajiReddy1/FreshTrack/internal/middleware"
	"github.com/BalajiReddy1/FreshTrack/internal/utils"
	"github.com/BalajiReddy1/FreshTrack/pkg/alert"
	"github.com/BalajiReddy1/FreshTrack/pkg/category"
	"github.com/BalajiReddy1/FreshTrack/pkg/dashboard"
	"github.com/BalajiReddy1/FreshTrack/pkg/product"
	"github.com/BalajiReddy1/FreshTrack/pkg/query"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

// NewApp wires the engine behind its HTTP shell. The shell stays thin: every
// piece of logic lives in pkg/, the handlers only translate requests.
func NewApp(ctx context.Context, db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        50,
		Expiration: 1 * time.Second,
	}))

	// Repository
	productRepository := product.NewProductRepository(db)
	categoryRepository := category.NewCategoryRepository(db)

	// Service
	productService := product.NewProductService(productRepository)
	categoryService := category.NewCategoryService(categoryRepository)
	queryService := query.NewQueryService(ctx, productRepository)
	dashboardService := dashboard.NewDashboardService(productRepository)

	// Notification scheduler (delivery stubbed: alerts go to the log)
	scheduler := alert.NewScheduler(
		productRepository,
		alert.LogNotifier{},
		time.Duration(utils.GetConfigInt("NOTIFICATION_INTERVAL_MINUTES"))*time.Minute,
		utils.GetConfigInt("NOTIFICATION_DAYS"),
	)
	go scheduler.Start(ctx)

	// Handler
	productHandler := handlers.NewProductHandler(productService, queryService, validator)
	categoryHandler := handlers.NewCategoryHandler(categoryService, validator)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// routes
	routesConfig := routes.Config{
		App:              app,
		ProductHandler:   productHandler,
		CategoryHandler:  categoryHandler,
		DashboardHandler: dashboardHandler,
		Middleware:       middlewares,
	}
	routesConfig.Setup()
	return app, nil
}
