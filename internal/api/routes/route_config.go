package routes

import (
	"github.com/BalajiReddy1/FreshTrack/internal/api/handlers"
	"github.com/BalajiReddy1/FreshTrack/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App              *fiber.App
	ProductHandler   handlers.ProductHandler
	CategoryHandler  handlers.CategoryHandler
	DashboardHandler handlers.DashboardHandler
	Middleware       middleware.Middleware
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Products()
	c.Categories()
	c.GuestRoute()
}

func (c *Config) Products() {
	products := c.App.Group("/api/v1/products")
	products.Get("/dashboard", c.DashboardHandler.GetDashboard)

	// List view state (filter, sort, selected category)
	products.Patch("/view", c.ProductHandler.UpdateProductView)

	// One-shot lookups
	products.Get("/expiring", c.ProductHandler.GetExpiringProducts)
	products.Get("/barcode/:barcode", c.ProductHandler.GetProductByBarcode)

	// Basic CRUD operations
	products.Post("", c.ProductHandler.AddProduct)
	products.Get("", c.ProductHandler.GetProducts)
	products.Get("/:id", c.ProductHandler.GetProductDetails)
	products.Put("/:id", c.ProductHandler.UpdateProduct)
	products.Delete("/:id", c.ProductHandler.DeleteProduct)

	// One-way state transitions
	products.Post("/:id/consume", c.ProductHandler.MarkAsConsumed)
	products.Post("/:id/discard", c.ProductHandler.MarkAsDiscarded)
}

func (c *Config) Categories() {
	categories := c.App.Group("/api/v1/categories")
	categories.Get("", c.CategoryHandler.GetCategories)
	categories.Post("", c.CategoryHandler.AddCategory)
	categories.Put("/:name", c.CategoryHandler.UpdateCategory)
	categories.Delete("/:name", c.CategoryHandler.DeleteCategory)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
