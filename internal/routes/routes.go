package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/freshmart/backend/internal/handlers"
	"github.com/freshmart/backend/internal/middleware"
)

// CORSMiddleware allows the storefront origin to call the API with
// credentials, and answers preflight OPTIONS requests directly.
func CORSMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func SetupRouter(h *handlers.Handlers, logger zerolog.Logger, corsOrigin string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))
	router.Use(CORSMiddleware(corsOrigin))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "ok"})
		})

		// --- Auth (Public) ---
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)

		// --- Public Catalog ---
		api.GET("/categories", h.GetAllCategories)
		api.GET("/categories/:slug", h.GetCategoryBySlug)

		api.GET("/products", h.GetProducts)
		api.GET("/products/flash-sale", h.GetFlashSaleProducts)
		api.GET("/products/best-selling", h.GetBestSellingProducts)
		api.GET("/products/filters/origins", h.GetProductOrigins)
		api.GET("/products/filters/brands", h.GetProductBrands)
		api.GET("/products/category/:categorySlug", h.GetProductsByCategory)
		api.GET("/products/:slug", h.GetProductBySlug)

		// --- Protected Routes (Login Required) ---
		auth := api.Group("/")
		auth.Use(middleware.Auth(h.Tokens))
		{
			auth.GET("/users/:userId", h.GetUserByID)
			auth.PUT("/users/:userId", h.UpdateUser)
			auth.POST("/users/:userId/wishlist/:productId", h.AddToWishlist)
			auth.DELETE("/users/:userId/wishlist/:productId", h.RemoveFromWishlist)

			auth.GET("/orders/:id", h.GetOrderByID)
			auth.GET("/orders/user/:userId", h.GetUserOrders)
			auth.POST("/orders", h.CreateOrder)
			auth.POST("/orders/:id/cancel", h.CancelOrder)
		}

		// --- Admin-Only Routes ---
		admin := api.Group("/")
		admin.Use(middleware.Auth(h.Tokens))
		admin.Use(middleware.AdminOnly())
		{
			admin.POST("/categories", h.CreateCategory)
			admin.PUT("/categories/:id", h.UpdateCategory)
			admin.DELETE("/categories/:id", h.DeleteCategory)

			admin.POST("/products", h.CreateProduct)
			admin.PUT("/products/:id", h.UpdateProduct)
			admin.DELETE("/products/:id", h.DeleteProduct)

			admin.GET("/users", h.GetAllUsers)
			admin.POST("/users", h.CreateUser)
			admin.DELETE("/users/:userId", h.DeleteUser)
			admin.POST("/users/:userId/points", h.AddPoints)

			admin.GET("/orders", h.GetAllOrders)
			admin.GET("/orders/status/:status", h.GetOrdersByStatus)
			admin.GET("/orders/stats/count", h.GetOrderStats)
			admin.PATCH("/orders/:id/status", h.UpdateOrderStatus)

			admin.GET("/suppliers", h.GetSuppliers)
			admin.POST("/suppliers", h.CreateSupplier)

			admin.POST("/supplier-orders", h.CreateSupplierOrder)
			admin.GET("/supplier-orders", h.GetSupplierOrders)
		}
	}

	return router
}
