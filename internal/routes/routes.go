package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/01moynul/vidshop/internal/handlers"
	"github.com/01moynul/vidshop/internal/logger"
	"github.com/01moynul/vidshop/internal/middleware"
)

func SetupRouter(h *handlers.Handlers, corsOrigin string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.RequestLogger(h.Log))

	// Must run before any route so preflight requests are answered.
	router.Use(middleware.CORSMiddleware(corsOrigin))

	v1 := router.Group("/v1")
	{
		// --- Ping Route (Public) ---
		v1.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "pong!"})
		})

		// --- Auth Routes (Public) ---
		v1.POST("/register", h.Register)
		v1.POST("/login", h.Login)

		// --- Public Feed & Catalogue ---
		v1.GET("/feed", h.GetFeed)
		v1.GET("/products/search", h.SearchProducts)
		v1.GET("/products/:id", h.GetProduct)
		v1.GET("/products/:id/variants", h.GetProductVariants)
		v1.GET("/videos/search", h.SearchVideos)

		// --- Protected Routes (Login Required) ---
		authed := v1.Group("/")
		authed.Use(middleware.AuthMiddleware(h.Tokens))
		{
			authed.GET("/profile/me", h.Me)
			authed.PATCH("/profile/me", h.UpdateProfile)
			authed.POST("/videos/:id/like", h.LikeVideo)

			authed.GET("/cart", h.GetCart)
			authed.POST("/cart/items", h.AddToCart)
			authed.DELETE("/cart/items/:id", h.DeleteCartItem)
		}

		// --- Seller-Only Routes ---
		seller := v1.Group("/")
		seller.Use(middleware.AuthMiddleware(h.Tokens))
		seller.Use(middleware.SellerMiddleware())
		{
			seller.POST("/variants/preview", h.PreviewVariants)
			seller.POST("/products", h.CreateProduct)
			seller.POST("/products/describe", h.DescribeProduct)
			seller.POST("/videos", h.CreateVideo)
		}
	}

	return router
}
