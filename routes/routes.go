package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"techstore/controllers"
	"techstore/handler"
	"techstore/middleware"
	"techstore/session"
)

type Handlers struct {
	Session  *controllers.SessionController
	Catalog  *controllers.CatalogController
	Cart     *controllers.CartController
	Checkout *controllers.CheckoutController
	Orders   *controllers.OrderController

	Sessions     *session.Store
	JWTSecret    string
	AdminKeyHash string
	Logger       *zap.Logger
}

func SetupRoutes(router *gin.Engine, h Handlers) {
	router.GET("/", gin.WrapF(handler.Handler))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	router.POST("/session", h.Session.Create)
	router.GET("/products", h.Catalog.GetAllProducts)
	router.GET("/products/:id", h.Catalog.GetProductByID)
	router.GET("/products/:id/detail", h.Catalog.GetProductDetail)

	auth := router.Group("/")
	auth.Use(middleware.SessionMiddleware(h.Sessions, h.JWTSecret))
	{
		auth.DELETE("/session", h.Session.End)
		auth.POST("/session/refresh", h.Session.Refresh)

		auth.GET("/cart", h.Cart.GetCart)
		auth.GET("/cart/events", h.Cart.Events)
		auth.DELETE("/cart", h.Cart.ClearCart)
		auth.POST("/cart/items", h.Cart.AddItem)
		auth.PATCH("/cart/items/:id", h.Cart.UpdateQuantity)
		auth.DELETE("/cart/items/:id", h.Cart.RemoveItem)

		auth.POST("/checkout", h.Checkout.Submit)
		auth.GET("/checkout", h.Checkout.Status)
		auth.DELETE("/checkout", h.Checkout.Cancel)
	}

	admin := router.Group("/admin")
	admin.Use(middleware.AdminMiddleware(h.AdminKeyHash, h.Logger))
	{
		admin.GET("/orders", h.Orders.GetAllOrders)
		admin.GET("/orders/:number", h.Orders.GetOrderByNumber)
	}
}
