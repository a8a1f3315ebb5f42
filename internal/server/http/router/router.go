package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/polkiloo/routemanager/internal/domain/model"
	"github.com/polkiloo/routemanager/internal/server/http/handlers"
	"github.com/polkiloo/routemanager/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.RouteManagerFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest(middleware.DefaultMaxBodyBytes))
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	healthHandler := handlers.NewHealthHandler(facade)
	catalogHandler := handlers.NewCatalogHandler(facade)
	wizardHandler := handlers.NewWizardHandler(facade)
	orderHandler := handlers.NewOrderHandler(facade)
	invoiceHandler := handlers.NewInvoiceHandler(facade)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)

	operators := api.Group("/operators")
	operators.POST("/register", authHandler.Register)
	operators.POST("/login", authHandler.Login)

	authed := api.Group("")
	authed.Use(middleware.AuthRequired(facade))

	authed.GET("/clients", catalogHandler.ListClients)
	authed.POST("/clients", catalogHandler.CreateClient)
	authed.GET("/clients/:id", catalogHandler.GetClient)
	authed.GET("/routes", catalogHandler.ListRoutes)
	authed.GET("/products", catalogHandler.ListProducts)
	authed.POST("/products", catalogHandler.CreateProduct)
	authed.GET("/products/:id", catalogHandler.GetProduct)
	authed.PUT("/products/:id", catalogHandler.UpdateProduct)

	wizard := authed.Group("/wizard")
	wizard.POST("", wizardHandler.Start)
	wizard.GET("/:id", wizardHandler.Get)
	wizard.DELETE("/:id", wizardHandler.Cancel)
	wizard.PUT("/:id/client", wizardHandler.SelectClient)
	wizard.POST("/:id/items", wizardHandler.AddItem)
	wizard.DELETE("/:id/items", wizardHandler.ClearCart)
	wizard.PUT("/:id/items/:productID", wizardHandler.UpdateItem)
	wizard.DELETE("/:id/items/:productID", wizardHandler.RemoveItem)
	wizard.POST("/:id/review", wizardHandler.Review)
	wizard.POST("/:id/commit", wizardHandler.Commit)

	orders := authed.Group("/orders")
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.GET("/:id/history", orderHandler.History)
	for _, dir := range model.Directions {
		orders.POST("/:id/"+string(dir), orderHandler.Transition(dir))
	}
	orders.POST("/:id/invoice", invoiceHandler.Issue)
	orders.GET("/:id/invoice", invoiceHandler.ForOrder)

	invoices := authed.Group("/invoices")
	invoices.GET("", invoiceHandler.List)
	invoices.GET("/next-folio", invoiceHandler.NextFolio)
	invoices.GET("/:id", invoiceHandler.Get)
	invoices.POST("/:id/cancel", invoiceHandler.Cancel)

	return engine
}
