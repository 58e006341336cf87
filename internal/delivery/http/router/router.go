// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"cashtrail/internal/delivery/http/middleware"
	"cashtrail/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds every handler the router registers, injected by Fx.
type RouterParams struct {
	fx.In

	UserHandler          *handler.UserHandler
	CardHandler          *handler.CardHandler
	UserCategoryHandler  *handler.UserCategoryHandler
	MerchantHandler      *handler.MerchantHandler
	RewardMappingHandler *handler.RewardMappingHandler
	TransactionHandler   *handler.TransactionHandler
	MCCHandler           *handler.MCCHandler
	AuthMiddleware       *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	params RouterParams
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{params: params}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.params.UserHandler.Register)
		authGroup.POST("/login", r.params.UserHandler.Login)
	}

	// Everything below requires a valid access token.
	api := e.Group("/api")
	api.Use(r.params.AuthMiddleware.Authenticate)

	api.GET("/profile", r.params.UserHandler.GetProfile)

	cardGroup := api.Group("/cards")
	{
		cardGroup.POST("", r.params.CardHandler.CreateCard)
		cardGroup.GET("", r.params.CardHandler.GetCards)
		cardGroup.PATCH("/:id", r.params.CardHandler.UpdateCard)
		cardGroup.DELETE("/:id", r.params.CardHandler.DeleteCard)
	}

	categoryGroup := api.Group("/categories")
	{
		categoryGroup.POST("", r.params.UserCategoryHandler.CreateCategory)
		categoryGroup.GET("", r.params.UserCategoryHandler.GetCategories)
		categoryGroup.PATCH("/:id", r.params.UserCategoryHandler.UpdateCategory)
		categoryGroup.DELETE("/:id", r.params.UserCategoryHandler.DeleteCategory)
	}

	merchantGroup := api.Group("/merchants")
	{
		merchantGroup.POST("", r.params.MerchantHandler.CreateMerchant)
		merchantGroup.GET("", r.params.MerchantHandler.GetMerchants)
		merchantGroup.GET("/:id", r.params.MerchantHandler.GetMerchant)
		merchantGroup.PATCH("/:id", r.params.MerchantHandler.UpdateMerchant)
		merchantGroup.PUT("/:id/location", r.params.MerchantHandler.UpsertLocation)
		merchantGroup.DELETE("/:id", r.params.MerchantHandler.DeleteMerchant)
	}

	mappingGroup := api.Group("/reward-mappings")
	{
		mappingGroup.POST("", r.params.RewardMappingHandler.CreateMapping)
		mappingGroup.GET("", r.params.RewardMappingHandler.GetMappings)
		mappingGroup.GET("/lookup", r.params.RewardMappingHandler.FindForPairing)
		mappingGroup.PATCH("/:id", r.params.RewardMappingHandler.UpdateMapping)
		mappingGroup.DELETE("/:id", r.params.RewardMappingHandler.DeleteMapping)
	}

	transactionGroup := api.Group("/transactions")
	{
		transactionGroup.POST("", r.params.TransactionHandler.CreateTransaction)
		transactionGroup.GET("", r.params.TransactionHandler.GetTransactions)
		transactionGroup.GET("/:id", r.params.TransactionHandler.GetTransaction)
		transactionGroup.PATCH("/:id", r.params.TransactionHandler.UpdateTransaction)
		transactionGroup.DELETE("/:id", r.params.TransactionHandler.DeleteTransaction)
	}

	api.GET("/merchant-category-codes", r.params.MCCHandler.ListCodes)
}
