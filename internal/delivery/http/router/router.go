// Package router contains routing setup for the HTTP delivery.
package router

import (
	"coderr/internal/delivery/http/middleware"
	"coderr/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	OfferHandler    *handler.OfferHandler
	OrderHandler    *handler.OrderHandler
	ReviewHandler   *handler.ReviewHandler
	ProfileHandler  *handler.ProfileHandler
	BaseInfoHandler *handler.BaseInfoHandler
	AuthMiddleware  *middleware.AuthMiddleware
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
// Reads run under optional authentication so anonymous browsing works;
// every write requires a verified identity.
func (r *router) RegisterRoutes(e *echo.Echo) {
	auth := r.params.AuthMiddleware

	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/registration", r.params.AuthHandler.Register)
		authGroup.POST("/login", r.params.AuthHandler.Login)
		authGroup.POST("/guest-login", r.params.AuthHandler.GuestLogin)
	}

	// Catalog routes
	offerGroup := e.Group("/offers")
	{
		offerGroup.GET("", r.params.OfferHandler.ListOffers, auth.AuthenticateOptional)
		offerGroup.POST("", r.params.OfferHandler.CreateOffer, auth.Authenticate)
		offerGroup.GET("/:id", r.params.OfferHandler.GetOffer, auth.AuthenticateOptional)
		offerGroup.PATCH("/:id", r.params.OfferHandler.UpdateOffer, auth.Authenticate)
		offerGroup.DELETE("/:id", r.params.OfferHandler.DeleteOffer, auth.Authenticate)
	}

	detailGroup := e.Group("/offer-details")
	{
		detailGroup.GET("", r.params.OfferHandler.ListOfferDetails, auth.AuthenticateOptional)
		detailGroup.GET("/:id", r.params.OfferHandler.GetOfferDetail, auth.AuthenticateOptional)
		detailGroup.PATCH("/:id", r.params.OfferHandler.UpdateOfferDetail, auth.Authenticate)
		detailGroup.DELETE("/:id", r.params.OfferHandler.DeleteOfferDetail, auth.Authenticate)
	}

	// Order routes, private to their participants
	orderGroup := e.Group("/orders", auth.Authenticate)
	{
		orderGroup.GET("", r.params.OrderHandler.ListOrders)
		orderGroup.POST("", r.params.OrderHandler.CreateOrder)
		orderGroup.GET("/:id", r.params.OrderHandler.GetOrder)
		orderGroup.PATCH("/:id", r.params.OrderHandler.UpdateOrderStatus)
	}
	e.GET("/order-count/:business_user_id", r.params.OrderHandler.CountInProgress, auth.AuthenticateOptional)
	e.GET("/completed-order-count/:business_user_id", r.params.OrderHandler.CountCompleted, auth.AuthenticateOptional)

	// Review routes
	reviewGroup := e.Group("/reviews")
	{
		reviewGroup.GET("", r.params.ReviewHandler.ListReviews, auth.AuthenticateOptional)
		reviewGroup.POST("", r.params.ReviewHandler.CreateReview, auth.Authenticate)
		reviewGroup.GET("/business/:business_user_id", r.params.ReviewHandler.ListForBusiness, auth.AuthenticateOptional)
		reviewGroup.GET("/reviewer/:reviewer_id", r.params.ReviewHandler.ListForReviewer, auth.AuthenticateOptional)
		reviewGroup.GET("/:id", r.params.ReviewHandler.GetReview, auth.AuthenticateOptional)
		reviewGroup.PATCH("/:id", r.params.ReviewHandler.UpdateReview, auth.Authenticate)
		reviewGroup.DELETE("/:id", r.params.ReviewHandler.DeleteReview, auth.Authenticate)
	}

	// Profile routes
	profileGroup := e.Group("/profiles")
	{
		profileGroup.GET("/business", r.params.ProfileHandler.ListBusinessProfiles, auth.AuthenticateOptional)
		profileGroup.GET("/customer", r.params.ProfileHandler.ListCustomerProfiles, auth.AuthenticateOptional)
		profileGroup.GET("/by-user/:id", r.params.ProfileHandler.GetProfile, auth.AuthenticateOptional)
		profileGroup.PATCH("/by-user/:id", r.params.ProfileHandler.UpdateProfile, auth.Authenticate)
	}

	// Public platform counters
	e.GET("/platform/base-info", r.params.BaseInfoHandler.GetBaseInfo)
}
