package server

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"doctama-backoffice/internal/handler"
	appmw "doctama-backoffice/internal/middleware"
	"doctama-backoffice/internal/service"
	"doctama-backoffice/internal/session"
)

type Server struct {
	echo     *echo.Echo
	sessions *session.Manager

	authHandler      *handler.AuthHandler
	dashboardHandler *handler.DashboardHandler
	customerHandler  *handler.CustomerHandler
	orderHandler     *handler.OrderHandler
	catalogHandler   *handler.CatalogHandler
	checkoutHandler  *handler.CheckoutHandler
}

type Services struct {
	Auth      service.AuthService
	Dashboard service.DashboardService
	Customers service.CustomerService
	Orders    service.OrderService
	Catalog   service.CatalogService
	Checkout  service.CheckoutService
}

func NewServer(svcs Services, sessions *session.Manager, logger *zap.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = handler.ErrorHandler(logger)

	e.Use(echomw.Recover())
	e.Use(echomw.CORS())
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogURI:    true,
		LogStatus: true,
		LogMethod: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
			)
			return nil
		},
	}))

	s := &Server{
		echo:             e,
		sessions:         sessions,
		authHandler:      handler.NewAuthHandler(svcs.Auth),
		dashboardHandler: handler.NewDashboardHandler(svcs.Dashboard),
		customerHandler:  handler.NewCustomerHandler(svcs.Customers),
		orderHandler:     handler.NewOrderHandler(svcs.Orders),
		catalogHandler:   handler.NewCatalogHandler(svcs.Catalog),
		checkoutHandler:  handler.NewCheckoutHandler(svcs.Checkout),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	// -------- auth --------
	auth := api.Group("/auth")
	auth.POST("/login", s.authHandler.Login)
	auth.POST("/register", s.authHandler.Register)
	auth.POST("/logout", s.authHandler.Logout)
	auth.GET("/me", s.authHandler.Me)

	// -------- storefront --------
	store := api.Group("", appmw.RequireSession(s.sessions))
	store.GET("/catalog/products", s.catalogHandler.ListProducts)
	store.GET("/catalog/categories", s.catalogHandler.ListCategories)
	store.GET("/orders/mine", s.orderHandler.MyOrders)

	checkout := store.Group("/checkout")
	checkout.GET("/cart", s.checkoutHandler.Cart)
	checkout.POST("/cart/items", s.checkoutHandler.AddItem)
	checkout.PUT("/cart/items/:productId", s.checkoutHandler.UpdateItem)
	checkout.DELETE("/cart/items/:productId", s.checkoutHandler.RemoveItem)
	checkout.DELETE("/cart", s.checkoutHandler.ClearCart)
	checkout.POST("/shipping", s.checkoutHandler.SetShipping)
	checkout.POST("/payment", s.checkoutHandler.SetPayment)
	checkout.POST("/submit", s.checkoutHandler.Submit)

	// -------- back office --------
	admin := api.Group("/admin", appmw.RequireAdmin(s.sessions))
	admin.GET("/dashboard", s.dashboardHandler.Overview)

	admin.GET("/customers", s.customerHandler.List)
	admin.GET("/customers/:id", s.customerHandler.Get)
	admin.PUT("/customers/:id", s.customerHandler.Update)
	admin.DELETE("/customers/:id", s.customerHandler.Delete)
	admin.PATCH("/customers/:id/toggle-status", s.customerHandler.ToggleStatus)

	admin.GET("/orders", s.orderHandler.List)
	admin.GET("/orders/:id", s.orderHandler.Get)
	admin.PATCH("/orders/:id/status", s.orderHandler.UpdateStatus)
	admin.POST("/orders/:id/payment/approve", s.orderHandler.ApprovePayment)
	admin.POST("/orders/:id/payment/reject", s.orderHandler.RejectPayment)

	admin.GET("/products/low-stock", s.catalogHandler.LowStock)
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
