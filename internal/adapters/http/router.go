package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rafaelleal24/warehouse/internal/adapters/config"
	"github.com/rafaelleal24/warehouse/internal/adapters/http/controllers"
	"github.com/rafaelleal24/warehouse/internal/adapters/http/handlers"
	"github.com/rafaelleal24/warehouse/internal/adapters/http/middleware"
)

const bannerMessage = "Warehouse API is running..."

type Router struct {
	healthController  *controllers.HealthController
	productController *controllers.ProductController
	authController    *controllers.AuthController
	verifier          middleware.TokenVerifier
}

func NewRouter(
	healthController *controllers.HealthController,
	productController *controllers.ProductController,
	authController *controllers.AuthController,
	verifier middleware.TokenVerifier,
) *Router {
	return &Router{
		healthController:  healthController,
		productController: productController,
		authController:    authController,
		verifier:          verifier,
	}
}

func (r *Router) SetupRoutes(router *gin.Engine) {
	requireToken := middleware.Authenticate(r.verifier)

	router.Use(middleware.LogRequest())
	router.NoRoute(handlers.NotFound)

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, bannerMessage)
	})
	router.GET("/health", r.healthController.Health)

	products := router.Group("/products")
	{
		products.GET("", r.productController.ListProducts)
		products.GET("/:id", r.productController.GetProduct)

		products.POST("", requireToken, r.productController.CreateProduct)
		products.PUT("/:id", requireToken, r.productController.UpdateProduct)
		products.DELETE("/:id", requireToken, r.productController.DeleteProduct)
		products.DELETE("", requireToken, r.productController.DeleteProducts)
	}

	auth := router.Group("/auth")
	{
		auth.POST("/register", r.authController.Register)
		auth.POST("/login", r.authController.Login)
		auth.POST("/logout", requireToken, r.authController.Logout)
	}
}

// Engine builds a gin engine with every route registered.
func (r *Router) Engine() *gin.Engine {
	engine := gin.New()
	engine.Use(gin.CustomRecovery(handlers.Recover))
	r.SetupRoutes(engine)
	return engine
}

func (r *Router) ListenAndServe(ctx context.Context, config config.HTTPConfig) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", config.BindInterface, config.Port),
		Handler: r.Engine(),
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		shutdownErr <- srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return <-shutdownErr
}
