package httpserver

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"biomed-backend/internal/catalog"
	"biomed-backend/internal/domain"
	"biomed-backend/internal/gateway/stripe"
	"biomed-backend/internal/pricing"
	"biomed-backend/internal/service/auth"
	checkoutsvc "biomed-backend/internal/service/checkout"
)

// CheckoutService creates and looks up payment sessions.
type CheckoutService interface {
	CreateSession(ctx context.Context, in checkoutsvc.CreateInput) (*checkoutsvc.CreateResult, error)
	GetSession(ctx context.Context, id string) (*stripe.Session, error)
}

// OrderService persists and lists orders.
type OrderService interface {
	SavePaid(ctx context.Context, sessionID string) (*domain.Order, bool, error)
	PlaceCOD(ctx context.Context, items []pricing.CartItem, cust pricing.Customer) (*domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
}

// AuthService issues and verifies admin credentials.
type AuthService interface {
	Login(email, password string) (string, error)
	Verify(token string) (auth.Claims, error)
}

// Deps bundles the collaborators the router needs.
type Deps struct {
	Catalog     *catalog.Catalog
	CheckoutSvc CheckoutService
	OrderSvc    OrderService
	AuthSvc     AuthService
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, allowedOrigins []string) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	if len(allowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     allowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			AllowCredentials: true,
		}))
	}

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	api.GET("/health", healthHandler)
	api.GET("/products", productsHandler(deps.Catalog))
	api.POST("/create-checkout-session", createCheckoutSessionHandler(deps.CheckoutSvc, logger))
	api.GET("/checkout-session/:sessionID", getCheckoutSessionHandler(deps.CheckoutSvc, logger))
	api.POST("/orders", saveOrderHandler(deps.OrderSvc, logger))
	api.POST("/orders/cod", codOrderHandler(deps.OrderSvc, logger))

	admin := api.Group("/admin")
	admin.POST("/login", adminLoginHandler(deps.AuthSvc))
	admin.GET("/orders", adminMiddleware(deps.AuthSvc), adminOrdersHandler(deps.OrderSvc, logger))

	return router, nil
}

func productsHandler(cat *catalog.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, cat.Products())
	}
}
