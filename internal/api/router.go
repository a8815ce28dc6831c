package api

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storefront-backend/internal/apperr"
	"storefront-backend/internal/middleware"
	"storefront-backend/internal/models"
)

// Handlers groups every route handler the router mounts.
type Handlers struct {
	Users    *UserHandler
	Products *ProductHandler
	Carts    *CartHandler
	Wishlist *WishlistHandler
	Blogs    *BlogHandler
	Reviews  *ReviewHandler
	Payments *PaymentHandler
	Stats    *StatsHandler
	Store    Pinger
}

type RouterOptions struct {
	AllowedOrigins []string
	RateLimiter    *middleware.RateLimiter
	Logger         *zap.Logger
}

func NewRouter(opts RouterOptions, auth *middleware.AuthMiddleware, h Handlers) (*gin.Engine, error) {
	if err := models.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("register validators: %w", err)
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(log),
		gin.Recovery(),
		middleware.CORS(opts.AllowedOrigins),
		opts.RateLimiter.Middleware(),
	)
	r.NoRoute(func(c *gin.Context) {
		apperr.Respond(c, fmt.Errorf("route %s %w", c.Request.URL.Path, apperr.ErrNotFound))
	})

	authed := auth.AuthRequired()
	admin := auth.AdminRequired()

	r.GET("/health", Health(h.Store))
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "storefront server is running"})
	})

	r.POST("/jwt", h.Users.IssueToken)

	r.GET("/users", authed, admin, h.Users.List)
	r.POST("/users", h.Users.Create)
	r.GET("/users/admin/:email", authed, h.Users.IsAdmin)
	r.PATCH("/users/admin/:id", authed, admin, h.Users.MakeAdmin)
	r.DELETE("/users/:id", authed, admin, h.Users.Delete)

	r.GET("/products", h.Products.List)
	r.GET("/products/:id", h.Products.Get)
	r.POST("/products", authed, admin, h.Products.Create)
	r.PUT("/products/:id", authed, admin, h.Products.Replace)
	r.PATCH("/products/:id", authed, admin, h.Products.Patch)
	r.DELETE("/products/:id", authed, admin, h.Products.Delete)
	r.POST("/products/:productId/reviews", authed, h.Products.AddReview)

	carts := r.Group("/carts", authed)
	carts.GET("", h.Carts.List)
	carts.POST("", h.Carts.Add)
	carts.DELETE("/:id", h.Carts.Remove)

	wishlist := r.Group("/wishlist", authed)
	wishlist.GET("", h.Wishlist.List)
	wishlist.POST("", h.Wishlist.Add)
	wishlist.DELETE("/:id", h.Wishlist.Remove)
	wishlist.POST("/:id/cart", h.Wishlist.MoveToCart)

	r.GET("/blogs", h.Blogs.List)
	r.GET("/blogs/:id", h.Blogs.Get)
	r.POST("/blogs", authed, admin, h.Blogs.Create)
	r.PATCH("/blogs/:id", authed, admin, h.Blogs.Patch)
	r.DELETE("/blogs/:id", authed, admin, h.Blogs.Delete)

	r.GET("/reviews", h.Reviews.List)
	r.POST("/reviews", authed, h.Reviews.Create)

	r.POST("/create-payment-intent", authed, h.Payments.CreateIntent)
	r.POST("/payments", authed, h.Payments.Record)
	r.GET("/payments/:email", authed, h.Payments.History)

	r.GET("/admin-stats", authed, admin, h.Stats.AdminStats)
	r.GET("/order-stats", authed, admin, h.Stats.OrderStats)

	return r, nil
}
