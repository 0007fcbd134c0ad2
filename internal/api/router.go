package api

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/socialweb/social-api/docs"
	"github.com/socialweb/social-api/internal/api/handler"
	"github.com/socialweb/social-api/internal/api/middleware"
	"github.com/socialweb/social-api/internal/core/ports"
)

// Dependencies are the services and settings the router wires into handlers.
type Dependencies struct {
	Users       ports.UserService
	Auth        ports.AuthService
	Tokens      ports.TokenIssuer
	Friendships ports.FriendshipService
	Posts       ports.PostService
	Comments    ports.CommentService

	// HealthChecks are pinged by the readiness probe, keyed by dependency name.
	HealthChecks map[string]handler.Check
	CORSOrigins  []string
	// AuthLimiter throttles /api/auth; nil disables throttling.
	AuthLimiter *middleware.RateLimiter
	// Registerer receives the HTTP metrics. Defaults to the global registry.
	Registerer prometheus.Registerer
	Logger     zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	registerer := deps.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Logger))
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "social",
		Registerer: registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(deps.Users, deps.Auth)
	userHandler := handler.NewUserHandler(deps.Users, deps.Friendships)
	friendshipHandler := handler.NewFriendshipHandler(deps.Friendships)
	postHandler := handler.NewPostHandler(deps.Posts)
	commentHandler := handler.NewCommentHandler(deps.Comments)
	authMiddleware := middleware.Auth(deps.Tokens)

	api := e.Group("/api")

	// --- Auth routes (public, throttled) ---
	var authMW []echo.MiddlewareFunc
	if deps.AuthLimiter != nil {
		authMW = append(authMW, deps.AuthLimiter.Middleware())
	}
	auth := api.Group("/auth", authMW...)
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// --- Users ---
	users := api.Group("/users", authMiddleware)
	users.GET("", userHandler.List)
	users.GET("/by-username/:username", userHandler.GetByUsername)
	users.GET("/:id", userHandler.Get)
	users.GET("/:id/friends", userHandler.Friends)

	// --- Friendships ---
	friendships := api.Group("/friendships", authMiddleware)
	friendships.POST("", friendshipHandler.Send)
	friendships.GET("/pending", friendshipHandler.Pending)
	friendships.PUT("/:id/accept", friendshipHandler.Accept)
	friendships.PUT("/:id/reject", friendshipHandler.Reject)
	friendships.GET("/:id/events", friendshipHandler.Events)

	// --- Posts ---
	posts := api.Group("/posts", authMiddleware)
	posts.POST("", postHandler.Create)
	posts.GET("", postHandler.Feed)
	posts.GET("/:id", postHandler.Get)
	posts.GET("/user/:userId", postHandler.Wall)

	// --- Comments ---
	comments := api.Group("/comments", authMiddleware)
	comments.POST("", commentHandler.Create)
	comments.GET("/post/:postId", commentHandler.ListByPost)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.HealthChecks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

// requestLogger emits one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogRemoteIP:  true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			var evt *zerolog.Event
			switch {
			case v.Status >= http.StatusInternalServerError:
				evt = log.Error().Err(v.Error)
			case v.Error != nil:
				evt = log.Warn().Err(v.Error)
			default:
				evt = log.Info()
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Str("remote_ip", v.RemoteIP).
				Msg("request")
			return nil
		},
	})
}
