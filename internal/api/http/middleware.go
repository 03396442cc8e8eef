package http

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"github.com/waitlisthq/waitlist-service/internal/api/dto"
	"github.com/waitlisthq/waitlist-service/internal/observability"
	apperrors "github.com/waitlisthq/waitlist-service/pkg/util/errorutil"
)

// MiddlewareConfig bundles dependencies of the global middleware chain.
type MiddlewareConfig struct {
	Logger  *zap.Logger
	Metrics *observability.Metrics
	Timeout time.Duration
	// Production suppresses the stack field of error responses.
	Production     bool
	AllowedOrigins string
	RateLimitMax   int
	RateLimitTTL   time.Duration
	// LimiterStorage shares counters between instances; nil keeps them in memory.
	LimiterStorage fiber.Storage
}

// NewApp builds a fiber app whose fallback error handler renders the same envelope
// as the middleware chain.
func NewApp(cfg MiddlewareConfig) *fiber.App {
	return fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return renderError(c, cfg, err, "")
		},
	})
}

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, cfg MiddlewareConfig) {
	app.Use(requestid.New())
	app.Use(observability.RequestLogger(cfg.Logger, cfg.Metrics))
	app.Use(errorHandlingMiddleware(cfg))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
	}))
	if cfg.RateLimitMax > 0 {
		app.Use(rateLimitMiddleware(cfg))
	}
	if cfg.Timeout > 0 {
		app.Use(requestTimeoutMiddleware(cfg.Timeout))
	}
}

func rateLimitMiddleware(cfg MiddlewareConfig) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitTTL,
		Storage:    cfg.LimiterStorage,
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/health")
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return apperrors.NewTooManyRequests("Too many requests, please try again later.")
		},
	})
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(cfg MiddlewareConfig) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			stack := ""
			if r := recover(); r != nil {
				stack = string(debug.Stack())
				cfg.Logger.Error("panic recovered", zap.Any("panic", r), zap.String("stack", stack))
				err = apperrors.NewInternalError(fmt.Errorf("panic: %v", r))
			}
			if err != nil {
				err = renderError(c, cfg, err, stack)
			}
		}()
		return c.Next()
	}
}

// renderError writes the error envelope. 5xx responses carry a generic message and
// are logged with their cause.
func renderError(c *fiber.Ctx, cfg MiddlewareConfig, err error, stack string) error {
	var domainErr *apperrors.DomainError
	var fiberErr *fiber.Error
	switch {
	case errors.As(err, &domainErr):
	case errors.As(err, &fiberErr):
		domainErr = apperrors.FromStatus(fiberErr.Code, fiberErr.Message)
	default:
		domainErr = apperrors.ToDomainError(err)
	}

	cfg.Metrics.RecordError(c.Route().Path, c.Method(), domainErr.Code)
	if domainErr.HTTPStatus >= fiber.StatusInternalServerError {
		cfg.Logger.Error("request failed",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Error(domainErr))
	}

	body := dto.ErrorEnvelope{
		Status:  dto.StatusError,
		Message: domainErr.Message,
		Code:    domainErr.Code,
	}
	if !cfg.Production {
		if stack == "" {
			stack = domainErr.Error()
		}
		body.Stack = stack
	}
	return c.Status(domainErr.HTTPStatus).JSON(body)
}
