package router

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/quizzes/internal/config"
	"github.com/stemsi/quizzes/internal/handler"
	"github.com/stemsi/quizzes/internal/middleware"
	"github.com/stemsi/quizzes/internal/response"
	"github.com/stemsi/quizzes/internal/session"
	"github.com/stemsi/quizzes/internal/templates"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Quiz *handler.QuizHandler
	Play *handler.PlayHandler
}

// SetupRouter configures the Gin engine: views, global middleware and routes.
// The returned engine still needs middleware.MethodOverride in front of it
// for HTML forms to reach the PUT and DELETE routes.
func SetupRouter(
	handlers *Handlers,
	sessionStore sessions.Store,
	cfg *config.Config,
	log zerolog.Logger,
) (*gin.Engine, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	tmpl, err := templates.Load()
	if err != nil {
		return nil, fmt.Errorf("load templates: %w", err)
	}
	router.SetHTMLTemplate(tmpl)

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Request-ID", "X-HTTP-Method-Override"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	router.Use(middleware.Compress())

	// Embedded assets; the stylesheet changes only with a new binary.
	staticGroup := router.Group("/static")
	staticGroup.Use(middleware.CacheControl(86400))
	{
		staticGroup.StaticFS("/", templates.Static())
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// ─── Pages (session + error page) ──────────────────────────────────
	pageMiddleware := []gin.HandlerFunc{
		session.Middleware(sessionStore),
		middleware.ErrorResponder(log),
		middleware.NoStore(),
	}

	pages := router.Group("/", pageMiddleware...)
	pages.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/quizzes")
	})

	quizzes := pages.Group("/quizzes")
	{
		quizzes.GET("", handlers.Quiz.List)
		quizzes.POST("", handlers.Quiz.Create)
		quizzes.GET("/new", handlers.Quiz.New)

		quizzes.GET("/randomplay", handlers.Play.RandomPlay)
		quizzes.GET("/randomcheck/:id", handlers.Quiz.Load, handlers.Play.RandomCheck)

		quiz := quizzes.Group("/:id", handlers.Quiz.Load)
		quiz.GET("", handlers.Quiz.Show)
		quiz.PUT("", handlers.Quiz.Update)
		quiz.PATCH("", handlers.Quiz.Update)
		quiz.DELETE("", handlers.Quiz.Destroy)
		quiz.GET("/edit", handlers.Quiz.Edit)
		quiz.GET("/play", handlers.Quiz.Play)
		quiz.GET("/check", handlers.Quiz.Check)
	}

	router.NoRoute(append(pageMiddleware, func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/static/") {
			c.Status(http.StatusNotFound)
			return
		}
		response.RenderError(c, http.StatusNotFound, response.ErrNotFound)
	})...)

	return router, nil
}
