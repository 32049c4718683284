// Package api provides the REST API for the NutriGenius planner.
package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/BerylCAtieno/nutrigenius-agent/internal/planner"
)

// Config controls the router's middleware and metrics endpoint.
type Config struct {
	// AllowedOrigins lists CORS origins; empty allows any origin.
	AllowedOrigins []string
	Gatherer       prometheus.Gatherer
	Logger         *slog.Logger
}

type Router struct {
	engine  *gin.Engine
	service *planner.Service
	logger  *slog.Logger
}

// NewRouter builds the engine with CORS, health, metrics and the /api routes.
// Further routes can be added through Engine.
func NewRouter(service *planner.Service, cfg Config) *Router {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := &Router{
		engine:  gin.New(),
		service: service,
		logger:  logger,
	}
	r.engine.Use(gin.Logger(), gin.Recovery())
	r.engine.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	r.engine.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	api := r.engine.Group("/api")
	{
		api.POST("/sessions", r.createSession)
		api.GET("/schema/meal-plan", r.getMealPlanSchema)

		session := api.Group("/sessions/:session", requireSession())
		session.GET("/profile", r.getProfile)
		session.PUT("/profile", r.saveProfile)
		session.POST("/meal-plan", r.generateMealPlan)
		session.GET("/meal-plan", r.getMealPlan)
		session.DELETE("/meal-plan", r.deleteMealPlan)
		session.POST("/food-swap", r.suggestFoodSwap)
	}

	return r
}

// Engine exposes the gin engine for mounting other handlers.
func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.engine.ServeHTTP(w, req)
}

func corsConfig(origins []string) cors.Config {
	config := cors.DefaultConfig()
	if len(origins) == 0 {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
		config.AllowCredentials = true
	}
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Authorization"}
	return config
}
