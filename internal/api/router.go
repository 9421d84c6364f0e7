package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const requestIDHeader = "X-Request-ID"

// New wires the Gin engine with the JSON API routes and middlewares.
func New(h *Handler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestIDMiddleware())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	foods := api.Group("/foods")
	foods.GET("", h.ListFoods)
	foods.POST("", h.AddFood)
	foods.GET("/favorites", h.FavoriteFoods)
	foods.GET("/recent", h.RecentFoods)
	foods.POST("/import", h.ImportFoods)
	foods.GET("/:id", h.GetFood)
	foods.PUT("/:id", h.UpdateFood)
	foods.DELETE("/:id", h.DeleteFood)
	foods.POST("/:id/favorite", h.ToggleFavorite)

	meals := api.Group("/meals")
	meals.GET("", h.ListMeals)
	meals.POST("", h.LogMeal)
	meals.GET("/all", h.AllMeals)
	meals.POST("/multi", h.CreateMultiMeal)
	meals.GET("/multi/:id", h.GetMultiMeal)
	meals.DELETE("/multi/:id", h.DeleteMultiMeal)
	meals.DELETE("/:id", h.DeleteMeal)

	api.GET("/progress/daily", h.DailyProgress)
	api.GET("/progress/weekly", h.WeeklyProgress)
	api.GET("/progress/monthly", h.MonthlyProgress)
	api.GET("/analytics/breakdown", h.Breakdown)

	api.GET("/settings", h.GetSettings)
	api.PUT("/settings", h.UpdateSettings)
	api.PUT("/settings/goal", h.SetGoal)
	api.GET("/goals", h.ListGoals)
	api.PUT("/goals", h.SetGoal)

	api.GET("/off-days", h.ListOffDays)
	api.POST("/off-days", h.AddOffDay)
	api.DELETE("/off-days/:date", h.RemoveOffDay)

	api.GET("/weight", h.WeightHistory)
	api.POST("/weight", h.LogWeight)

	api.GET("/export", h.Export)
	api.POST("/import", h.Import)
	api.GET("/streak", h.Streak)
	api.GET("/meal-types", h.MealTypes)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

// WithCORS wraps next so browsers on the given origins may call the API.
func WithCORS(next http.Handler, origins []string) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{requestIDHeader},
	})
	return c.Handler(next)
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set("request_id", id)
		c.Header(requestIDHeader, id)
		c.Next()
	}
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}

	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("request_id", c.GetString("request_id")),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
