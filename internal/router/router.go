package router

import (
	"net/http"
	"time"

	"aacstudy-go/internal/config"
	"aacstudy-go/internal/handlers"
	"aacstudy-go/internal/models"

	ratelimit "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/unrolled/secure"
	"go.uber.org/zap"
)

func keyFunc(c *gin.Context) string {
	return c.ClientIP()
}

func rateLimitErrorHandler(c *gin.Context, info ratelimit.Info) {
	c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests. Try again later."})
}

func Setup(log *zap.Logger, vocab *models.Vocabulary) *gin.Engine {
	// Set up a new Gin router, add recovery middleware and request logging.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(log))

	// Cross-origin access is limited to the configured front-end origins.
	// The API itself is open access.
	router.Use(cors.New(cors.Config{
		AllowOrigins:     config.Conf.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
	})
	router.Use(func(c *gin.Context) {
		if err := secureMiddleware.Process(c.Writer, c.Request); err != nil {
			c.Abort()
			return
		}
	})

	// Handlers and routes
	experimentHandler := handlers.NewExperimentHandler(log)
	participantHandler := handlers.NewParticipantHandler(log)
	trialHandler := handlers.NewTrialHandler(log)
	preferenceHandler := handlers.NewPreferenceHandler(log, vocab)

	// A session produces at most a handful of writes; anything past this
	// budget from one address is not the experiment runner.
	rateLimitStore := ratelimit.InMemoryStore(&ratelimit.InMemoryOptions{
		Rate:  time.Minute,
		Limit: 60,
	})
	limiter := ratelimit.RateLimiter(rateLimitStore, &ratelimit.Options{
		ErrorHandler: rateLimitErrorHandler,
		KeyFunc:      keyFunc,
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group(config.Conf.Server.BasePath)
	{
		api.POST("/complete-experiment/", limiter, experimentHandler.Complete)

		api.POST("/participants/", limiter, participantHandler.Create)
		api.GET("/participants/list/", participantHandler.List)
		api.GET("/participants/:participant_id/", participantHandler.Get)

		api.POST("/trials/", limiter, trialHandler.Create)
		api.GET("/trials/:participant_id/", trialHandler.ListByParticipant)

		api.POST("/preference/", limiter, preferenceHandler.CreateLegacy)
		api.GET("/preference/:participant_id/", preferenceHandler.GetLegacy)

		api.POST("/submit-symbol-preferences/", limiter, preferenceHandler.SubmitSymbolPreferences)
		api.GET("/symbol-preferences/:participant_id/", preferenceHandler.GetSymbolPreferences)
		api.GET("/preference-summary/", preferenceHandler.Summary)
	}

	return router
}
