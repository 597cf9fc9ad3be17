package main

import (
	"aacstudy-go/internal/config"
	"aacstudy-go/internal/database"
	logger "aacstudy-go/internal/logging"
	"aacstudy-go/internal/models"
	"aacstudy-go/internal/router"

	"go.uber.org/zap"
)

func main() {
	// Console-only logger until the configuration is available.
	boot := logger.Bootstrap()

	// Load configuration first so the file logger below picks up the
	// configured log directory and rotation limits.
	if err := config.Init(".", boot); err != nil {
		boot.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize the full logger from the loaded configuration
	log, err := logger.Init(".")
	if err != nil {
		boot.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer log.Sync()

	// Initialize Database
	database.Init(log)

	// Load the study vocabulary at startup
	vocab, err := models.LoadVocabulary(config.Conf.Study.VocabularyFile)
	if err != nil {
		log.Fatal("Failed to load vocabulary", zap.Error(err))
	}
	log.Info("Vocabulary loaded", zap.Int("words", vocab.Size()))

	// Setup router, passing the logger to it
	r := router.Setup(log, vocab)

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
