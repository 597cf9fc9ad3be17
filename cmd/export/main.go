package main

import (
	"flag"

	"aacstudy-go/internal/config"
	"aacstudy-go/internal/database"
	"aacstudy-go/internal/export"
	logger "aacstudy-go/internal/logging"
	"aacstudy-go/internal/models"

	"go.uber.org/zap"
)

// Batch export job: reads the full data set and writes the analysis
// workbook. Run separately from the server, e.g. after a study session:
//
//	go run ./cmd/export -charts
func main() {
	withCharts := flag.Bool("charts", false, "also render an HTML preference chart")
	outputDir := flag.String("out", "", "output directory (defaults to export.output_dir)")
	flag.Parse()

	// Configuration before the file logger, same order as the server.
	boot := logger.Bootstrap()
	if err := config.Init(".", boot); err != nil {
		boot.Fatal("Failed to load configuration", zap.Error(err))
	}

	log, err := logger.Init(".")
	if err != nil {
		boot.Fatal("Failed to initialize logger", zap.Error(err))
	}
	defer log.Sync()

	database.Init(log)

	vocab, err := models.LoadVocabulary(config.Conf.Study.VocabularyFile)
	if err != nil {
		log.Fatal("Failed to load vocabulary", zap.Error(err))
	}

	dir := *outputDir
	if dir == "" {
		dir = config.Conf.Export.OutputDir
	}

	path, err := export.Run(database.DB, log, vocab, dir, *withCharts)
	if err != nil {
		log.Fatal("Export failed", zap.Error(err))
	}
	log.Info("Export completed", zap.String("workbook", path))
}
