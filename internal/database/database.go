package database

import (
	"fmt"

	"aacstudy-go/internal/config"
	logging "aacstudy-go/internal/logging"
	"aacstudy-go/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(log *zap.Logger) {
	var err error
	dbConf := config.Conf.Database
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		dbConf.Host, dbConf.User, dbConf.Password, dbConf.DBName, dbConf.Port)

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logging.NewGormZapLogger(log),
		// Map driver unique-violation errors to gorm.ErrDuplicatedKey so
		// the participant identifier allocator can detect a lost race.
		TranslateError: true,
	})

	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Concurrent request handlers share one store; wait boundedly on a
	// briefly held lock instead of failing outright.
	lockTimeout := fmt.Sprintf("SET lock_timeout = '%ds'", dbConf.LockTimeout)
	if err := DB.Exec(lockTimeout).Error; err != nil {
		log.Warn("Failed to set lock timeout", zap.Error(err))
	}

	log.Info("Database connection established successfully.")
	runMigrations(log)
}

func runMigrations(log *zap.Logger) {
	// GORM's AutoMigrate will create tables, columns, foreign keys and the
	// tagged indexes. Composite query indexes are handled separately.
	err := DB.AutoMigrate(
		&models.Participant{},
		&models.TrialResponse{},
		&models.Preference{},
		&models.SymbolPreference{},
	)
	if err != nil {
		log.Fatal("Failed to run database migrations", zap.Error(err))
	}
	log.Info("Database migrations completed successfully.")

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_trial_symbol_type ON trial_responses (symbol_type);`,
		`CREATE INDEX IF NOT EXISTS idx_symbol_pref_chosen_type ON symbol_preferences (chosen_type);`,
	}
	for _, idx := range indexes {
		if err := DB.Exec(idx).Error; err != nil {
			log.Fatal("Failed to create custom index", zap.Error(err))
		}
	}
	log.Info("Custom indexes ensured successfully.")
}
