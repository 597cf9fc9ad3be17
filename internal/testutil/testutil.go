package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"aacstudy-go/internal/database"
	"aacstudy-go/internal/models"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// DB opens a fresh in-memory database, migrates the full schema, and
// installs it as the shared handle the repository functions use. The
// shared-cache DSN keeps every pooled connection on the same database.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", dbSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		tb.Fatalf("failed to open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.Participant{},
		&models.TrialResponse{},
		&models.Preference{},
		&models.SymbolPreference{},
	)
	if err != nil {
		tb.Fatalf("failed to migrate test db: %v", err)
	}

	database.DB = db
	tb.Cleanup(func() {
		database.DB = nil
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// Logger returns a logger that discards everything.
func Logger(tb testing.TB) *zap.Logger {
	tb.Helper()
	return zap.NewNop()
}

// SeedParticipant inserts a participant with the given public identifier.
func SeedParticipant(tb testing.TB, db *gorm.DB, participantID string) *models.Participant {
	tb.Helper()
	p := &models.Participant{
		ParticipantID: participantID,
		Name:          "테스트",
		PhoneLast4:    "1234",
		Age:           30,
		Gender:        models.GenderMale,
		Vision:        models.VisionNormal,
		ConsentAgreed: true,
		BlockOrder:    models.BlockOrderAIFirst,
		StartedAt:     time.Now().UTC(),
	}
	if err := db.Create(p).Error; err != nil {
		tb.Fatalf("seed participant: %v", err)
	}
	return p
}

// SeedTrial inserts one main-block trial for a participant.
func SeedTrial(tb testing.TB, db *gorm.DB, participantID uint, trialNumber int,
	symbolType models.SymbolType, correct bool, reactionTime int) *models.TrialResponse {
	tb.Helper()
	t := &models.TrialResponse{
		ParticipantID:    participantID,
		TrialNumber:      trialNumber,
		TargetWord:       "좋아요",
		SymbolType:       symbolType,
		BlockType:        string(symbolType),
		PresentedSymbols: models.EmptyPresentedSymbols(),
		SelectedSymbol:   "sym-1",
		IsCorrect:        correct,
		ReactionTime:     reactionTime,
	}
	if err := db.Create(t).Error; err != nil {
		tb.Fatalf("seed trial: %v", err)
	}
	return t
}

// SeedSymbolPreference inserts one word judgment for a participant.
func SeedSymbolPreference(tb testing.TB, db *gorm.DB, participantID uint, word string,
	chosenType models.ChoiceType) *models.SymbolPreference {
	tb.Helper()
	p := &models.SymbolPreference{
		ParticipantID: participantID,
		TargetWord:    word,
		AIPosition:    models.SideLeft,
		Chosen:        models.ChosenLeft,
		ChosenType:    chosenType,
	}
	if err := db.Create(p).Error; err != nil {
		tb.Fatalf("seed symbol preference: %v", err)
	}
	return p
}
