package repository

import (
	"context"
	"strconv"
	"testing"

	"aacstudy-go/internal/models"
	"aacstudy-go/internal/testutil"

	"gorm.io/gorm"
)

func newSessionParticipant() *models.Participant {
	return &models.Participant{
		Name:          "홍길동",
		PhoneLast4:    "5678",
		Age:           25,
		Gender:        models.GenderFemale,
		Vision:        models.VisionNormal,
		ConsentAgreed: true,
		BlockOrder:    models.BlockOrderAIFirst,
	}
}

func payloadTrial(word string, symbolType models.SymbolType) models.TrialResponse {
	return models.TrialResponse{
		TargetWord:     word,
		SymbolType:     symbolType,
		BlockType:      string(symbolType),
		SelectedSymbol: "sym",
		IsCorrect:      true,
		ReactionTime:   500,
	}
}

func TestCompleteExperimentNumbersTrials(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()

	practice := []models.TrialResponse{
		payloadTrial("안녕하세요", models.SymbolTypeAI),
		payloadTrial("고마워요", models.SymbolTypeAI),
	}
	main := []models.TrialResponse{
		payloadTrial("좋아요", models.SymbolTypeAI),
		payloadTrial("싫어요", models.SymbolTypeKAAC),
		payloadTrial("배고파요", models.SymbolTypeKAAC),
	}

	id, err := CompleteExperiment(ctx, newSessionParticipant(), practice, main)
	if err != nil {
		t.Fatalf("CompleteExperiment: %v", err)
	}
	if id != "P0001" {
		t.Errorf("participant id = %q, want P0001", id)
	}

	var count int64
	db.Model(&models.TrialResponse{}).Count(&count)
	if count != 5 {
		t.Fatalf("trial count = %d, want 5", count)
	}

	var practiceRows []models.TrialResponse
	db.Where("is_practice = ?", true).Order("trial_number ASC").Find(&practiceRows)
	if len(practiceRows) != 2 {
		t.Fatalf("practice rows = %d, want 2", len(practiceRows))
	}
	for i, row := range practiceRows {
		if row.TrialNumber != i+1 {
			t.Errorf("practice trial_number = %d, want %d", row.TrialNumber, i+1)
		}
	}

	var mainRows []models.TrialResponse
	db.Where("is_practice = ?", false).Order("trial_number ASC").Find(&mainRows)
	if len(mainRows) != 3 {
		t.Fatalf("main rows = %d, want 3", len(mainRows))
	}
	for i, row := range mainRows {
		if row.TrialNumber != i+1 {
			t.Errorf("main trial_number = %d, want %d", row.TrialNumber, i+1)
		}
		if string(row.PresentedSymbols) != "[]" {
			t.Errorf("presented_symbols = %s, want []", row.PresentedSymbols)
		}
	}
}

func TestCompleteExperimentIdentifiersIncrease(t *testing.T) {
	testutil.DB(t)
	ctx := context.Background()

	var previous int
	for i := 0; i < 3; i++ {
		id, err := CompleteExperiment(ctx, newSessionParticipant(), nil,
			[]models.TrialResponse{payloadTrial("좋아요", models.SymbolTypeAI)})
		if err != nil {
			t.Fatalf("CompleteExperiment #%d: %v", i, err)
		}
		n, err := strconv.Atoi(id[1:])
		if err != nil {
			t.Fatalf("unparseable id %q: %v", id, err)
		}
		if n <= previous {
			t.Errorf("id %q does not exceed previous %d", id, previous)
		}
		previous = n
	}
}

func TestCompleteExperimentRetriesOnLostRace(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()

	// Claim the allocated identifier on the first participant insert, as
	// a concurrent completion would.
	var raced bool
	err := db.Callback().Create().Before("gorm:create").Register("claim_allocated_id", func(tx *gorm.DB) {
		if raced || tx.Statement.Schema == nil || tx.Statement.Schema.Table != "participants" {
			return
		}
		raced = true
		session := tx.Session(&gorm.Session{NewDB: true})
		if err := session.Exec("INSERT INTO participants (participant_id) VALUES (?)", "P0001").Error; err != nil {
			t.Fatalf("claim identifier: %v", err)
		}
	})
	if err != nil {
		t.Fatalf("register callback: %v", err)
	}

	id, err := CompleteExperiment(ctx, newSessionParticipant(), nil,
		[]models.TrialResponse{payloadTrial("좋아요", models.SymbolTypeAI)})
	if err != nil {
		t.Fatalf("CompleteExperiment: %v", err)
	}
	if !raced {
		t.Fatal("conflicting insert never ran")
	}
	if id != "P0001" {
		t.Errorf("participant id = %q, want P0001 after retry", id)
	}

	var trials int64
	db.Model(&models.TrialResponse{}).Count(&trials)
	if trials != 1 {
		t.Errorf("trial count = %d, want 1", trials)
	}
}

func TestCompleteExperimentRollsBackOnFailure(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()

	// Force the trial insert to fail after the participant insert succeeded.
	if err := db.Migrator().DropTable(&models.TrialResponse{}); err != nil {
		t.Fatalf("drop table: %v", err)
	}

	_, err := CompleteExperiment(ctx, newSessionParticipant(), nil,
		[]models.TrialResponse{payloadTrial("좋아요", models.SymbolTypeAI)})
	if err == nil {
		t.Fatal("expected error")
	}

	var count int64
	db.Model(&models.Participant{}).Count(&count)
	if count != 0 {
		t.Errorf("participant count after rollback = %d, want 0", count)
	}
}
