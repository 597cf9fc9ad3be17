package repository

import (
	"context"

	"aacstudy-go/internal/database"
	"aacstudy-go/internal/models"
)

// CreateTrial inserts a single trial row.
func CreateTrial(ctx context.Context, trial *models.TrialResponse) error {
	if trial.PresentedSymbols == nil {
		trial.PresentedSymbols = models.EmptyPresentedSymbols()
	}
	return database.DB.WithContext(ctx).Create(trial).Error
}

// GetTrialsByParticipant returns all trials for a participant, in block
// order then trial order.
func GetTrialsByParticipant(ctx context.Context, participantID uint) ([]models.TrialResponse, error) {
	var trials []models.TrialResponse
	result := database.DB.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("is_practice DESC, trial_number ASC").
		Find(&trials)
	return trials, result.Error
}
