package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"aacstudy-go/internal/database"
	"aacstudy-go/internal/models"

	"gorm.io/gorm"
)

const (
	participantIDPrefix = "P"
	participantIDWidth  = 4
	firstParticipantID  = "P0001"
)

// NextParticipantID reads the most recently created participant and
// increments the numeric suffix of its identifier. Must run inside the
// same transaction as the insert that uses the identifier; the unique
// index on participant_id catches a concurrent allocation of the same
// value, and the caller retries the transaction.
func NextParticipantID(tx *gorm.DB) (string, error) {
	var last models.Participant
	err := tx.Order("id DESC").First(&last).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return firstParticipantID, nil
		}
		return "", err
	}

	suffix := strings.TrimPrefix(last.ParticipantID, participantIDPrefix)
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return "", fmt.Errorf("malformed participant id %q: %w", last.ParticipantID, err)
	}
	return fmt.Sprintf("%s%0*d", participantIDPrefix, participantIDWidth, n+1), nil
}

// CreateParticipant allocates an identifier and inserts the participant.
// Retries once if a concurrent request claimed the same identifier.
func CreateParticipant(ctx context.Context, p *models.Participant) error {
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		err = database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			id, err := NextParticipantID(tx)
			if err != nil {
				return err
			}
			p.ParticipantID = id
			return tx.Create(p).Error
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		p.ID = 0
	}
	return err
}

// GetParticipant fetches a participant by its public identifier (e.g. "P0001").
func GetParticipant(ctx context.Context, participantID string) (*models.Participant, error) {
	var p models.Participant
	result := database.DB.WithContext(ctx).First(&p, "participant_id = ?", participantID)
	return &p, result.Error
}

// GetParticipantByPK fetches a participant by database row id.
func GetParticipantByPK(ctx context.Context, id uint) (*models.Participant, error) {
	var p models.Participant
	result := database.DB.WithContext(ctx).First(&p, id)
	return &p, result.Error
}

// ListParticipants returns all participants, most recently started first.
func ListParticipants(ctx context.Context) ([]models.Participant, error) {
	var participants []models.Participant
	result := database.DB.WithContext(ctx).Order("started_at DESC").Find(&participants)
	return participants, result.Error
}
