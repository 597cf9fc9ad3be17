package repository

import (
	"context"
	"errors"

	"aacstudy-go/internal/database"
	"aacstudy-go/internal/models"

	"gorm.io/gorm"
)

// CompleteExperiment saves one full session as a single all-or-nothing
// unit: the participant row plus one trial row per practice and main
// entry. Practice and main trials are numbered independently, 1-based, in
// list order. Returns the allocated participant identifier.
//
// The whole transaction is retried once if a concurrent completion claimed
// the same participant identifier.
func CompleteExperiment(ctx context.Context, p *models.Participant, practice, main []models.TrialResponse) (string, error) {
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		err = database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			id, err := NextParticipantID(tx)
			if err != nil {
				return err
			}
			p.ParticipantID = id
			if err := tx.Create(p).Error; err != nil {
				return err
			}

			if err := createTrials(tx, p.ID, practice, true); err != nil {
				return err
			}
			return createTrials(tx, p.ID, main, false)
		})
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			break
		}
		p.ID = 0
	}
	if err != nil {
		return "", err
	}
	return p.ParticipantID, nil
}

func createTrials(tx *gorm.DB, participantID uint, trials []models.TrialResponse, practice bool) error {
	for i := range trials {
		trials[i].ParticipantID = participantID
		trials[i].TrialNumber = i + 1
		trials[i].IsPractice = practice
		if trials[i].PresentedSymbols == nil {
			trials[i].PresentedSymbols = models.EmptyPresentedSymbols()
		}
		if err := tx.Create(&trials[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
