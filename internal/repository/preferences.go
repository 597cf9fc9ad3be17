package repository

import (
	"context"

	"aacstudy-go/internal/database"
	"aacstudy-go/internal/models"

	"gorm.io/gorm"
)

// CreatePreference inserts a legacy whole-experiment preference row.
func CreatePreference(ctx context.Context, pref *models.Preference) error {
	return database.DB.WithContext(ctx).Create(pref).Error
}

// GetPreferenceByParticipant fetches the legacy preference for a participant.
func GetPreferenceByParticipant(ctx context.Context, participantID uint) (*models.Preference, error) {
	var pref models.Preference
	result := database.DB.WithContext(ctx).First(&pref, "participant_id = ?", participantID)
	return &pref, result.Error
}

// ReplaceSymbolPreferences replaces a participant's full set of word
// preferences. Delete and insert run in one transaction so a resubmission
// can never leave a partial set behind.
func ReplaceSymbolPreferences(ctx context.Context, participantID uint, prefs []models.SymbolPreference) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("participant_id = ?", participantID).
			Delete(&models.SymbolPreference{}).Error; err != nil {
			return err
		}
		for i := range prefs {
			prefs[i].ParticipantID = participantID
			if err := tx.Create(&prefs[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// GetSymbolPreferences returns a participant's word preferences in word order.
func GetSymbolPreferences(ctx context.Context, participantID uint) ([]models.SymbolPreference, error) {
	var prefs []models.SymbolPreference
	result := database.DB.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("target_word ASC").
		Find(&prefs)
	return prefs, result.Error
}

// ChoiceCounts is a preference tally split by choice type.
type ChoiceCounts struct {
	AI      int64 `json:"ai"`
	KAAC    int64 `json:"kaac"`
	Similar int64 `json:"similar"`
}

// WordStats is the per-word preference tally.
type WordStats struct {
	AI      int64 `json:"ai"`
	KAAC    int64 `json:"kaac"`
	Similar int64 `json:"similar"`
	Total   int64 `json:"total"`
}

// PreferenceSummary is the aggregate view over all symbol preferences.
type PreferenceSummary struct {
	TotalResponses    int64                `json:"total_responses"`
	TotalParticipants int64                `json:"total_participants"`
	OverallStats      ChoiceCounts         `json:"overall_stats"`
	WordStats         map[string]WordStats `json:"word_stats"`
}

// GetPreferenceSummary tallies symbol preferences per word over the given
// vocabulary, plus overall counts and the number of distinct participants
// who have submitted at least one preference. Read-only and repeatable.
func GetPreferenceSummary(ctx context.Context, words []string) (*PreferenceSummary, error) {
	db := database.DB.WithContext(ctx)
	summary := &PreferenceSummary{WordStats: make(map[string]WordStats, len(words))}

	if err := db.Model(&models.SymbolPreference{}).Count(&summary.TotalResponses).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.SymbolPreference{}).
		Distinct("participant_id").Count(&summary.TotalParticipants).Error; err != nil {
		return nil, err
	}

	countByType := func(word string, choice models.ChoiceType) (int64, error) {
		var n int64
		q := db.Model(&models.SymbolPreference{}).Where("chosen_type = ?", choice)
		if word != "" {
			q = q.Where("target_word = ?", word)
		}
		err := q.Count(&n).Error
		return n, err
	}

	var err error
	if summary.OverallStats.AI, err = countByType("", models.ChoiceAI); err != nil {
		return nil, err
	}
	if summary.OverallStats.KAAC, err = countByType("", models.ChoiceKAAC); err != nil {
		return nil, err
	}
	if summary.OverallStats.Similar, err = countByType("", models.ChoiceSimilar); err != nil {
		return nil, err
	}

	for _, word := range words {
		var stats WordStats
		if stats.AI, err = countByType(word, models.ChoiceAI); err != nil {
			return nil, err
		}
		if stats.KAAC, err = countByType(word, models.ChoiceKAAC); err != nil {
			return nil, err
		}
		if stats.Similar, err = countByType(word, models.ChoiceSimilar); err != nil {
			return nil, err
		}
		if err = db.Model(&models.SymbolPreference{}).
			Where("target_word = ?", word).Count(&stats.Total).Error; err != nil {
			return nil, err
		}
		summary.WordStats[word] = stats
	}

	return summary, nil
}
