package export

import (
	"math"
	"time"

	"aacstudy-go/internal/models"
)

// DurationMinutes returns the session length in minutes rounded to two
// decimals, or nil when the session was never completed.
func DurationMinutes(startedAt time.Time, completedAt *time.Time) *float64 {
	if completedAt == nil {
		return nil
	}
	minutes := round2(completedAt.Sub(startedAt).Minutes())
	return &minutes
}

// ParticipantSummary is one row of the per-participant summary sheet.
// Only participants with at least one main-block trial get a row.
type ParticipantSummary struct {
	Participant *models.Participant

	Accuracy     float64
	AvgRT        float64
	AIAccuracy   float64
	AIAvgRT      float64
	KAACAccuracy float64
	KAACAvgRT    float64

	EasierDisplay     string
	PreferenceDisplay string

	AIPrefCount      int
	KAACPrefCount    int
	SimilarPrefCount int
}

// SummarizeParticipant aggregates one participant's main-block trials and
// preferences. Returns false when the participant has no main-block trials;
// such participants carry no analyzable accuracy or reaction-time data.
func SummarizeParticipant(p *models.Participant, mainTrials []models.TrialResponse,
	legacy *models.Preference, prefs []models.SymbolPreference) (*ParticipantSummary, bool) {

	if len(mainTrials) == 0 {
		return nil, false
	}

	s := &ParticipantSummary{Participant: p}

	var aiTrials, kaacTrials []models.TrialResponse
	for _, t := range mainTrials {
		if t.SymbolType == models.SymbolTypeAI {
			aiTrials = append(aiTrials, t)
		} else if t.SymbolType == models.SymbolTypeKAAC {
			kaacTrials = append(kaacTrials, t)
		}
	}

	s.Accuracy, s.AvgRT = accuracyAndMeanRT(mainTrials)
	s.AIAccuracy, s.AIAvgRT = accuracyAndMeanRT(aiTrials)
	s.KAACAccuracy, s.KAACAvgRT = accuracyAndMeanRT(kaacTrials)

	if legacy != nil {
		s.EasierDisplay = legacy.EasierToUnderstand.Display()
		s.PreferenceDisplay = legacy.Preference.Display()
	}

	for _, pref := range prefs {
		switch pref.ChosenType {
		case models.ChoiceAI:
			s.AIPrefCount++
		case models.ChoiceKAAC:
			s.KAACPrefCount++
		case models.ChoiceSimilar:
			s.SimilarPrefCount++
		}
	}

	return s, true
}

// accuracyAndMeanRT returns accuracy percentage and mean reaction time,
// both rounded to two decimals. Zero trials yield zeros, never NaN.
func accuracyAndMeanRT(trials []models.TrialResponse) (accuracy, meanRT float64) {
	if len(trials) == 0 {
		return 0, 0
	}
	var correct, rtSum int
	for _, t := range trials {
		if t.IsCorrect {
			correct++
		}
		rtSum += t.ReactionTime
	}
	accuracy = round2(float64(correct) / float64(len(trials)) * 100)
	meanRT = round2(float64(rtSum) / float64(len(trials)))
	return accuracy, meanRT
}

// WordStat is one row of the per-word statistics sheet.
type WordStat struct {
	Word    string
	AI      int
	KAAC    int
	Similar int
	Total   int

	AIPct      float64
	KAACPct    float64
	SimilarPct float64
}

// SummarizeWord tallies choice types for one vocabulary word. Returns
// false when the word has no responses; zero-total rows are skipped
// rather than rendered as zero-over-zero.
func SummarizeWord(word string, prefs []models.SymbolPreference) (WordStat, bool) {
	stat := WordStat{Word: word}
	for _, p := range prefs {
		if p.TargetWord != word {
			continue
		}
		stat.Total++
		switch p.ChosenType {
		case models.ChoiceAI:
			stat.AI++
		case models.ChoiceKAAC:
			stat.KAAC++
		case models.ChoiceSimilar:
			stat.Similar++
		}
	}
	if stat.Total == 0 {
		return stat, false
	}
	total := float64(stat.Total)
	stat.AIPct = round1(float64(stat.AI) / total * 100)
	stat.KAACPct = round1(float64(stat.KAAC) / total * 100)
	stat.SimilarPct = round1(float64(stat.Similar) / total * 100)
	return stat, true
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func round1(x float64) float64 {
	return math.Round(x*10) / 10
}
