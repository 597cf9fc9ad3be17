package handlers

import (
	"net/http"
	"time"

	"aacstudy-go/internal/models"
	"aacstudy-go/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// DemographicPayload is the demographic block of a completion request.
type DemographicPayload struct {
	Name             string `json:"name"`
	PhoneLast4       string `json:"phone_last4"`
	Age              int    `json:"age"`
	Gender           string `json:"gender"`
	Vision           string `json:"vision"`
	Education        string `json:"education"`
	HasAACExperience bool   `json:"has_aac_experience"`
	HasAACEducation  bool   `json:"has_aac_education"`
	BlockOrder       int    `json:"block_order"`
}

// TrialPayload is one trial record inside a completion request. Trial
// numbers are assigned server-side from list order.
type TrialPayload struct {
	TargetWord     string `json:"target_word"`
	SymbolType     string `json:"symbol_type"`
	SelectedSymbol string `json:"selected_symbol"`
	IsCorrect      bool   `json:"is_correct"`
	ReactionTime   int    `json:"reaction_time"`
	ErrorCount     int    `json:"error_count"`
}

// CompleteExperimentRequest is the full-session save payload.
type CompleteExperimentRequest struct {
	Demographic     *DemographicPayload `json:"demographic"`
	StartTime       string              `json:"start_time"`
	EndTime         string              `json:"end_time"`
	PracticeResults []TrialPayload      `json:"practice_results"`
	TrialResults    []TrialPayload      `json:"trial_results"`
}

type ExperimentHandler struct {
	log *zap.Logger
}

func NewExperimentHandler(log *zap.Logger) *ExperimentHandler {
	return &ExperimentHandler{log: log}
}

// Complete saves a whole session (participant, practice trials, main
// trials) in one transaction and returns the allocated participant id.
func (h *ExperimentHandler) Complete(c *gin.Context) {
	var req CompleteExperimentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warn("Failed to bind completion payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Demographic == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "demographic data is required"})
		return
	}

	startedAt := time.Now().UTC()
	if t := parseClientTime(req.StartTime); t != nil {
		startedAt = *t
	}
	completedAt := parseClientTime(req.EndTime)

	participant := &models.Participant{
		Name:             req.Demographic.Name,
		PhoneLast4:       req.Demographic.PhoneLast4,
		Age:              req.Demographic.Age,
		Gender:           genderOrDefault(req.Demographic.Gender),
		Vision:           visionOrDefault(req.Demographic.Vision),
		Education:        req.Demographic.Education,
		HasAACExperience: req.Demographic.HasAACExperience,
		HasAACEducation:  req.Demographic.HasAACEducation,
		ConsentAgreed:    true,
		BlockOrder:       blockOrderOrDefault(req.Demographic.BlockOrder),
		StartedAt:        startedAt,
		CompletedAt:      completedAt,
	}

	participantID, err := repository.CompleteExperiment(c.Request.Context(), participant,
		trialsFromPayload(req.PracticeResults), trialsFromPayload(req.TrialResults))
	if err != nil {
		h.log.Error("Failed to complete experiment",
			zap.Error(err),
			zap.Int("practice_trials", len(req.PracticeResults)),
			zap.Int("main_trials", len(req.TrialResults)),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	h.log.Info("Experiment completed",
		zap.String("participant_id", participantID),
		zap.Int("practice_trials", len(req.PracticeResults)),
		zap.Int("main_trials", len(req.TrialResults)),
	)
	c.JSON(http.StatusCreated, gin.H{
		"message":        "Experiment completed successfully",
		"participant_id": participantID,
	})
}

func trialsFromPayload(payloads []TrialPayload) []models.TrialResponse {
	trials := make([]models.TrialResponse, len(payloads))
	for i, p := range payloads {
		trials[i] = models.TrialResponse{
			TargetWord: p.TargetWord,
			SymbolType: models.SymbolType(p.SymbolType),
			// The front-end labels blocks by symbol type.
			BlockType:        p.SymbolType,
			PresentedSymbols: models.EmptyPresentedSymbols(),
			SelectedSymbol:   p.SelectedSymbol,
			IsCorrect:        p.IsCorrect,
			ReactionTime:     p.ReactionTime,
			ErrorCount:       p.ErrorCount,
		}
	}
	return trials
}

var clientTimeLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
}

// parseClientTime parses an ISO-8601 timestamp from the front-end.
// Returns nil when the value is empty or unparseable.
func parseClientTime(value string) *time.Time {
	if value == "" {
		return nil
	}
	for _, layout := range clientTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

func genderOrDefault(value string) models.Gender {
	if value == string(models.GenderFemale) {
		return models.GenderFemale
	}
	return models.GenderMale
}

func visionOrDefault(value string) models.Vision {
	if value == string(models.VisionCorrected) {
		return models.VisionCorrected
	}
	return models.VisionNormal
}

func blockOrderOrDefault(value int) int {
	if value == models.BlockOrderKAACFirst {
		return models.BlockOrderKAACFirst
	}
	return models.BlockOrderAIFirst
}
