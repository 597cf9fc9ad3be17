package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"aacstudy-go/internal/models"
	"aacstudy-go/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreatePreferenceRequest is the legacy whole-experiment preference payload.
type CreatePreferenceRequest struct {
	ParticipantID      uint   `json:"participant_id"`
	EasierToUnderstand string `json:"easier_to_understand"`
	Preference         string `json:"preference"`
	Reason             string `json:"reason"`
}

// SymbolPreferencePayload is one word judgment inside a symbol-preference
// submission. chosen_type is resolved client-side from chosen and
// ai_position and stored verbatim.
type SymbolPreferencePayload struct {
	TargetWord string `json:"target_word"`
	AIPosition string `json:"ai_position"`
	Chosen     string `json:"chosen"`
	ChosenType string `json:"chosen_type"`
}

// SubmitSymbolPreferencesRequest carries one judgment per vocabulary word.
type SubmitSymbolPreferencesRequest struct {
	ParticipantID string                    `json:"participant_id"`
	Preferences   []SymbolPreferencePayload `json:"preferences"`
}

type PreferenceHandler struct {
	log   *zap.Logger
	vocab *models.Vocabulary
}

func NewPreferenceHandler(log *zap.Logger, vocab *models.Vocabulary) *PreferenceHandler {
	return &PreferenceHandler{log: log, vocab: vocab}
}

// CreateLegacy saves the legacy whole-experiment preference questionnaire.
func (h *PreferenceHandler) CreateLegacy(c *gin.Context) {
	var req CreatePreferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participant, err := repository.GetParticipantByPK(c.Request.Context(), req.ParticipantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Participant not found"})
			return
		}
		h.log.Error("Failed to fetch participant", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	pref := &models.Preference{
		ParticipantID:      participant.ID,
		EasierToUnderstand: models.ChoiceType(req.EasierToUnderstand),
		Preference:         models.ChoiceType(req.Preference),
		Reason:             req.Reason,
	}
	if err := repository.CreatePreference(c.Request.Context(), pref); err != nil {
		h.log.Error("Failed to save preference", zap.Error(err), zap.String("participant_id", participant.ParticipantID))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, pref)
}

// GetLegacy returns a participant's legacy preference.
func (h *PreferenceHandler) GetLegacy(c *gin.Context) {
	participant, err := repository.GetParticipant(c.Request.Context(), c.Param("participant_id"))
	if err == nil {
		var pref *models.Preference
		pref, err = repository.GetPreferenceByParticipant(c.Request.Context(), participant.ID)
		if err == nil {
			c.JSON(http.StatusOK, pref)
			return
		}
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Data not found"})
		return
	}
	h.log.Error("Failed to fetch preference", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// SubmitSymbolPreferences replaces a participant's full set of word
// preferences with the submitted one.
func (h *PreferenceHandler) SubmitSymbolPreferences(c *gin.Context) {
	var req SubmitSymbolPreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ParticipantID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "participant_id가 필요합니다"})
		return
	}
	if len(req.Preferences) != h.vocab.Size() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("%d개 단어에 대한 선호도가 필요합니다", h.vocab.Size()),
		})
		return
	}

	participant, err := repository.GetParticipant(c.Request.Context(), req.ParticipantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "참가자를 찾을 수 없습니다"})
			return
		}
		h.log.Error("Failed to fetch participant", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	prefs := make([]models.SymbolPreference, len(req.Preferences))
	for i, p := range req.Preferences {
		prefs[i] = models.SymbolPreference{
			TargetWord: p.TargetWord,
			AIPosition: models.Side(p.AIPosition),
			Chosen:     models.Chosen(p.Chosen),
			ChosenType: models.ChoiceType(p.ChosenType),
		}
	}

	if err := repository.ReplaceSymbolPreferences(c.Request.Context(), participant.ID, prefs); err != nil {
		h.log.Error("Failed to save symbol preferences",
			zap.Error(err),
			zap.String("participant_id", req.ParticipantID),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "저장 오류: " + err.Error()})
		return
	}

	created := make([]gin.H, len(prefs))
	for i, p := range prefs {
		created[i] = gin.H{"target_word": p.TargetWord, "chosen_type": p.ChosenType}
	}
	h.log.Info("Symbol preferences saved",
		zap.String("participant_id", req.ParticipantID),
		zap.Int("count", len(created)),
	)
	c.JSON(http.StatusCreated, gin.H{
		"message":        "단어별 선호도가 성공적으로 저장되었습니다",
		"participant_id": req.ParticipantID,
		"count":          len(created),
		"preferences":    created,
	})
}

// GetSymbolPreferences returns a participant's word preferences.
func (h *PreferenceHandler) GetSymbolPreferences(c *gin.Context) {
	participantID := c.Param("participant_id")
	participant, err := repository.GetParticipant(c.Request.Context(), participantID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "참가자를 찾을 수 없습니다"})
			return
		}
		h.log.Error("Failed to fetch participant", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	prefs, err := repository.GetSymbolPreferences(c.Request.Context(), participant.ID)
	if err != nil {
		h.log.Error("Failed to list symbol preferences", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	data := make([]gin.H, len(prefs))
	for i, p := range prefs {
		data[i] = gin.H{
			"target_word": p.TargetWord,
			"ai_position": p.AIPosition,
			"chosen":      p.Chosen,
			"chosen_type": p.ChosenType,
			"created_at":  p.CreatedAt,
		}
	}
	c.JSON(http.StatusOK, gin.H{
		"participant_id": participantID,
		"count":          len(data),
		"preferences":    data,
	})
}

// Summary returns aggregate preference statistics over the vocabulary.
func (h *PreferenceHandler) Summary(c *gin.Context) {
	summary, err := repository.GetPreferenceSummary(c.Request.Context(), h.vocab.Words)
	if err != nil {
		h.log.Error("Failed to compute preference summary", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, summary)
}
