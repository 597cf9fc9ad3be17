package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"aacstudy-go/internal/models"
	"aacstudy-go/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// CreateTrialRequest is the single-trial save payload. The participant is
// referenced by database row id, as older clients do.
type CreateTrialRequest struct {
	ParticipantID    uint            `json:"participant_id"`
	TrialNumber      int             `json:"trial_number"`
	IsPractice       bool            `json:"is_practice"`
	TargetWord       string          `json:"target_word"`
	SymbolType       string          `json:"symbol_type"`
	BlockType        string          `json:"block_type"`
	PresentedSymbols json.RawMessage `json:"presented_symbols"`
	SelectedSymbol   string          `json:"selected_symbol"`
	IsCorrect        bool            `json:"is_correct"`
	ReactionTime     int             `json:"reaction_time"`
	ErrorCount       int             `json:"error_count"`
}

type TrialHandler struct {
	log *zap.Logger
}

func NewTrialHandler(log *zap.Logger) *TrialHandler {
	return &TrialHandler{log: log}
}

// Create saves one trial row.
func (h *TrialHandler) Create(c *gin.Context) {
	var req CreateTrialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.ParticipantID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "participant_id is required"})
		return
	}
	if req.TrialNumber <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "trial_number must be positive"})
		return
	}
	if req.ReactionTime < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reaction_time must be non-negative"})
		return
	}

	trial := &models.TrialResponse{
		ParticipantID:  req.ParticipantID,
		TrialNumber:    req.TrialNumber,
		IsPractice:     req.IsPractice,
		TargetWord:     req.TargetWord,
		SymbolType:     models.SymbolType(req.SymbolType),
		BlockType:      req.BlockType,
		SelectedSymbol: req.SelectedSymbol,
		IsCorrect:      req.IsCorrect,
		ReactionTime:   req.ReactionTime,
		ErrorCount:     req.ErrorCount,
	}
	if len(req.PresentedSymbols) > 0 {
		trial.PresentedSymbols = datatypes.JSON(req.PresentedSymbols)
	}

	if err := repository.CreateTrial(c.Request.Context(), trial); err != nil {
		h.log.Error("Failed to save trial", zap.Error(err), zap.Uint("participant_id", req.ParticipantID))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, trial)
}

// ListByParticipant returns all trials of one participant.
func (h *TrialHandler) ListByParticipant(c *gin.Context) {
	participant, err := repository.GetParticipant(c.Request.Context(), c.Param("participant_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Participant not found"})
			return
		}
		h.log.Error("Failed to fetch participant", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	trials, err := repository.GetTrialsByParticipant(c.Request.Context(), participant.ID)
	if err != nil {
		h.log.Error("Failed to list trials", zap.Error(err), zap.String("participant_id", participant.ParticipantID))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, trials)
}
