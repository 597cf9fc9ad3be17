package handlers

import (
	"errors"
	"net/http"
	"time"

	"aacstudy-go/internal/models"
	"aacstudy-go/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateParticipantRequest is the direct participant creation payload.
type CreateParticipantRequest struct {
	Name             string `json:"name"`
	PhoneLast4       string `json:"phone_last4"`
	Age              int    `json:"age"`
	Gender           string `json:"gender"`
	Vision           string `json:"vision"`
	Education        string `json:"education"`
	HasAACExperience bool   `json:"has_aac_experience"`
	HasAACEducation  bool   `json:"has_aac_education"`
	ConsentAgreed    bool   `json:"consent_agreed"`
	BlockOrder       int    `json:"block_order"`
}

type ParticipantHandler struct {
	log *zap.Logger
}

func NewParticipantHandler(log *zap.Logger) *ParticipantHandler {
	return &ParticipantHandler{log: log}
}

// Create registers a participant directly, outside the completion flow.
func (h *ParticipantHandler) Create(c *gin.Context) {
	var req CreateParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	participant := &models.Participant{
		Name:             req.Name,
		PhoneLast4:       req.PhoneLast4,
		Age:              req.Age,
		Gender:           genderOrDefault(req.Gender),
		Vision:           visionOrDefault(req.Vision),
		Education:        req.Education,
		HasAACExperience: req.HasAACExperience,
		HasAACEducation:  req.HasAACEducation,
		ConsentAgreed:    req.ConsentAgreed,
		BlockOrder:       blockOrderOrDefault(req.BlockOrder),
		StartedAt:        time.Now().UTC(),
	}

	if err := repository.CreateParticipant(c.Request.Context(), participant); err != nil {
		h.log.Error("Failed to create participant", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.log.Info("Participant created", zap.String("participant_id", participant.ParticipantID))
	c.JSON(http.StatusCreated, participant)
}

// List returns all participants.
func (h *ParticipantHandler) List(c *gin.Context) {
	participants, err := repository.ListParticipants(c.Request.Context())
	if err != nil {
		h.log.Error("Failed to list participants", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, participants)
}

// Get returns one participant by public identifier.
func (h *ParticipantHandler) Get(c *gin.Context) {
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
	c.JSON(http.StatusOK, participant)
}
