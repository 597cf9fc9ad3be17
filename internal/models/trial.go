package models

import (
	"time"

	"gorm.io/datatypes"
)

// SymbolType identifies which symbol set a stimulus came from.
type SymbolType string

const (
	SymbolTypeAI   SymbolType = "ai"
	SymbolTypeKAAC SymbolType = "kaac"
)

// Display returns the label used in exports.
func (s SymbolType) Display() string {
	if s == SymbolTypeAI {
		return "AI"
	}
	return "KAAC"
}

// TrialResponse is one stimulus-presentation-and-response unit.
// trial_number restarts at 1 for the practice and main blocks; the pairing
// (participant, is_practice, trial_number) is unique by client convention
// only, matching the original schema.
type TrialResponse struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	ParticipantID uint        `gorm:"not null;index:idx_trial_participant_number" json:"participant_id"`
	Participant   Participant `gorm:"foreignKey:ParticipantID;constraint:OnDelete:CASCADE" json:"-"`

	TrialNumber int  `gorm:"index:idx_trial_participant_number" json:"trial_number"`
	IsPractice  bool `json:"is_practice"`

	TargetWord string     `gorm:"size:20" json:"target_word"`
	SymbolType SymbolType `gorm:"size:10;index" json:"symbol_type"`
	BlockType  string     `gorm:"size:10" json:"block_type"`

	// Symbol options shown on screen for this trial, as sent by the
	// front-end. The completion endpoint stores an empty list here.
	PresentedSymbols datatypes.JSON `json:"presented_symbols"`

	SelectedSymbol string `gorm:"size:50" json:"selected_symbol"`
	IsCorrect      bool   `json:"is_correct"`
	ReactionTime   int    `json:"reaction_time"`
	ErrorCount     int    `json:"error_count"`

	RespondedAt time.Time `gorm:"autoCreateTime" json:"responded_at"`
}

func (TrialResponse) TableName() string {
	return "trial_responses"
}

// EmptyPresentedSymbols is the stored value when no option list was recorded.
func EmptyPresentedSymbols() datatypes.JSON {
	return datatypes.JSON([]byte("[]"))
}
