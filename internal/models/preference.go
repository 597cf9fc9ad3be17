package models

import "time"

// ChoiceType is a preference judgment resolved to a symbol set.
type ChoiceType string

const (
	ChoiceAI      ChoiceType = "ai"
	ChoiceKAAC    ChoiceType = "kaac"
	ChoiceSimilar ChoiceType = "similar"
)

// Display returns the Korean label used in exports.
func (c ChoiceType) Display() string {
	switch c {
	case ChoiceAI:
		return "AI"
	case ChoiceKAAC:
		return "KAAC"
	case ChoiceSimilar:
		return "비슷함"
	}
	return string(c)
}

// Side is a screen position in the forced-choice task.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Chosen is the participant's raw answer in the forced-choice task:
// one of the two sides, or "similar".
type Chosen string

const (
	ChosenLeft    Chosen = "left"
	ChosenRight   Chosen = "right"
	ChosenSimilar Chosen = "similar"
)

// SymbolPreference is one (participant, target word) forced-choice
// judgment. Exactly one row per word per participant; resubmission
// replaces the participant's whole set.
type SymbolPreference struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	ParticipantID uint        `gorm:"not null;uniqueIndex:idx_participant_word" json:"participant_id"`
	Participant   Participant `gorm:"foreignKey:ParticipantID;constraint:OnDelete:CASCADE" json:"-"`

	TargetWord string `gorm:"size:20;uniqueIndex:idx_participant_word" json:"target_word"`

	// Which side the AI symbol was shown on.
	AIPosition Side `gorm:"column:ai_position;size:10" json:"ai_position"`
	// The raw choice, and the choice resolved against AIPosition. The
	// front-end computes ChosenType and it is stored verbatim.
	Chosen     Chosen     `gorm:"size:10" json:"chosen"`
	ChosenType ChoiceType `gorm:"size:10;index" json:"chosen_type"`

	CreatedAt time.Time `json:"created_at"`
}

func (SymbolPreference) TableName() string {
	return "symbol_preferences"
}

// Preference is the whole-experiment preference questionnaire. Superseded
// by SymbolPreference; kept for older client versions.
type Preference struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	ParticipantID uint        `gorm:"not null;uniqueIndex" json:"participant_id"`
	Participant   Participant `gorm:"foreignKey:ParticipantID;constraint:OnDelete:CASCADE" json:"-"`

	EasierToUnderstand ChoiceType `gorm:"size:10" json:"easier_to_understand"`
	Preference         ChoiceType `gorm:"size:10" json:"preference"`
	Reason             string     `json:"reason"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Preference) TableName() string {
	return "preferences"
}
