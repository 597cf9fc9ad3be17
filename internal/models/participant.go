package models

import "time"

// Gender codes stored on participants.
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// Vision codes stored on participants.
type Vision string

const (
	VisionNormal    Vision = "normal"
	VisionCorrected Vision = "corrected"
)

// Block order counterbalancing codes. The front-end and the exported
// spreadsheets both speak the integer encoding, so it stays an integer.
const (
	BlockOrderAIFirst   = 1
	BlockOrderKAACFirst = 2
)

// Participant is one experiment session.
type Participant struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	ParticipantID string `gorm:"size:50;uniqueIndex" json:"participant_id"`
	Name          string `gorm:"size:100" json:"name"`
	PhoneLast4    string `gorm:"size:4" json:"phone_last4"`
	Age           int    `json:"age"`
	Gender        Gender `gorm:"size:10" json:"gender"`
	Education     string `gorm:"size:50" json:"education"`
	Vision        Vision `gorm:"size:20" json:"vision"`

	HasAACExperience bool `gorm:"column:has_aac_experience" json:"has_aac_experience"`
	HasAACEducation  bool `gorm:"column:has_aac_education" json:"has_aac_education"`
	ConsentAgreed    bool `json:"consent_agreed"`

	// 1: AI block first, 2: existing (KAAC) block first.
	BlockOrder int `json:"block_order"`

	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at"`
}

func (Participant) TableName() string {
	return "participants"
}

// GenderDisplay returns the Korean display label used in exports.
func (p *Participant) GenderDisplay() string {
	if p.Gender == GenderFemale {
		return "여성"
	}
	return "남성"
}

// VisionDisplay returns the Korean display label used in exports.
func (p *Participant) VisionDisplay() string {
	if p.Vision == VisionCorrected {
		return "교정"
	}
	return "정상"
}

// BlockOrderDisplay returns the Korean display label used in exports.
func (p *Participant) BlockOrderDisplay() string {
	if p.BlockOrder == BlockOrderAIFirst {
		return "AI먼저"
	}
	return "KAAC먼저"
}
