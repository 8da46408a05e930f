package dto

import (
	"time"

	"skillpath/internal/domain/professional"

	"github.com/google/uuid"
)

type ResumeResponse struct {
	Resume        professional.Resume `json:"resume"`
	LastGenerated *time.Time          `json:"last_generated"`
}

type ProfessionalProfileResponse struct {
	ID            uuid.UUID             `json:"id"`
	UserID        uuid.UUID             `json:"user_id"`
	Resume        professional.Resume   `json:"resume"`
	LinkedIn      professional.LinkedIn `json:"linkedin"`
	LastGenerated *time.Time            `json:"last_generated"`
}

type RefreshProfileResponse struct {
	Profile     ProfessionalProfileResponse `json:"profile"`
	SideEffects []SideEffect                `json:"side_effects"`
}

func NewProfessionalProfileResponse(p professional.Profile) ProfessionalProfileResponse {
	p.Resume.EnsureLists()
	p.LinkedIn.EnsureLists()
	return ProfessionalProfileResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		Resume:        p.Resume,
		LinkedIn:      p.LinkedIn,
		LastGenerated: p.LastGenerated,
	}
}
