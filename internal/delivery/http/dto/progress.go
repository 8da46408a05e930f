package dto

import (
	"time"

	"skillpath/internal/domain/progress"
	"skillpath/internal/domain/roadmap"

	"github.com/google/uuid"
)

type TrackerResponse struct {
	ID                   uuid.UUID        `json:"id"`
	UserID               uuid.UUID        `json:"user_id"`
	ItemID               string           `json:"item_id"`
	ItemType             roadmap.ItemType `json:"item_type"`
	ItemName             string           `json:"item_name"`
	Status               progress.Status  `json:"status"`
	CompletionDate       *time.Time       `json:"completion_date"`
	Notes                string           `json:"notes"`
	EncouragementMessage string           `json:"encouragement_message"`
	CreatedAt            time.Time        `json:"created_at"`
}

type UpdateProgressResponse struct {
	Progress     TrackerResponse `json:"progress"`
	AllCompleted bool            `json:"all_completed"`
	SideEffects  []SideEffect    `json:"side_effects"`
}

type TasksResponse struct {
	Tasks []TrackerResponse `json:"tasks"`
}

func NewTrackerResponse(t progress.Tracker) TrackerResponse {
	return TrackerResponse{
		ID:                   t.ID,
		UserID:               t.UserID,
		ItemID:               t.ItemID,
		ItemType:             t.ItemType,
		ItemName:             t.ItemName,
		Status:               t.Status,
		CompletionDate:       t.CompletionDate,
		Notes:                t.Notes,
		EncouragementMessage: t.EncouragementMessage,
		CreatedAt:            t.CreatedAt,
	}
}
