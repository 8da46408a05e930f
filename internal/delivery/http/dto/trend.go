package dto

import (
	"time"

	"skillpath/internal/domain/trend"

	"github.com/google/uuid"
)

type TrendResponse struct {
	ID          uuid.UUID    `json:"id"`
	Industry    string       `json:"industry"`
	Trends      trend.Trends `json:"trends"`
	GeneratedAt time.Time    `json:"generated_at"`
}

func NewTrendResponse(s trend.Snapshot) TrendResponse {
	return TrendResponse{ID: s.ID, Industry: s.Industry, Trends: s.Trends, GeneratedAt: s.GeneratedAt}
}
