package progress

import (
	"errors"
	"sort"
	"strings"
	"time"

	"skillpath/internal/domain/roadmap"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("progress tracker not found")

type Status string

const (
	StatusNotStarted Status = "not_started"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
)

func ParseStatus(s string) (Status, bool) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusNotStarted, StatusInProgress, StatusCompleted:
		return st, true
	default:
		return "", false
	}
}

type Tracker struct {
	ID                   uuid.UUID
	UserID               uuid.UUID
	ItemID               string
	ItemType             roadmap.ItemType
	ItemName             string
	Status               Status
	CompletionDate       *time.Time
	Notes                string
	EncouragementMessage string
	CreatedAt            time.Time
}

// Transition applies a status change. Entering completed stamps the
// completion date; leaving it clears the date and the encouragement.
func (t *Tracker) Transition(status Status, notes string, now time.Time) {
	if status == StatusCompleted {
		ts := now.UTC()
		t.CompletionDate = &ts
	} else {
		t.CompletionDate = nil
		t.EncouragementMessage = ""
	}
	t.Status = status
	t.Notes = notes
}

func (t Tracker) IsCompleted() bool {
	return t.Status == StatusCompleted
}

// AllCompleted is true iff there is at least one tracker and every one is completed.
func AllCompleted(trackers []Tracker) bool {
	if len(trackers) == 0 {
		return false
	}
	for _, t := range trackers {
		if !t.IsCompleted() {
			return false
		}
	}
	return true
}

// RecentCompleted returns up to limit completed trackers, oldest first, ending
// with the most recently completed.
func RecentCompleted(trackers []Tracker, limit int) []Tracker {
	done := make([]Tracker, 0, len(trackers))
	for _, t := range trackers {
		if t.IsCompleted() {
			done = append(done, t)
		}
	}
	sort.SliceStable(done, func(i, j int) bool {
		return completedAt(done[i]).Before(completedAt(done[j]))
	})
	if limit > 0 && len(done) > limit {
		done = done[len(done)-limit:]
	}
	return done
}

func completedAt(t Tracker) time.Time {
	if t.CompletionDate != nil {
		return *t.CompletionDate
	}
	return t.CreatedAt
}

// Index maps item ids to trackers.
func Index(trackers []Tracker) map[string]Tracker {
	out := make(map[string]Tracker, len(trackers))
	for _, t := range trackers {
		out[t.ItemID] = t
	}
	return out
}

type TypeCount struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

type Summary struct {
	Total      int                            `json:"total"`
	NotStarted int                            `json:"not_started"`
	InProgress int                            `json:"in_progress"`
	Completed  int                            `json:"completed"`
	ByType     map[roadmap.ItemType]TypeCount `json:"by_type"`
}

func Summarize(trackers []Tracker) Summary {
	s := Summary{ByType: make(map[roadmap.ItemType]TypeCount, len(roadmap.ItemTypes))}
	for _, t := range roadmap.ItemTypes {
		s.ByType[t] = TypeCount{}
	}
	for _, t := range trackers {
		s.Total++
		switch t.Status {
		case StatusNotStarted:
			s.NotStarted++
		case StatusInProgress:
			s.InProgress++
		case StatusCompleted:
			s.Completed++
		}
		tc := s.ByType[t.ItemType]
		tc.Total++
		if t.IsCompleted() {
			tc.Completed++
		}
		s.ByType[t.ItemType] = tc
	}
	return s
}
