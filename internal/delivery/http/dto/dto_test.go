package dto

import (
	"encoding/json"
	"testing"

	"skillpath/internal/domain/progress"
	"skillpath/internal/domain/roadmap"

	"github.com/stretchr/testify/require"
)

func TestNewEnrichedRoadmap_UntrackedItemsAreNotStarted(t *testing.T) {
	r := roadmap.Roadmap{Phases: []roadmap.Phase{{
		Phase:    1,
		Courses:  []roadmap.Item{{ID: "c1", Name: "CS50"}},
		Projects: []roadmap.Item{{ID: "p1", Name: "Portfolio"}},
	}}}
	trackers := map[string]progress.Tracker{
		"c1": {ItemID: "c1", Status: progress.StatusCompleted, EncouragementMessage: "nice"},
	}

	out := NewEnrichedRoadmap(r, trackers)
	require.Equal(t, progress.StatusCompleted, out.Phases[0].Courses[0].Progress.Status)
	require.Equal(t, "nice", out.Phases[0].Courses[0].Progress.EncouragementMessage)
	require.Equal(t, progress.StatusNotStarted, out.Phases[0].Projects[0].Progress.Status)
	require.NotNil(t, out.Phases[0].Tests)

	b, err := json.Marshal(out)
	require.NoError(t, err)
	var m map[string][]map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	phase := m["phases"][0]
	require.Equal(t, float64(1), phase["phase"])
	courses, ok := phase["courses"].([]any)
	require.True(t, ok)
	require.Len(t, courses, 1)
	course, ok := courses[0].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "c1", course["id"])
	require.Equal(t, "CS50", course["name"])
	require.Equal(t, map[string]any{"status": "completed", "encouragement_message": "nice"}, course["progress"])
}
