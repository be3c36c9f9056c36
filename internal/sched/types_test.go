package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask_DerivesDuration(t *testing.T) {
	task, err := NewTask("Write", "09:00", "10:30")
	require.NoError(t, err)
	assert.Equal(t, "Write", task.Label)
	assert.Equal(t, 90, task.Duration)
	assert.Equal(t, task.End.Minutes()-task.Start.Minutes(), task.Duration)
}

func TestNewTask_Rejections(t *testing.T) {
	tests := []struct {
		name             string
		label, start, end string
	}{
		{"end before start", "Write", "10:00", "09:00"},
		{"end equals start", "Write", "09:00", "09:00"},
		{"empty label", "   ", "09:00", "10:00"},
		{"bad start", "Write", "9am", "10:00"},
		{"bad end", "Write", "09:00", "26:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTask(tt.label, tt.start, tt.end)
			require.Error(t, err)
			assert.True(t, IsValidation(err))
		})
	}
}

func TestNormalizeLabel(t *testing.T) {
	// U+0065 U+0301 (e + combining acute) normalizes to U+00E9.
	composed := "café"
	decomposed := "café"
	assert.Equal(t, NormalizeLabel(composed), NormalizeLabel(decomposed))
	assert.Equal(t, "x", NormalizeLabel("  x  "))
}

func TestDayRecord_OwedMinutes(t *testing.T) {
	d := DayRecord{
		Penalties: []Penalty{
			{ID: "a", Label: "Write", Duration: 60},
			{ID: "b", Label: "Read", Duration: 30, Completed: true},
			{ID: "c", Label: "Gym", Duration: 45},
		},
	}
	assert.Equal(t, 105, d.OwedMinutes())
	active := d.ActivePenalties()
	require.Len(t, active, 2)
	assert.Equal(t, []string{"a", "c"}, []string{active[0].ID, active[1].ID})
}

func TestMarshalCanonical_Deterministic(t *testing.T) {
	task, err := NewTask("Write", "09:00", "10:30")
	require.NoError(t, err)
	rec := DayRecord{
		Date:      "2025-03-03",
		Tasks:     []TaskInstance{NewInstance(task)},
		Penalties: []Penalty{{ID: "p1", Label: "Write", Duration: 90}},
		LastRun:   "2025-03-03",
	}

	a, err := MarshalCanonical(rec)
	require.NoError(t, err)
	b, err := MarshalCanonical(rec)
	require.NoError(t, err)
	assert.Equal(t, a, b, "equal records must serialize byte-identically")

	back, err := UnmarshalDay(a)
	require.NoError(t, err)
	assert.Equal(t, rec, back)
}

func TestUnmarshalDay_RejectsUnknownFields(t *testing.T) {
	_, err := UnmarshalDay([]byte(`{"date":"2025-03-03","tasks":[],"penalties":[],"lastRun":"2025-03-03","theme":"scifi"}`))
	require.Error(t, err)
}
