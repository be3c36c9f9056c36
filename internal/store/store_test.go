package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkeller/cadence/internal/sched"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "cadence.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func mustTask(t *testing.T, label, start, end string) sched.Task {
	t.Helper()
	task, err := sched.NewTask(label, start, end)
	require.NoError(t, err)
	return task
}

func TestOpen_Idempotent(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cadence.db")

	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s2.Close())
}

func TestBaseSchedule_AbsentThenRoundTrip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	_, ok, err := s.LoadBase(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "never-written document reads as absent")

	tasks := []sched.Task{
		mustTask(t, "Write", "09:00", "10:30"),
		mustTask(t, "Gym", "18:00", "19:00"),
	}
	require.NoError(t, s.SaveBase(ctx, tasks))

	got, ok, err := s.LoadBase(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, tasks, got)

	// Whole-document replace.
	require.NoError(t, s.SaveBase(ctx, tasks[:1]))
	got, _, err = s.LoadBase(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestDayRecord_SingleSlot(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	rec, err := s.LoadDay(ctx)
	require.NoError(t, err)
	assert.Nil(t, rec, "first run ever: no current day")

	day := sched.DayRecord{
		Date:      "2025-03-03",
		Tasks:     []sched.TaskInstance{sched.NewInstance(mustTask(t, "Write", "09:00", "10:30"))},
		Penalties: []sched.Penalty{{ID: "p-1", Label: "Read", Duration: 30}},
		LastRun:   "2025-03-03",
	}
	require.NoError(t, s.SaveDay(ctx, day))

	got, err := s.LoadDay(ctx)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, day, *got)

	next := day
	next.Date = "2025-03-04"
	require.NoError(t, s.SaveDay(ctx, next))
	got, err = s.LoadDay(ctx)
	require.NoError(t, err)
	assert.Equal(t, "2025-03-04", got.Date, "the slot holds exactly one day")
}

func TestArchive_MostRecentFirst(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	for _, date := range []string{"2025-03-01", "2025-03-03", "2025-03-02"} {
		require.NoError(t, s.ArchiveDay(ctx, sched.DayRecord{
			Date:      date,
			Tasks:     []sched.TaskInstance{},
			Penalties: []sched.Penalty{},
			LastRun:   date,
		}))
	}

	all, err := s.Archive(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "2025-03-03", all[0].Date)
	assert.Equal(t, "2025-03-01", all[2].Date)

	limited, err := s.Archive(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}

func TestDirectives_RoundTrip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	items, err := s.LoadDirectives(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)

	at := time.Date(2025, 3, 3, 14, 0, 0, 0, time.UTC)
	want := []sched.Directive{
		{ID: "d-1", Title: "Call dentist", RemindAt: &at, Every: 0, ReminderIDs: []string{"n-1"}},
		{ID: "d-2", Title: "Stretch", Every: 30, Completed: true},
	}
	require.NoError(t, s.SaveDirectives(ctx, want))

	got, err := s.LoadDirectives(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, want[0].Title, got[0].Title)
	assert.True(t, want[0].RemindAt.Equal(*got[0].RemindAt))
	assert.Equal(t, want[1], got[1])
}
