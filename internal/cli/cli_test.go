package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkeller/cadence/internal/engine"
	"github.com/rkeller/cadence/internal/remind"
	"github.com/rkeller/cadence/internal/sched"
	"github.com/rkeller/cadence/internal/store"
)

// monday is a fixed weekday used as "today" throughout the CLI tests.
var monday = time.Date(2025, 3, 3, 9, 30, 0, 0, time.UTC)

func pinNow(t *testing.T, at time.Time) {
	t.Helper()
	prev := nowFunc
	nowFunc = func() time.Time { return at }
	t.Cleanup(func() { nowFunc = prev })
}

func pinIDs(t *testing.T, ids ...string) {
	t.Helper()
	prev := idGen
	idGen = engine.NewFixedGenerator(ids...)
	t.Cleanup(func() { idGen = prev })
}

// execute runs the root command with args and returns stdout.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCommand()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func dbPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "cadence.db")
}

func seedBase(t *testing.T, db string) {
	t.Helper()
	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	write, err := sched.NewTask("Write", "09:00", "10:30")
	require.NoError(t, err)
	gym, err := sched.NewTask("Gym", "18:00", "19:00")
	require.NoError(t, err)
	require.NoError(t, st.SaveBase(context.Background(), []sched.Task{write, gym}))
}

func decodeDay(t *testing.T, out string) sched.DayRecord {
	t.Helper()
	var resp struct {
		Status string          `json:"status"`
		Data   sched.DayRecord `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	return resp.Data
}

func TestRoot_InvalidFormatRejected(t *testing.T) {
	_, err := execute(t, "--format", "xml", "show", "--db", dbPath(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid format")
}

func TestCheck_FirstRunSeedsFromBase(t *testing.T) {
	pinNow(t, monday)
	db := dbPath(t)
	seedBase(t, db)

	out, err := execute(t, "check", "--db", db, "--format", "json")
	require.NoError(t, err)

	day := decodeDay(t, out)
	assert.Equal(t, "2025-03-03", day.Date)
	assert.Equal(t, "2025-03-03", day.LastRun)
	require.Len(t, day.Tasks, 2)
	assert.Empty(t, day.Penalties)
}

func TestCheck_Idempotent(t *testing.T) {
	pinNow(t, monday)
	db := dbPath(t)
	seedBase(t, db)

	first, err := execute(t, "check", "--db", db, "--format", "json")
	require.NoError(t, err)
	second, err := execute(t, "check", "--db", db, "--format", "json")
	require.NoError(t, err)
	assert.Equal(t, decodeDay(t, first), decodeDay(t, second), "same-day check changes nothing")
}

func TestCheck_RolloverAccruesAndArchives(t *testing.T) {
	db := dbPath(t)
	seedBase(t, db)

	pinNow(t, monday)
	_, err := execute(t, "check", "--db", db)
	require.NoError(t, err)

	// Finish Gym, leave Write unfinished.
	out, err := execute(t, "done", "1", "--db", db, "--format", "json")
	require.NoError(t, err)
	assert.True(t, decodeDay(t, out).Tasks[1].Completed)

	pinNow(t, monday.AddDate(0, 0, 1)) // Tuesday
	out, err = execute(t, "check", "--db", db, "--format", "json")
	require.NoError(t, err)

	day := decodeDay(t, out)
	assert.Equal(t, "2025-03-04", day.Date)
	require.Len(t, day.Penalties, 1)
	assert.Equal(t, "Write", day.Penalties[0].Label)
	assert.Equal(t, 90, day.Penalties[0].Duration)
	require.Len(t, day.Tasks, 2, "base reseeds fresh instances")
	assert.False(t, day.Tasks[1].Completed)

	// Monday went into the archive.
	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	archived, err := st.Archive(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, "2025-03-03", archived[0].Date)
}

func TestCheck_WeekendSeedsNoTasks(t *testing.T) {
	db := dbPath(t)
	seedBase(t, db)

	pinNow(t, time.Date(2025, 3, 1, 8, 0, 0, 0, time.UTC)) // Saturday
	out, err := execute(t, "check", "--db", db, "--format", "json")
	require.NoError(t, err)
	assert.Empty(t, decodeDay(t, out).Tasks)
}

func TestMutations_StaleDayRefused(t *testing.T) {
	db := dbPath(t)
	seedBase(t, db)

	pinNow(t, monday)
	_, err := execute(t, "check", "--db", db)
	require.NoError(t, err)

	pinNow(t, monday.AddDate(0, 0, 1))
	_, err = execute(t, "done", "0", "--db", db)
	require.Error(t, err, "mutations never auto-roll")
	assert.Contains(t, err.Error(), "cadence check")
}

func TestPartialAndRedeemFlow(t *testing.T) {
	db := dbPath(t)
	seedBase(t, db)
	pinNow(t, monday)

	_, err := execute(t, "check", "--db", db)
	require.NoError(t, err)

	out, err := execute(t, "partial", "0", "30", "--db", db, "--format", "json")
	require.NoError(t, err)
	day := decodeDay(t, out)
	assert.True(t, day.Tasks[0].Completed)
	assert.True(t, day.Tasks[0].PartiallyCompleted)
	require.Len(t, day.Penalties, 1)
	assert.Equal(t, 60, day.Penalties[0].Duration)

	out, err = execute(t, "redeem", day.Penalties[0].ID, "25", "--db", db, "--format", "json")
	require.NoError(t, err)
	day = decodeDay(t, out)
	assert.Equal(t, 35, day.Penalties[0].Duration)

	out, err = execute(t, "redeem", day.Penalties[0].ID, "99", "--db", db, "--format", "json")
	require.NoError(t, err)
	day = decodeDay(t, out)
	assert.True(t, day.Penalties[0].Completed, "over-redemption settles")

	out, err = execute(t, "show", "--db", db, "--format", "json")
	require.NoError(t, err)
	assert.True(t, decodeDay(t, out).Penalties[0].Completed, "state survived persistence")
}

// recordingScheduler captures registrations for directive tests.
type recordingScheduler struct {
	next      int
	scheduled []remind.Occurrence
	canceled  []string
}

func (r *recordingScheduler) Schedule(_ context.Context, occ remind.Occurrence) (string, error) {
	r.scheduled = append(r.scheduled, occ)
	r.next++
	return fmt.Sprintf("n-%d", r.next), nil
}

func (r *recordingScheduler) Cancel(_ context.Context, id string) error {
	r.canceled = append(r.canceled, id)
	return nil
}

func pinNotifier(t *testing.T) *recordingScheduler {
	t.Helper()
	rec := &recordingScheduler{}
	prev := notifier
	notifier = rec
	t.Cleanup(func() { notifier = prev })
	return rec
}

func TestAdhoc_AddWithRepeatingReminder(t *testing.T) {
	db := dbPath(t)
	pinNow(t, monday) // 09:30
	pinIDs(t, "d-1")
	ns := pinNotifier(t)

	_, err := execute(t, "adhoc", "add", "Call dentist", "--at", "14:00", "--every", "60", "--db", db)
	require.NoError(t, err)

	require.Len(t, ns.scheduled, remind.MaxOccurrences)
	assert.Equal(t, "Call dentist", ns.scheduled[0].Body)
	assert.Equal(t, "Call dentist (Reminder 1)", ns.scheduled[1].Body)

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	items, err := st.LoadDirectives(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "d-1", items[0].ID)
	assert.Len(t, items[0].ReminderIDs, remind.MaxOccurrences)
}

func TestAdhoc_PastTimeMeansTomorrow(t *testing.T) {
	db := dbPath(t)
	pinNow(t, monday) // 09:30
	pinIDs(t, "d-1")
	ns := pinNotifier(t)

	_, err := execute(t, "adhoc", "add", "Early thing", "--at", "08:00", "--db", db)
	require.NoError(t, err)

	require.Len(t, ns.scheduled, 1)
	assert.Equal(t, time.Date(2025, 3, 4, 8, 0, 0, 0, time.UTC), ns.scheduled[0].FireAt)
}

func TestAdhoc_TickCancelsReminders(t *testing.T) {
	db := dbPath(t)
	pinNow(t, monday)
	pinIDs(t, "d-1")
	ns := pinNotifier(t)

	_, err := execute(t, "adhoc", "add", "Hydrate", "--at", "14:00", "--db", db)
	require.NoError(t, err)
	require.Len(t, ns.scheduled, 1)

	_, err = execute(t, "adhoc", "tick", "d-1", "--db", db)
	require.NoError(t, err)
	assert.Len(t, ns.canceled, 1, "completion cancels pending reminders")

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	items, err := st.LoadDirectives(context.Background())
	require.NoError(t, err)
	assert.True(t, items[0].Completed)
	assert.Empty(t, items[0].ReminderIDs)
}

func TestAdhoc_RemoveCancelsAndDrops(t *testing.T) {
	db := dbPath(t)
	pinNow(t, monday)
	pinIDs(t, "d-1")
	ns := pinNotifier(t)

	_, err := execute(t, "adhoc", "add", "Hydrate", "--at", "14:00", "--db", db)
	require.NoError(t, err)

	_, err = execute(t, "adhoc", "rm", "d-1", "--db", db)
	require.NoError(t, err)
	assert.Len(t, ns.canceled, 1)

	st, err := store.Open(db)
	require.NoError(t, err)
	defer st.Close()
	items, err := st.LoadDirectives(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestAdhoc_EveryRequiresAt(t *testing.T) {
	_, err := execute(t, "adhoc", "add", "x", "--every", "10", "--db", dbPath(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--every requires --at")
}

func TestImportAndReseed(t *testing.T) {
	db := dbPath(t)
	pinNow(t, monday)

	schedule := filepath.Join(t.TempDir(), "schedule.json")
	writeJSON := `[{"label":"Deep work","start":"08:00","end":"10:00"},{"label":"Review","start":"16:00","end":"16:30"}]`
	require.NoError(t, writeTestFile(schedule, writeJSON))

	_, err := execute(t, "import", schedule, "--db", db)
	require.NoError(t, err)

	out, err := execute(t, "check", "--db", db, "--format", "json")
	require.NoError(t, err)
	day := decodeDay(t, out)
	require.Len(t, day.Tasks, 2)
	assert.Equal(t, "Deep work", day.Tasks[0].Label)
	assert.Equal(t, 120, day.Tasks[0].Duration)

	// A second import replaces the base; reseed applies it today.
	schedule2 := filepath.Join(t.TempDir(), "schedule2.json")
	require.NoError(t, writeTestFile(schedule2, `[{"label":"Only thing","start":"09:00","end":"09:45"}]`))
	_, err = execute(t, "import", schedule2, "--db", db)
	require.NoError(t, err)

	out, err = execute(t, "reseed", "--db", db, "--format", "json")
	require.NoError(t, err)
	day = decodeDay(t, out)
	require.Len(t, day.Tasks, 1)
	assert.Equal(t, "Only thing", day.Tasks[0].Label)
	assert.Equal(t, "2025-03-03", day.Date)
}

func writeTestFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o644)
}

func TestImport_InvalidFileRejected(t *testing.T) {
	db := dbPath(t)
	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, writeTestFile(bad, `[{"label":"x","start":"10:00","end":"09:00"}]`))

	_, err := execute(t, "import", bad, "--db", db)
	require.Error(t, err)
}
