package shell

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ukydev/moto-maintenance/internal/db"
	"github.com/ukydev/moto-maintenance/internal/duecheck"
)

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) PublishReport(ctx context.Context, report duecheck.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func runSession(t *testing.T, script string, pub *MockPublisher) (string, *db.RecordStore) {
	t.Helper()
	store := db.NewRecordStore()
	var out bytes.Buffer
	var s *Session
	if pub == nil {
		s = New(strings.NewReader(script), &out, store, duecheck.NewEngine(), nil)
	} else {
		s = New(strings.NewReader(script), &out, store, duecheck.NewEngine(), pub)
	}
	require.NoError(t, s.Run(context.Background()))
	return out.String(), store
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

func TestSession_CheckOnEmptyStore(t *testing.T) {
	out, _ := runSession(t, lines("2024-01-01", "500", "check", "exit"), nil)

	assert.Contains(t, out, welcome)
	assert.Contains(t, out, duecheck.MessageNoRecords)
}

func TestSession_AddViewCheck(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("PublishReport", mock.Anything, mock.Anything).Return(nil)

	script := lines(
		"2024-07-01", "6200",
		"add", "2024-01-01", "oil change", "1000",
		"view",
		"CHECK",
		"exit",
	)
	out, store := runSession(t, script, pub)

	assert.Equal(t, 1, store.Len())
	assert.Contains(t, out, "Record added successfully.")
	assert.Contains(t, out, "DATE")
	assert.Contains(t, out, "2024-01-01  oil change  1000")
	assert.Contains(t, out, "Oil change is due (mileage, time).")
	assert.Contains(t, out, "Registration is due (time), no service on record.")

	pub.AssertNumberOfCalls(t, "PublishReport", 1)
	report := pub.Calls[0].Arguments.Get(1).(duecheck.Report)
	assert.Equal(t, duecheck.StatusDue, report.Status)
}

func TestSession_RepromptsOnMalformedInput(t *testing.T) {
	script := lines(
		"01/01/2024", "2024-01-01",
		"many", "-4", "1000",
		"add", "2024-13-01", "2024-01-01", "", "oil change", "lots", "1000",
		"exit",
	)
	out, store := runSession(t, script, nil)

	assert.Equal(t, 2, strings.Count(out, "Invalid format. Please enter the date in the format YYYY-MM-DD."))
	assert.Equal(t, 3, strings.Count(out, "Invalid mileage."))
	assert.Contains(t, out, "maintenance type is required")
	require.Equal(t, 1, store.Len())
	assert.Equal(t, 1000, store.All()[0].Mileage)
}

func TestSession_UnknownActionAndEmptyView(t *testing.T) {
	out, _ := runSession(t, lines("2024-01-01", "0", "delete", "view", "exit"), nil)

	assert.Contains(t, out, usageMessage)
	assert.Contains(t, out, noRecordsView)
}

func TestSession_NothingDue(t *testing.T) {
	script := []string{"2024-01-01", "100"}
	for _, rule := range duecheck.RuleTable() {
		script = append(script, "add", "2024-01-01", rule.Type, "100")
	}
	script = append(script, "check", "exit")

	out, _ := runSession(t, lines(script...), nil)

	assert.Contains(t, out, duecheck.MessageNothingDue)
}

func TestSession_EndOfInputExitsCleanly(t *testing.T) {
	out, store := runSession(t, lines("2024-01-01", "100", "add", "2024-01-01"), nil)

	assert.Equal(t, 0, store.Len())
	assert.Contains(t, out, "Enter the type of maintenance: ")
}

func TestSession_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	s := New(strings.NewReader(lines("2024-01-01", "100", "view")), &out, db.NewRecordStore(), duecheck.NewEngine(), nil)

	assert.ErrorIs(t, s.Run(ctx), context.Canceled)
}
