package cli

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/segyhp/loan-amortizer/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCommand(fixedClock)
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute())
	return out.String()
}

func TestRootCommand_Table(t *testing.T) {
	out := execute(t, "--amount", "8000", "--apr", "6.5", "--term", "12", "--start", "2024-01-15")

	assert.Contains(t, out, "Monthly payment:  690.37")
	assert.Contains(t, out, "Final payment:    690.39")
	assert.Contains(t, out, "Total interest:   284.46")
	assert.Contains(t, out, "Payoff date:      Dec 2024")
	assert.Contains(t, out, "Periodic rate:    0.5417%")
	assert.Contains(t, out, "Jan 15, 2024")
}

func TestRootCommand_JSON(t *testing.T) {
	out := execute(t, "--amount", "1000", "--apr", "0", "--term", "1", "--json")

	var result domain.ScheduleResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Lines, 1)
	assert.True(t, result.Lines[0].Payment.Equal(decimal.NewFromInt(1000)))
	assert.True(t, result.Lines[0].Interest.IsZero())
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), result.Lines[0].DueDate)
}

func TestRootCommand_NothingToFinance(t *testing.T) {
	out := execute(t, "--amount", "500", "--down", "600", "--apr", "5")

	assert.Contains(t, out, "Nothing to finance")
}

func TestRootCommand_GarbageInputIsNormalized(t *testing.T) {
	out := execute(t, "--amount", "1200", "--apr", "abc", "--term", "-4", "--json")

	var result domain.ScheduleResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	require.Len(t, result.Lines, 1)
	assert.True(t, result.TotalInterest.IsZero())
}

func TestRootCommand_TermCap(t *testing.T) {
	out := execute(t, "--amount", "1200", "--apr", "0", "--term", "5000", "--max-term", "24", "--json")

	var result domain.ScheduleResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Len(t, result.Lines, 24)
}

func TestRootCommand_InvalidLogLevel(t *testing.T) {
	cmd := NewRootCommand(fixedClock)
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--log-level", "chatty"})

	assert.Error(t, cmd.Execute())
}
