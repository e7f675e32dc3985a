package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/payperiod-ledger/generic"
	"github.com/warp/payperiod-ledger/payroll"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	for _, key := range []string{"PAYROLL_ROSTER", "PAYROLL_ANCHOR", "PAYROLL_PERIOD_LENGTH"} {
		t.Setenv(key, "")
	}
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestReportCommand_DefaultRoster(t *testing.T) {
	out, err := execute(t, "report")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "Employee ID: 1, Name: John G\n"))
	assert.Contains(t, out, "Hours Worked Summary:\n")
	assert.Contains(t, out, "\nBelal H, ")

	// The last line is the period containing today
	pc := generic.PayPeriodConfig{Anchor: payroll.DefaultAnchor(), Length: generic.DefaultPayPeriodLength}
	p := pc.PeriodFor(generic.Today())
	assert.True(t, strings.HasSuffix(out, p.Start.USString()+" - "+p.End.USString()+"\n"), out)
}

func TestReportCommand_RosterFileAndFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roster.yaml")
	require.NoError(t, os.WriteFile(path, []byte("employees:\n  - id: \"9\"\n    name: Pat Q\n    hours: {mon: 4, tue: 4, wed: 4, thu: 4, fri: 4, sat: 4, sun: 4}\n"), 0o644))

	// A week-long period of four-hour days is always 28 hours
	out, err := execute(t, "report", "--roster", path, "--period-length", "7")
	require.NoError(t, err)

	assert.Contains(t, out, "Employee ID: 9, Name: Pat Q\n")
	assert.Contains(t, out, "    Total Hours Worked: 28\n")
	assert.Contains(t, out, "Pat Q, 28\n")
	assert.NotContains(t, out, "John G")
}

func TestReportCommand_BadConfig(t *testing.T) {
	_, err := execute(t, "report", "--anchor", "2024-05-27")
	assert.ErrorIs(t, err, payroll.ErrLedgerUnavailable)

	_, err = execute(t, "report", "--roster", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestRosterCommand(t *testing.T) {
	out, err := execute(t, "roster")
	require.NoError(t, err)

	assert.Contains(t, out, "employees:")
	assert.Contains(t, out, "Belal H")
}

func TestReportCommand_BadPeriodLengthDegrades(t *testing.T) {
	t.Setenv("PAYROLL_ROSTER", "")
	t.Setenv("PAYROLL_ANCHOR", "")
	t.Setenv("PAYROLL_PERIOD_LENGTH", "fortnight")
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"report"})

	// Loading configuration succeeds; the ledger is what rejects the length
	err := cmd.Execute()

	assert.ErrorIs(t, err, payroll.ErrLedgerUnavailable)
	assert.ErrorIs(t, err, generic.ErrInvalidPeriod)
}
