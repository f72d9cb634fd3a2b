package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"workforce-dashboard/cli"
	customerrors "workforce-dashboard/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCommand()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), err
}

const roster = `Name,Date,Shifts,Position
Sun Hengly,2025-05-10,9PM-3AM,NOC
Keo Sothea,5/10/25,Day Off,Agent
Chan Dara,06-01-2025,Public Holiday,Team Lead
`

func TestScheduleCommand(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "roster.csv", roster)

	tests := map[string]struct {
		args     []string
		expected string
	}{
		"CSVByDate": {
			args:     []string{"schedule", path, "--date", "05/10/2025", "--format", "csv", "--sort", "name"},
			expected: "Name,Date,Shift,Position\n\"Keo Sothea\",\"May 10, 2025\",\"Day Off\",\"Agent\"\n\"Sun Hengly\",\"May 10, 2025\",\"9PM-3AM\",\"NOC\"\n\n",
		},
		"Month": {
			args:     []string{"schedule", path, "--month", "2025-06", "--format", "csv"},
			expected: "Name,Date,Shift,Position\n\"Chan Dara\",\"Jun 01, 2025\",\"Public Holiday\",\"Team Lead\"\n\n",
		},
		"Stats": {
			args:     []string{"schedule", path, "--stats"},
			expected: "total=3 ; day off=1 ; public holiday=1\n",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestScheduleCommand_Errors(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "roster.csv", roster)
	empty := writeFile(t, dir, "empty.csv", "Name,Date\n")

	_, err := run(t, "schedule", empty)
	assert.ErrorIs(t, err, customerrors.ErrNoData)

	_, err = run(t, "schedule", path, "--month", "May")
	assert.Error(t, err)

	_, err = run(t, "schedule", path, "--sort", "salary")
	assert.ErrorIs(t, err, customerrors.ErrUnknownField)

	_, err = run(t, "schedule", filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)

	_, err = run(t, "schedule")
	assert.Error(t, err)
}

func TestProductivityCommand(t *testing.T) {
	dir := t.TempDir()
	calls := writeFile(t, dir, "calls.csv", `Agent,Date Time,Solution,Work Shift
Sun Hengly,2025-05-10 09:00:00,Resolved,Morning
Sun Hengly,2025-05-10 10:00:00,Wrong number,Morning
Keo Sothea,2025-05-10 18:30:00,Unreachable contact - finish,Evening
`)
	care := writeFile(t, dir, "care.csv", `Agent,Date Time,Solution,Work Shift
Keo Sothea,2025-05-10 04:15:00,Follow up,Evening
`)

	out, err := run(t, "productivity", "--calls", calls, "--care", care, "--exclude", "wrong number", "--format", "csv")
	require.NoError(t, err)
	assert.Equal(t,
		"Work Shift,Name,Callogs,Carelogs,3AM-8AM,8AM-5PM,5PM-10PM,10PM-3AM,Total Records\n"+
			`"Morning","Sun Hengly","1","0","0","1","0","0","1"`+"\n"+
			`"Evening","Keo Sothea","0","1","1","0","0","0","1"`+"\n\n",
		out)

	out, err = run(t, "productivity", "--calls", calls, "--care", care, "--no-default-excludes", "--sort", "records", "--desc")
	require.NoError(t, err)
	assert.Contains(t, out, "Sun Hengly [Morning] : calls=2, care=0, total=2 (50.0%)")
	assert.Contains(t, out, "Keo Sothea [Evening] : calls=1, care=1, total=2 (50.0%)")

	out, err = run(t, "productivity", "--calls", calls, "--care", care, "--shift", "Evening", "--format", "json")
	require.NoError(t, err)
	assert.Contains(t, out, `"name": "Keo Sothea"`)
	assert.NotContains(t, out, "Sun Hengly")

	_, err = run(t, "productivity", "--calls", calls)
	assert.Error(t, err)
}
