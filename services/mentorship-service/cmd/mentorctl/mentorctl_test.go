package main

import (
	"bytes"
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2030-01-07 is a Monday, far enough ahead that the same-day cutoff never applies.
const monday = "2030-01-07"

func newDB(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "rules.db")
}

func run(t *testing.T, dsn string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	base := []string{"--driver", "sqlite", "--dsn", dsn, "--timezone", "UTC", "--log-level", "error"}
	err := execute(context.Background(), append(base, args...), &out, &errOut)
	return out.String(), err
}

func TestRulesAddListDelete(t *testing.T) {
	dsn := newDB(t)

	id, err := run(t, dsn, "rules", "add", "--day", "mon", "--start", "09:00", "--end", "10:00")
	require.NoError(t, err)
	id = strings.TrimSpace(id)
	require.NotEmpty(t, id)

	_, err = run(t, dsn, "rules", "add", "--mentor", "m-1", "--day", "1", "--start", "14:00", "--end", "15:00")
	require.NoError(t, err)

	out, err := run(t, dsn, "rules", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "global")
	assert.Contains(t, out, "m-1")

	out, err = run(t, dsn, "rules", "list", "--mentor", "m-1")
	require.NoError(t, err)
	assert.NotContains(t, out, id)
	assert.Contains(t, out, "m-1")

	_, err = run(t, dsn, "rules", "delete", id)
	require.NoError(t, err)
	out, err = run(t, dsn, "rules", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, id)
}

func TestRulesAddRejectsInvalidWindow(t *testing.T) {
	dsn := newDB(t)

	_, err := run(t, dsn, "rules", "add", "--day", "7", "--start", "09:00", "--end", "10:00")
	assert.Error(t, err)
	_, err = run(t, dsn, "rules", "add", "--day", "mon", "--start", "10:00", "--end", "09:00")
	assert.Error(t, err)
	_, err = run(t, dsn, "rules", "add", "--day", "someday", "--start", "09:00", "--end", "10:00")
	assert.Error(t, err)
}

func TestSlotsUnionsGlobalSchedules(t *testing.T) {
	dsn := newDB(t)
	_, err := run(t, dsn, "rules", "add", "--day", "monday", "--start", "09:00", "--end", "10:00")
	require.NoError(t, err)
	_, err = run(t, dsn, "rules", "add", "--day", "mon", "--start", "09:30", "--end", "11:00")
	require.NoError(t, err)
	_, err = run(t, dsn, "rules", "add", "--day", "tue", "--start", "12:00", "--end", "13:00")
	require.NoError(t, err)

	out, err := run(t, dsn, "slots", "--date", monday, "--json")
	require.NoError(t, err)
	var times []string
	require.NoError(t, json.Unmarshal([]byte(out), &times))
	assert.Equal(t, []string{"09:00", "09:30", "10:00", "10:30"}, times)

	out, err = run(t, dsn, "slots", "--date", "2030-01-06", "--json")
	require.NoError(t, err)
	assert.Equal(t, "[]\n", out)
}

func TestMentorSlots(t *testing.T) {
	dsn := newDB(t)
	_, err := run(t, dsn, "rules", "add", "--mentor", "m-2", "--day", "mon", "--start", "15:00", "--end", "16:00")
	require.NoError(t, err)
	_, err = run(t, dsn, "rules", "add", "--mentor", "m-1", "--day", "mon", "--start", "09:00", "--end", "10:00")
	require.NoError(t, err)
	_, err = run(t, dsn, "rules", "add", "--mentor", "m-3", "--day", "mon", "--start", "09:00", "--end", "10:00", "--inactive")
	require.NoError(t, err)

	out, err := run(t, dsn, "mentor-slots", "--date", monday)
	require.NoError(t, err)
	assert.Equal(t, "m-1: 09:00 09:30\nm-2: 15:00 15:30\n", out)

	out, err = run(t, dsn, "mentor-slots", "--date", monday, "--json")
	require.NoError(t, err)
	var byMentor map[string][]string
	require.NoError(t, json.Unmarshal([]byte(out), &byMentor))
	assert.Equal(t, map[string][]string{"m-1": {"09:00", "09:30"}, "m-2": {"15:00", "15:30"}}, byMentor)
}

func TestRootFlagValidation(t *testing.T) {
	dsn := newDB(t)

	_, err := run(t, dsn, "slots", "--date", "07/01/2030")
	assert.Error(t, err)

	var out bytes.Buffer
	err = execute(context.Background(), []string{"--driver", "mysql", "slots"}, &out, &out)
	assert.ErrorContains(t, err, "--driver")

	err = execute(context.Background(), []string{"--driver", "sqlite", "--dsn", dsn, "--step", "0", "slots"}, &out, &out)
	assert.ErrorContains(t, err, "--step")
}

func TestParseWeekday(t *testing.T) {
	cases := map[string]int{"0": 0, "6": 6, "sun": 0, "Wed": 3, "saturday": 6, " fri ": 5}
	for in, want := range cases {
		got, err := parseWeekday(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := parseWeekday("mo")
	assert.Error(t, err)
}
