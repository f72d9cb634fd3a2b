package logging_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"workforce-dashboard/logging"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWriter(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var console bytes.Buffer
	dir := filepath.Join(t.TempDir(), "logs")
	require.NoError(t, logging.InitWriter(&console, false, dir))

	log.Debug().Msg("hidden")
	log.Warn().Int("row", 3).Msg("malformed date")

	assert.Contains(t, console.String(), "malformed date")
	assert.NotContains(t, console.String(), "hidden")

	data, err := os.ReadFile(filepath.Join(dir, logging.FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"row":3`)
}

func TestInitWriter_Verbose(t *testing.T) {
	t.Cleanup(func() { zerolog.SetGlobalLevel(zerolog.InfoLevel) })

	var console bytes.Buffer
	require.NoError(t, logging.InitWriter(&console, true, ""))

	log.Debug().Msg("shown")
	assert.Contains(t, console.String(), "shown")
}
