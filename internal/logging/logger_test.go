package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/unagency-contact/internal/logging"
)

func TestNewWritesJSONWithServiceField(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Service: "contact-api", Output: &buf})
	require.NoError(t, err)
	defer logger.Close()

	logger.Debug().Str("component", "test").Msg("hello")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "contact-api", line["service"])
	assert.Equal(t, "debug", line["level"])
	assert.Equal(t, "hello", line["message"])
}

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Output: &buf})
	require.NoError(t, err)

	logger.Info().Msg("dropped")
	require.Zero(t, buf.Len())
}

func TestNewRejectsUnknownLevel(t *testing.T) {
	_, err := logging.New(logging.Options{Level: "loud"})
	require.ErrorContains(t, err, "invalid log level")
}

func TestNewMirrorsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "api.log")
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{File: path, Output: &buf})
	require.NoError(t, err)

	logger.Info().Msg("persisted")
	require.NoError(t, logger.Close())

	contents, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(contents), "persisted")
	assert.Contains(t, buf.String(), "persisted")
}

func TestMaskEmail(t *testing.T) {
	cases := map[string]string{
		"":                "",
		"ana@example.com": "a***a@example.com",
		"al@example.com":  "a***@example.com",
		"invalid":         "***",
		"@example.com":    "***",
	}
	for input, want := range cases {
		assert.Equal(t, want, logging.MaskEmail(input), input)
	}
}
