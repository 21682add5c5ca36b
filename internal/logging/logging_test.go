package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]zerolog.Level{
		"":      zerolog.InfoLevel,
		"debug": zerolog.DebugLevel,
		"WARN":  zerolog.WarnLevel,
		"error": zerolog.ErrorLevel,
	} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	_, err := ParseLevel("loud")
	require.ErrorContains(t, err, `invalid log level "loud"`)
}

func TestQuietRaisesLevel(t *testing.T) {
	var b bytes.Buffer
	log, err := New(&b, "debug", true)
	require.NoError(t, err)
	log.Info().Msg("hidden")
	log.Warn().Str("gate", "t").Msg("shown")
	require.NotContains(t, b.String(), "hidden")
	require.Contains(t, b.String(), "shown")
	require.Contains(t, b.String(), "gate=t")
}
