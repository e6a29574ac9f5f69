package logger

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validLog() Log {
	return Log{
		LogLevel:    "info",
		AppName:     "manajemen-ud",
		ServiceName: "manajemen-ud-test",
		Console:     Console{Enabled: true},
	}
}

func TestInit(t *testing.T) {
	cfg := validLog()

	require.NoError(t, Init(cfg))
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestInitErrors(t *testing.T) {
	testCases := []struct {
		name   string
		mutate func(*Log)
	}{
		{
			name:   "unsupported level",
			mutate: func(l *Log) { l.LogLevel = "loud" },
		},
		{
			name:   "empty service name",
			mutate: func(l *Log) { l.ServiceName = "" },
		},
		{
			name:   "empty app name",
			mutate: func(l *Log) { l.AppName = "" },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validLog()
			tc.mutate(&cfg)

			assert.Error(t, Init(cfg))
		})
	}
}

func TestLevelWriterSplit(t *testing.T) {
	var infoBuf, errorBuf captureWriter

	lw := LevelWriter{
		InfoWriter:  &infoBuf,
		ErrorWriter: &errorBuf,
	}

	_, err := lw.WriteLevel(zerolog.InfoLevel, []byte("info line"))
	require.NoError(t, err)

	_, err = lw.WriteLevel(zerolog.WarnLevel, []byte("warn line"))
	require.NoError(t, err)

	_, err = lw.WriteLevel(zerolog.ErrorLevel, []byte("error line"))
	require.NoError(t, err)

	// disabled writes go nowhere
	n, err := lw.WriteLevel(zerolog.Disabled, []byte("dropped"))
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.Equal(t, []string{"info line", "warn line"}, infoBuf.lines)
	assert.Equal(t, []string{"error line"}, errorBuf.lines)
}

type captureWriter struct {
	lines []string
}

func (w *captureWriter) Write(p []byte) (int, error) {
	w.lines = append(w.lines, string(p))
	return len(p), nil
}
