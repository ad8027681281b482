package app

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/coltab/coltab/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T, cfg config) *teatest.TestModel {
	t.Helper()

	// Cancel context once test finishes.
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	if cfg.Rows == 0 {
		cfg.Rows = 10
	}
	if cfg.Seed == 0 {
		cfg.Seed = 1
	}
	cfg.loggingOptions = logging.Options{
		Level: "debug",
		AdditionalWriters: []io.Writer{
			&testLogger{t},
		},
	}

	app, m, err := newApp(cfg)
	require.NoError(t, err)

	tm := teatest.NewTestModel(
		t,
		m,
		teatest.WithInitialTermSize(100, 30),
	)
	cleanup := app.start(ctx, tm)
	t.Cleanup(func() {
		err := cleanup()
		assert.NoError(t, err, "cleaning up app resources")
	})
	return tm
}

// testLogger relays log records to the go test logger
type testLogger struct {
	t *testing.T
}

func (l *testLogger) Write(b []byte) (int, error) {
	l.t.Helper()

	l.t.Log(string(b))
	return len(b), nil
}

func waitFor(t *testing.T, tm *teatest.TestModel, cond func(s string) bool) {
	t.Helper()

	teatest.WaitFor(
		t,
		tm.Output(),
		func(b []byte) bool {
			return cond(string(b))
		},
		teatest.WithCheckInterval(time.Millisecond*100),
		teatest.WithDuration(time.Second*10),
	)
}

func typeKey(tm *teatest.TestModel, r rune) {
	tm.Send(tea.KeyMsg{
		Type:  tea.KeyRunes,
		Runes: []rune{r},
	})
}

// quit quits the program and returns its final model.
func quit(t *testing.T, tm *teatest.TestModel) model {
	t.Helper()

	typeKey(tm, 'q')
	final := tm.FinalModel(t, teatest.WithFinalTimeout(time.Second*5))
	m, ok := final.(model)
	require.True(t, ok)
	return m
}

func contains(substr string) func(string) bool {
	return func(s string) bool {
		return strings.Contains(s, substr)
	}
}
