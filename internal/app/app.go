// Package app is the main entrypoint into the application, responsible for
// configuring and starting the demo table.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/coltab/coltab/internal/logging"
	"github.com/coltab/coltab/internal/sample"
	"github.com/coltab/coltab/internal/version"
	"github.com/coltab/coltab/internal/width"
	"github.com/hokaccha/go-prettyjson"
)

// Start starts the application, blocking until the user quits.
func Start(stdout, stderr io.Writer, args []string) error {
	// Parse configuration from env vars, config file and flags
	cfg, err := parse(stderr, args)
	if err != nil {
		return err
	}

	if cfg.Version {
		fmt.Fprintln(stdout, "coltab", version.Version)
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app, m, err := newApp(cfg)
	if err != nil {
		return err
	}
	p := tea.NewProgram(
		m,
		// use the full size of the terminal with its "alternate screen buffer"
		tea.WithAltScreen(),
		// Mouse motion is needed to drag the column dividers.
		tea.WithMouseCellMotion(),
	)
	cleanup := app.start(ctx, p)

	// Blocks until user quits
	final, err := p.Run()
	err = errors.Join(err, cleanup())
	if err != nil {
		return err
	}

	if cfg.PrintWidths {
		if m, ok := final.(model); ok {
			return printWidths(stdout, m.widthReport())
		}
	}
	return nil
}

// sender is satisfied by both tea.Program and teatest.TestModel.
type sender interface {
	Send(tea.Msg)
}

type app struct {
	logger *logging.Logger
	// files to be closed upon exit
	files []*os.File
}

// newApp constructs the application and its top-level model.
func newApp(cfg config) (*app, model, error) {
	a := &app{}

	opts := cfg.loggingOptions
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, model{}, fmt.Errorf("opening log file: %w", err)
		}
		a.files = append(a.files, f)
		opts.AdditionalWriters = append(opts.AdditionalWriters, f)
	}
	a.logger = logging.NewLogger(opts)

	var dump io.Writer
	if cfg.Debug {
		f, err := os.OpenFile("messages.log", os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, model{}, errors.Join(err, a.closeFiles())
		}
		a.files = append(a.files, f)
		dump = f
	}

	styles, err := loadStyles(cfg.StyleFile)
	if err != nil {
		return nil, model{}, errors.Join(err, a.closeFiles())
	}

	seed := uint64(cfg.Seed)
	if seed == 0 {
		seed = rand.Uint64()
	}
	users := sample.Generate(rand.New(rand.NewPCG(seed, seed)), cfg.Rows)
	a.logger.Info("generated sample rows", "rows", len(users), "seed", seed)

	m := newModel(modelOptions{
		users:   users,
		sizings: cfg.sizings,
		styles:  styles,
		limits:  width.Limits{MinWidth: cfg.MinWidth},
		logger:  a.logger,
		dump:    dump,
	})
	return a, m, nil
}

// start relays log messages to the program in the background. The returned
// func stops the relay and releases the app's resources.
func (a *app) start(ctx context.Context, s sender) func() error {
	var wg sync.WaitGroup

	logEvents := a.logger.Subscribe(ctx)
	wg.Add(1)
	go func() {
		defer wg.Done()
		for ev := range logEvents {
			s.Send(ev)
		}
	}()

	return func() error {
		// Close subscriptions and wait for the relay to finish.
		a.logger.Shutdown()
		wg.Wait()
		return a.closeFiles()
	}
}

func (a *app) closeFiles() error {
	var errs []error
	for _, f := range a.files {
		errs = append(errs, f.Close())
	}
	a.files = nil
	return errors.Join(errs...)
}

func printWidths(w io.Writer, widths map[string]float64) error {
	b, err := prettyjson.Marshal(widths)
	if err != nil {
		return fmt.Errorf("marshaling widths: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
