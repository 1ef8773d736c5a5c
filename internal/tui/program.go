package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nao1215/libcatalog/internal/watch"
)

// RunOption configures Run.
type RunOption func(*runConfig)

type runConfig struct {
	watchPath   string
	watchOpts   []watch.Option
	programOpts []tea.ProgramOption
}

// WithWatch reloads path whenever it changes on disk.
func WithWatch(path string, opts ...watch.Option) RunOption {
	return func(c *runConfig) {
		c.watchPath = path
		c.watchOpts = opts
	}
}

// WithProgramOptions passes extra options to the bubbletea program.
func WithProgramOptions(opts ...tea.ProgramOption) RunOption {
	return func(c *runConfig) {
		c.programOpts = append(c.programOpts, opts...)
	}
}

// Run shows the browser until the user quits or ctx is cancelled.
func Run(ctx context.Context, m Model, opts ...RunOption) error {
	cfg := &runConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	m.ctx = ctx
	programOpts := append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}, cfg.programOpts...)
	p := tea.NewProgram(m, programOpts...)

	if cfg.watchPath != "" {
		w, err := watch.New(cfg.watchPath, func(content []byte) {
			p.Send(LoadedMsg{Location: cfg.watchPath, Content: content})
		}, cfg.watchOpts...)
		if err != nil {
			return err
		}
		if err := w.Start(ctx); err != nil {
			w.Stop()
			return err
		}
		defer w.Stop()
	}

	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("failed to run browser: %w", err)
	}
	return nil
}
