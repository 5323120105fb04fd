// env.go resolves the data directory and opens the shared resources every
// command needs.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/freeflow-dev/freeflow/internal/config"
	"github.com/freeflow-dev/freeflow/internal/history"
	"github.com/freeflow-dev/freeflow/internal/log"
)

const (
	historyFile = "history.db"
	debugFile   = "debug.log"
)

// env bundles what a command works with.
type env struct {
	Home    string
	Cfg     *config.Config
	Store   *history.Store // nil when history is disabled
	Journal *log.Logger
	Log     *logrus.Logger

	closers []io.Closer
}

// resolveHome returns --home, $FREEFLOW_HOME or ~/.freeflow.
func resolveHome() (string, error) {
	if homeFlag != "" {
		return homeFlag, nil
	}
	if h := os.Getenv("FREEFLOW_HOME"); h != "" {
		return h, nil
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(userHome, ".freeflow"), nil
}

// openEnv loads config and opens the journal and history store.
// fullscreen sends diagnostics to <home>/debug.log instead of stderr so
// they do not tear the TUI.
func openEnv(fullscreen bool) (*env, error) {
	home, err := resolveHome()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(home, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	e := &env{Home: home}
	if e.Log, err = e.newLogger(fullscreen); err != nil {
		return nil, err
	}

	if e.Cfg, err = config.Load(home); err != nil {
		e.Close()
		return nil, fmt.Errorf("loading config: %w", err)
	}

	if e.Journal, err = log.NewLogger(home); err != nil {
		e.Close()
		return nil, err
	}

	if e.Cfg.History.Enabled {
		if e.Store, err = history.NewStore(filepath.Join(home, historyFile)); err != nil {
			e.Close()
			return nil, fmt.Errorf("opening history: %w", err)
		}
		e.closers = append(e.closers, e.Store)
	}

	e.Log.WithFields(logrus.Fields{
		"home":    home,
		"variant": e.Cfg.Variant,
		"history": e.Cfg.History.Enabled,
	}).Debug("environment ready")
	return e, nil
}

// requireStore returns the history store, failing when history is off.
func (e *env) requireStore() (*history.Store, error) {
	if e.Store == nil {
		return nil, errors.New("history is disabled in config.yaml")
	}
	return e.Store, nil
}

func (e *env) newLogger(fullscreen bool) (*logrus.Logger, error) {
	l := logrus.New()
	l.SetFormatter(&logrus.JSONFormatter{})
	l.SetLevel(logrus.WarnLevel)
	if debug {
		l.SetLevel(logrus.DebugLevel)
	}
	l.SetOutput(os.Stderr)

	if fullscreen {
		f, err := os.OpenFile(filepath.Join(e.Home, debugFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("opening debug log: %w", err)
		}
		l.SetOutput(f)
		e.closers = append(e.closers, f)
	}
	return l, nil
}

// Close releases everything openEnv opened, newest first.
func (e *env) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i].Close(); err != nil && e.Log != nil {
			e.Log.WithError(err).Warn("closing resource")
		}
	}
	e.closers = nil
}
