/*
Package app provides the main application container and orchestration for the
Configstore CLI. It manages component lifecycle, coordinates store operations,
and handles graceful shutdown.

The application container initializes and manages all core components:
- Logger for structured logging
- Store for the INI settings file
- Output formatting

Usage:

	application, err := app.New(cfg)
	if err != nil {
	    log.Fatal(err)
	}
	defer application.Shutdown()
*/
package app

import (
	"fmt"
	"os"
	"sync"

	"github.com/spf13/afero"

	"github.com/omushpapa/configstore/internal/config"
	"github.com/omushpapa/configstore/pkg/logger"
	"github.com/omushpapa/configstore/pkg/output"
	"github.com/omushpapa/configstore/pkg/store"
)

// App represents the main application container
type App struct {
	config *config.Config
	log    logger.Logger

	store     *store.Store
	formatter output.Formatter

	done chan struct{}
	mu   sync.Mutex
}

// New creates a new application instance and opens the configured
// settings file
func New(cfg *config.Config) (*App, error) {
	a := &App{
		config: cfg,
		done:   make(chan struct{}),
	}

	a.initLogger()

	if err := a.initComponents(); err != nil {
		return nil, err
	}
	a.setupSignalHandling()

	a.log.WithFields(logger.Fields{
		"file":    cfg.File,
		"section": cfg.Section,
		"verbose": cfg.Verbose,
	}).Debug("Application initialized")

	return a, nil
}

// Store exposes the opened settings store to commands
func (a *App) Store() *store.Store {
	return a.store
}

// Section returns the section commands operate on by default
func (a *App) Section() string {
	return a.config.Section
}

// Formatter exposes the configured output formatter to commands
func (a *App) Formatter() output.Formatter {
	return a.formatter
}

// initLogger initializes the application logger
func (a *App) initLogger() {
	a.log = logger.NewLogger(logger.Config{
		Verbosity: a.config.Verbose,
		Output:    os.Stderr,
	})
}

// initComponents initializes the store and formatter
func (a *App) initComponents() error {
	a.log.Debug("Initializing application components")

	st, err := store.Open(a.config.File, store.Options{
		Fs:            afero.NewOsFs(),
		CaseSensitive: a.config.CaseSensitive,
		Environment:   store.OSEnvironment{},
		Logger:        a.log.Named("store"),
	})
	if err != nil {
		a.log.WithFields(logger.Fields{
			"error": err,
			"file":  a.config.File,
		}).Error("Failed to open settings file")
		return fmt.Errorf("failed to open settings file: %w", err)
	}
	a.store = st

	a.formatter = output.NewFormatter(output.Config{
		Format:     output.Format(a.config.Output),
		WithColors: !a.config.NoColor,
	}, a.log)

	a.log.Debug("Components initialized successfully")
	return nil
}

// FormatSnapshot renders the whole store through the configured
// formatter
func (a *App) FormatSnapshot() (string, error) {
	snapshot, err := a.store.Snapshot()
	if err != nil {
		return "", err
	}
	return a.formatter.Format(snapshot)
}

// WriteOutput writes content to the configured output file, or stdout
// when none is set
func (a *App) WriteOutput(content string) error {
	outputPath := a.config.OutputFile

	a.log.WithFields(logger.Fields{
		"path": outputPath,
	}).Debug("Writing output")

	if outputPath == "" {
		_, err := fmt.Fprintln(os.Stdout, content)
		return err
	}

	if err := os.WriteFile(outputPath, []byte(content), 0644); err != nil {
		a.log.WithFields(logger.Fields{
			"error": err,
			"path":  outputPath,
		}).Error("Failed to write output file")
		return fmt.Errorf("failed to write output file: %w", err)
	}

	a.log.WithFields(logger.Fields{
		"path": outputPath,
	}).Debug("Output written successfully")
	return nil
}

// Shutdown performs a graceful shutdown of the application. The store
// is closed without saving; commands that mutate state save explicitly.
func (a *App) Shutdown() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	select {
	case <-a.done:
		return nil
	default:
	}

	a.log.Debug("Initiating shutdown")

	if a.store != nil {
		if err := a.store.Close(false); err != nil {
			a.log.WithFields(logger.Fields{
				"error": err,
			}).Error("Failed to close store")
			close(a.done)
			return err
		}
	}

	close(a.done)
	a.log.Debug("Shutdown complete")
	return nil
}
