/*
Package app signal handling implementation provides graceful shutdown for the
Configstore CLI. It handles system signals like SIGINT and SIGTERM, ensuring
the settings store is released before the process exits.
*/
package app

import (
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/omushpapa/configstore/pkg/logger"
)

// signalState tracks the state of signal handling
type signalState struct {
	shutdownInitiated atomic.Bool
}

// setupSignalHandling initializes signal handling for graceful shutdown
func (a *App) setupSignalHandling() {
	state := &signalState{}

	a.log.Debug("Initializing signal handlers")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)

	go a.handleSignals(sigChan, state)
}

// handleSignals processes incoming system signals
func (a *App) handleSignals(sigChan chan os.Signal, state *signalState) {
	for sig := range sigChan {
		a.log.WithFields(logger.Fields{
			"signal": sig.String(),
		}).Debug("Received system signal")

		switch sig {
		case syscall.SIGINT, syscall.SIGTERM:
			if state.shutdownInitiated.Load() {
				a.log.Warn("Received second interrupt, exiting immediately")
				os.Exit(1)
			}
			if !state.shutdownInitiated.CompareAndSwap(false, true) {
				continue
			}

			a.handleGracefulShutdown()

		case syscall.SIGHUP:
			a.handleHangup()
		}
	}
}

// handleGracefulShutdown closes the store and exits
func (a *App) handleGracefulShutdown() {
	a.log.Info("Initiating graceful shutdown")

	if err := a.Shutdown(); err != nil {
		a.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Shutdown encountered errors")
		os.Exit(1)
	}

	a.log.Info("Graceful shutdown completed")
	os.Exit(130)
}

// handleHangup reloads the store from disk, discarding uncommitted
// changes
func (a *App) handleHangup() {
	a.log.Info("Received SIGHUP signal")

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.store == nil {
		return
	}
	if err := a.store.Reload(); err != nil {
		a.log.WithFields(logger.Fields{
			"error": err,
		}).Error("Failed to reload store")
		return
	}

	a.log.Info("Store reloaded from disk")
}
