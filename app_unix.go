//go:build unix

package tui

import (
	"os"
	"os/signal"
	"syscall"
)

// watchSignals installs the unix signal set: SIGINT/SIGTERM stop the loop,
// SIGWINCH wakes it for an immediate resize check. Per spec.md §5, the
// goroutine only ever writes flags/channels — it never touches terminal
// state directly. Returns a stop func that undoes the registration.
func (a *App) watchSignals() (stop func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM, syscall.SIGWINCH)

	go func() {
		for sig := range sigCh {
			switch sig {
			case os.Interrupt, syscall.SIGTERM:
				a.running = false
			case syscall.SIGWINCH:
				select {
				case a.resizeCh <- struct{}{}:
				default:
				}
			}
		}
	}()

	return func() { signal.Stop(sigCh) }
}
