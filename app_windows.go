//go:build windows

package tui

import (
	"os"
	"os/signal"
	"syscall"
)

// watchSignals installs the windows signal set: SIGINT/SIGTERM stop the
// loop. Windows has no SIGWINCH; HandleResize already polls the driver's
// size unconditionally once per frame (see Run), so resizes are still
// picked up without a wakeup signal — just up to one frame later than on
// unix.
func (a *App) watchSignals() (stop func()) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		for range sigCh {
			a.running = false
		}
	}()

	return func() { signal.Stop(sigCh) }
}
