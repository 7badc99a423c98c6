package graceful

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
)

func MakeSigintChan() chan os.Signal {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	return sigCh
}

// CancelOnSignal calls cancel on the first SIGINT or SIGTERM.
func CancelOnSignal(cancel context.CancelFunc, logger logrus.FieldLogger) {
	sigCh := MakeSigintChan()
	go func() {
		sig := <-sigCh
		logger.Infof("received exit signal: %v", sig)
		cancel()
	}()
}
