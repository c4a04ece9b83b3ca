package worker

import (
	"context"
	"time"

	"github.com/trknhr/cardlog/internal/logger"
)

const BootstrapTimeout = 3 * time.Minute

// Rebuilder replaces its learned state with a replay of stored history.
type Rebuilder interface {
	Rebuild(ctx context.Context) (int, error)
}

// LaunchBootstrap replays history in the background. The returned channel is
// closed once the attempt has finished, successfully or not.
func LaunchBootstrap(r Rebuilder) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		ctx, cancel := context.WithTimeout(context.Background(), BootstrapTimeout)
		defer cancel()

		if err := RunBootstrap(ctx, r); err != nil {
			logger.Error("background bootstrap failed: %v", err)
		}
	}()
	return done
}

func RunBootstrap(ctx context.Context, r Rebuilder) error {
	start := time.Now()
	n, err := r.Rebuild(ctx)
	if err != nil {
		return err
	}
	logger.Info("bootstrap replayed %d entries in %s", n, time.Since(start).Round(time.Millisecond))
	return nil
}
