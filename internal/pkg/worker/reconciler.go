package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/chadandhabale/Ecommerce-Microservices/pkg/logger"
)

// SweepFunc runs one reconciliation pass and reports how many rows it fixed.
type SweepFunc func(ctx context.Context) (int, error)

// Reconciler periodically runs a sweep in the background. It retries work
// that failed on the request path (payment-link repair); the request path
// itself never retries.
type Reconciler struct {
	name     string
	interval time.Duration
	sweep    SweepFunc
	stop     chan struct{}
	done     chan struct{}
}

func NewReconciler(name string, interval time.Duration, sweep SweepFunc) *Reconciler {
	return &Reconciler{
		name:     name,
		interval: interval,
		sweep:    sweep,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (r *Reconciler) Start() {
	go r.run()
	logger.Log.Info("Reconciler started",
		zap.String("name", r.name), zap.Duration("interval", r.interval))
}

func (r *Reconciler) run() {
	defer close(r.done)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			// Each pass gets its own deadline so a hung downstream
			// cannot wedge the sweep forever.
			ctx, cancel := context.WithTimeout(context.Background(), r.interval)
			fixed, err := r.sweep(ctx)
			cancel()

			if err != nil {
				logger.Log.Error("Reconciliation sweep failed",
					zap.String("name", r.name), zap.Error(err))
				continue
			}
			if fixed > 0 {
				logger.Log.Info("Reconciliation sweep repaired rows",
					zap.String("name", r.name), zap.Int("fixed", fixed))
			}
		case <-r.stop:
			return
		}
	}
}

// Stop halts the sweep and waits for an in-flight pass to finish.
func (r *Reconciler) Stop() {
	close(r.stop)
	<-r.done
}
