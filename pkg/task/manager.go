package task

import (
	"context"
	"sync"

	"mpeg2-bot/pkg/logger"
)

// BackgroundTask represents a long-running background process (the bot client,
// the liveness server). Tasks are independent: one failing or stopping must
// not take the others down.
type BackgroundTask interface {
	Name() string
	Start(ctx context.Context) error
	Stop() error
}

type manager struct {
	tasks  []BackgroundTask
	mu     sync.Mutex
	cancel context.CancelFunc
}

var defaultManager = &manager{}

// Register adds a background task; call during assembly, before StartAll.
func Register(t BackgroundTask) {
	if t == nil {
		return
	}
	defaultManager.mu.Lock()
	defer defaultManager.mu.Unlock()
	defaultManager.tasks = append(defaultManager.tasks, t)
}

// StartAll starts all registered tasks once. A task failing to start is fatal
// for startup; tasks already started keep running until StopAll.
func StartAll(ctx context.Context) error {
	defaultManager.mu.Lock()
	defer defaultManager.mu.Unlock()
	if defaultManager.cancel != nil {
		return nil
	}
	runCtx, cancel := context.WithCancel(ctx)
	defaultManager.cancel = cancel
	for _, t := range defaultManager.tasks {
		logger.Infof("starting background task name=%s", t.Name())
		if err := t.Start(runCtx); err != nil {
			return err
		}
	}
	return nil
}

// StopAll stops tasks in reverse registration order.
func StopAll() {
	defaultManager.mu.Lock()
	defer defaultManager.mu.Unlock()
	if defaultManager.cancel == nil {
		return
	}
	defaultManager.cancel()
	for i := len(defaultManager.tasks) - 1; i >= 0; i-- {
		t := defaultManager.tasks[i]
		if err := t.Stop(); err != nil {
			logger.Warnf("background task stop failed name=%s error=%v", t.Name(), err)
		}
	}
	defaultManager.cancel = nil
}
