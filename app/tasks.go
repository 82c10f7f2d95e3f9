package app

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	adapterhttp "mpeg2-bot/ddd/adapter/http"
	"mpeg2-bot/ddd/infrastructure/telegram"
	"mpeg2-bot/pkg/config"
	"mpeg2-bot/pkg/logger"
)

// httpTask serves the liveness endpoint. It shares no state with the job
// pipeline; its failure is logged but never stops the bot.
type httpTask struct {
	server *http.Server
}

func newHTTPTask(cfg *config.Config) *httpTask {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	adapterhttp.NewRouter().SetupRoutes(engine)

	return &httpTask{
		server: &http.Server{
			Addr:         cfg.Server.ListenAddr(),
			Handler:      engine,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}
}

func (t *httpTask) Name() string { return "livenessServer" }

func (t *httpTask) Start(ctx context.Context) error {
	go func() {
		logger.Infof("liveness server started addr=%s health_url=http://%s/health", t.server.Addr, t.server.Addr)
		if err := t.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Errorf("liveness server stopped error=%v", err)
		}
	}()
	return nil
}

func (t *httpTask) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return t.server.Shutdown(ctx)
}

// botTask runs the Telegram client until the task context is cancelled.
type botTask struct {
	client *telegram.Client
	done   chan struct{}
}

func newBotTask(client *telegram.Client) *botTask {
	return &botTask{client: client}
}

func (t *botTask) Name() string { return "telegramBot" }

func (t *botTask) Start(ctx context.Context) error {
	t.done = make(chan struct{})
	go func() {
		defer close(t.done)
		if err := t.client.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Errorf("telegram client stopped error=%v", err)
		}
	}()
	return nil
}

func (t *botTask) Stop() error {
	select {
	case <-t.done:
	case <-time.After(10 * time.Second):
		logger.Warnf("telegram client did not disconnect in time")
	}
	return nil
}
