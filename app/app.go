package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	adaptertg "mpeg2-bot/ddd/adapter/telegram"
	application "mpeg2-bot/ddd/application/app"
	"mpeg2-bot/ddd/domain/service"
	"mpeg2-bot/ddd/infrastructure/executor"
	"mpeg2-bot/ddd/infrastructure/telegram"
	"mpeg2-bot/internal/resource"
	"mpeg2-bot/pkg/config"
	"mpeg2-bot/pkg/logger"
	"mpeg2-bot/pkg/manager"
	"mpeg2-bot/pkg/observability"
	"mpeg2-bot/pkg/task"
)

// Run assembles and serves the bot. Only configuration errors and a failed
// ffmpeg probe terminate the process; per-job faults never reach this level.
func Run() {
	// 先使用标准输出确保能看到日志
	fmt.Println("[STARTUP] Starting mp4-to-mpeg2 bot...")

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Printf("[ERROR] Failed to load config: %v\n", err)
		os.Exit(1)
	}
	config.SetGlobalConfig(cfg)

	logService := logger.NewLogger(cfg)
	logger.SetGlobalLogger(logService)
	logger.Infof("mp4-to-mpeg2 bot starting version=%s owner_id=%d", "1.0.0", cfg.Telegram.OwnerID)

	observability.StartProfiling("mpeg2-bot", cfg)

	// 检查 FFmpeg 是否可用，直接在启动阶段失败
	transcoder := executor.NewFFmpegExecutor(cfg)
	probeCtx, cancelProbe := context.WithTimeout(context.Background(), 15*time.Second)
	err = transcoder.Probe(probeCtx)
	cancelProbe()
	if err != nil {
		logger.Fatal(fmt.Sprintf("FFmpeg probe failed, refusing to accept jobs error=%v", err))
	}

	// 资源管理器初始化（暂存目录）
	manager.MustInitResources()
	defer manager.CloseResources()
	stagingDir := resource.DefaultStagingResource().GetDir()

	// 组装流水线
	tgClient := telegram.NewClient(cfg)
	authService := service.NewAuthorizationService(cfg.Telegram.OwnerID)
	convertApp := application.NewConvertApp(authService, tgClient, transcoder, stagingDir)
	adaptertg.NewHandler(convertApp, authService, tgClient).Register()

	// 两个互相独立的后台任务：存活探针与机器人客户端
	task.Register(newHTTPTask(cfg))
	task.Register(newBotTask(tgClient))
	if err := task.StartAll(context.Background()); err != nil {
		logger.Fatal(fmt.Sprintf("Failed to start background tasks error=%v", err))
	}

	// 等待中断信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Infof("Received shutdown signal, shutting down...")
	task.StopAll()
	logger.Infof("Bot exited safely")

	logService.Close()
	fmt.Println("[SHUTDOWN] mp4-to-mpeg2 bot exited safely")
}
