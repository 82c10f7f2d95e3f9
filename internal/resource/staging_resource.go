package resource

import (
	"fmt"
	"os"
	"sync"

	"mpeg2-bot/pkg/config"
	"mpeg2-bot/pkg/logger"
	"mpeg2-bot/pkg/manager"
)

var (
	stagingResourceOnce      sync.Once
	singletonStagingResource *StagingResource
)

// StagingResource owns the staging directory shared by all jobs. The
// directory itself is shared state, but jobs partition it with unique
// generated path names, so no locking is needed.
type StagingResource struct {
	dir string
}

// DefaultStagingResource 获取暂存目录资源单例
func DefaultStagingResource() *StagingResource {
	stagingResourceOnce.Do(func() {
		singletonStagingResource = &StagingResource{}
	})
	return singletonStagingResource
}

// MustOpen 创建暂存目录；失败将中止启动
func (r *StagingResource) MustOpen() {
	cfg := config.GetGlobalConfig()
	if cfg == nil {
		panic("global config not initialized before StagingResource")
	}

	dir := cfg.Transcode.FFmpeg.StagingDir
	if err := os.MkdirAll(dir, 0o755); err != nil {
		panic(fmt.Sprintf("failed to create staging directory %s: %v", dir, err))
	}

	r.dir = dir
	logger.Info("staging resource initialized", map[string]interface{}{
		"staging_dir": dir,
	})
}

// GetDir 获取暂存目录路径
func (r *StagingResource) GetDir() string {
	return r.dir
}

// Close 释放资源。作业自行清理其暂存产物，目录本身保留。
func (r *StagingResource) Close() {}

// StagingResourcePlugin 暂存目录资源插件
type StagingResourcePlugin struct{}

func (p *StagingResourcePlugin) Name() string {
	return "stagingResource"
}

func (p *StagingResourcePlugin) MustCreateResource() manager.Resource {
	return DefaultStagingResource()
}
