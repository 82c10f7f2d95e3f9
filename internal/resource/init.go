package resource

import "mpeg2-bot/pkg/manager"

func init() {
	// 注册资源插件
	manager.RegisterResourcePlugin(&StagingResourcePlugin{})
}
