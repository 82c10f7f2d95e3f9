package gateway

import (
	"context"

	"mpeg2-bot/ddd/domain/vo"
)

// TranscoderGateway 外部转码工具网关
type TranscoderGateway interface {
	// Probe 启动时探测外部工具是否可用；失败是致命的启动错误
	Probe(ctx context.Context) error

	// Convert 以固定参数模板执行一次转换；所有失败以结果值返回
	Convert(ctx context.Context, request *vo.ConversionRequest) vo.ConvertOutcome
}
