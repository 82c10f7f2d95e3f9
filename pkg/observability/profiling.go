package observability

import (
	"os"

	"github.com/grafana/pyroscope-go"

	"mpeg2-bot/pkg/config"
	"mpeg2-bot/pkg/logger"
)

// StartProfiling pushes CPU/heap profiles to pyroscope when a server address
// is configured. Profiling failures never affect serving.
func StartProfiling(appName string, cfg *config.Config) {
	if cfg == nil || cfg.Profiling.ServerAddress == "" {
		return
	}

	hostname, _ := os.Hostname()
	_, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: appName,
		ServerAddress:   cfg.Profiling.ServerAddress,
		Tags:            map[string]string{"hostname": hostname},
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
		},
	})
	if err != nil {
		logger.Warnf("pyroscope start failed server=%s error=%v", cfg.Profiling.ServerAddress, err)
	}
}
