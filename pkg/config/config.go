package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Config is the immutable process configuration, built once at startup and
// passed into the components that need it. Request-handling code never reads
// ambient environment state.
type Config struct {
	Telegram  TelegramConfig  `mapstructure:"telegram"`
	Server    ServerConfig    `mapstructure:"server"`
	Transcode TranscodeConfig `mapstructure:"transcode"`
	Log       LogConfig       `mapstructure:"log"`
	Profiling ProfilingConfig `mapstructure:"profiling"`
}

// TelegramConfig carries the MTProto credentials and the single owner identity.
type TelegramConfig struct {
	APIID       int    `mapstructure:"api_id"`
	APIHash     string `mapstructure:"api_hash"`
	BotToken    string `mapstructure:"bot_token"`
	OwnerID     int64  `mapstructure:"owner_id"`
	SessionFile string `mapstructure:"session_file"`
}

// ServerConfig configures the liveness HTTP server.
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// TranscodeConfig configures the external ffmpeg invocation.
type TranscodeConfig struct {
	FFmpeg FFmpegConfig `mapstructure:"ffmpeg"`
}

// FFmpegConfig locates the ffmpeg binary and the staging directory.
type FFmpegConfig struct {
	BinaryPath string `mapstructure:"binary_path"`
	StagingDir string `mapstructure:"staging_dir"`
}

// LogConfig controls logger level and format.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ProfilingConfig enables pyroscope push profiling when a server address is set.
type ProfilingConfig struct {
	ServerAddress string `mapstructure:"server_address"`
}

var (
	globalConfig *Config
	globalMu     sync.RWMutex
)

// SetGlobalConfig stores the process-wide configuration.
func SetGlobalConfig(cfg *Config) {
	globalMu.Lock()
	defer globalMu.Unlock()
	globalConfig = cfg
}

// GetGlobalConfig returns the process-wide configuration, or nil before startup.
func GetGlobalConfig() *Config {
	globalMu.RLock()
	defer globalMu.RUnlock()
	return globalConfig
}

// Load reads configuration from an optional yaml file plus the MPEG2BOT_*
// environment, applies defaults and validates the required credentials.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults double as env bindings: AutomaticEnv only resolves keys viper
	// already knows about.
	v.SetDefault("telegram.api_id", 0)
	v.SetDefault("telegram.api_hash", "")
	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.owner_id", 0)
	v.SetDefault("telegram.session_file", "mpeg2bot.session")
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8083)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("transcode.ffmpeg.binary_path", "ffmpeg")
	v.SetDefault("transcode.ffmpeg.staging_dir", "/tmp/mpeg2bot")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("profiling.server_address", "")

	v.SetEnvPrefix("MPEG2BOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", configPath, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// normalize fills defaults for values that may be zeroed by a partial file.
func (c *Config) normalize() {
	if c.Transcode.FFmpeg.BinaryPath == "" {
		c.Transcode.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.Transcode.FFmpeg.StagingDir == "" {
		c.Transcode.FFmpeg.StagingDir = "/tmp/mpeg2bot"
	}
	if c.Server.Host == "" {
		c.Server.Host = "0.0.0.0"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8083
	}
	if c.Telegram.SessionFile == "" {
		c.Telegram.SessionFile = "mpeg2bot.session"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate rejects missing or malformed required credentials. Any error here
// is fatal at startup; the process must not begin serving.
func (c *Config) Validate() error {
	var missing []string
	if c.Telegram.APIID <= 0 {
		missing = append(missing, "telegram.api_id")
	}
	if c.Telegram.APIHash == "" {
		missing = append(missing, "telegram.api_hash")
	}
	if c.Telegram.BotToken == "" {
		missing = append(missing, "telegram.bot_token")
	}
	if c.Telegram.OwnerID <= 0 {
		missing = append(missing, "telegram.owner_id")
	}
	if len(missing) > 0 {
		return errors.New("missing required configuration: " + strings.Join(missing, ", "))
	}
	return nil
}

// ListenAddr returns the liveness server bind address.
func (c *ServerConfig) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
