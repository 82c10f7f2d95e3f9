package executor

import (
	"bufio"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"mpeg2-bot/ddd/domain/gateway"
	"mpeg2-bot/ddd/domain/vo"
	"mpeg2-bot/pkg/config"
	"mpeg2-bot/pkg/logger"
)

// stderrTailLines bounds the captured diagnostic stream.
const stderrTailLines = 200

// FFmpegExecutor implements gateway.TranscoderGateway using a local ffmpeg
// binary. The argument template is fixed; nothing is derived from the input.
type FFmpegExecutor struct {
	binaryPath string
}

var _ gateway.TranscoderGateway = (*FFmpegExecutor)(nil)

func NewFFmpegExecutor(cfg *config.Config) *FFmpegExecutor {
	if cfg == nil {
		cfg = config.GetGlobalConfig()
	}
	binary := "ffmpeg"
	if cfg != nil && strings.TrimSpace(cfg.Transcode.FFmpeg.BinaryPath) != "" {
		binary = cfg.Transcode.FFmpeg.BinaryPath
	}
	return &FFmpegExecutor{binaryPath: binary}
}

// Probe verifies the ffmpeg binary exists and answers -version. Called once
// at startup, before any job is accepted; failure is fatal.
func (e *FFmpegExecutor) Probe(ctx context.Context) error {
	if _, err := exec.LookPath(e.binaryPath); err != nil {
		return fmt.Errorf("ffmpeg binary not found (binary=%s): %w", e.binaryPath, err)
	}
	out, err := exec.CommandContext(ctx, e.binaryPath, "-version").Output()
	if err != nil {
		return fmt.Errorf("ffmpeg -version failed (binary=%s): %w", e.binaryPath, err)
	}
	version := strings.TrimSpace(string(out))
	if idx := strings.IndexByte(version, '\n'); idx > 0 {
		version = version[:idx]
	}
	logger.Infof("ffmpeg probe ok binary=%s version=%s", e.binaryPath, version)
	return nil
}

// Convert runs ffmpeg with the fixed argument template. Exit status 0 is
// success; everything else comes back as a failure outcome carrying the
// captured stderr tail. Nothing escapes this boundary as a fault.
func (e *FFmpegExecutor) Convert(ctx context.Context, request *vo.ConversionRequest) vo.ConvertOutcome {
	cmd := exec.CommandContext(ctx, e.binaryPath, request.FFmpegArgs()...)
	logger.Infof("ffmpeg command input=%s output=%s args=%s", request.InputPath, request.OutputPath, strings.Join(cmd.Args, " "))

	stderr, err := cmd.StderrPipe()
	if err != nil {
		return vo.NewConvertFailure(fmt.Errorf("create ffmpeg stderr pipe: %w", err), "")
	}

	if err := cmd.Start(); err != nil {
		return vo.NewConvertFailure(fmt.Errorf("start ffmpeg: %w", err), "")
	}

	tail := make([]string, 0, stderrTailLines)
	scanner := bufio.NewScanner(stderr)
	scanner.Buffer(make([]byte, 0, 1024), 1024*1024)
	for scanner.Scan() {
		if len(tail) >= stderrTailLines {
			tail = tail[1:]
		}
		tail = append(tail, scanner.Text())
	}

	if err := cmd.Wait(); err != nil {
		return vo.NewConvertFailure(err, strings.Join(tail, "\n"))
	}
	return vo.NewConvertSuccess()
}
