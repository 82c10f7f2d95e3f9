package vo

import "errors"

// ConversionRequest 转换请求值对象。参数模板固定：不从输入文件的实际编码、
// 分辨率或时长推导任何参数。
type ConversionRequest struct {
	InputPath  string
	OutputPath string
}

// NewConversionRequest 创建转换请求
func NewConversionRequest(inputPath, outputPath string) (*ConversionRequest, error) {
	if inputPath == "" {
		return nil, errors.New("input path cannot be empty")
	}
	if outputPath == "" {
		return nil, errors.New("output path cannot be empty")
	}
	if inputPath == outputPath {
		return nil, errors.New("input and output paths must differ")
	}
	return &ConversionRequest{
		InputPath:  inputPath,
		OutputPath: outputPath,
	}, nil
}

// FFmpegArgs 获取固定的FFmpeg参数模板：mpeg2video + mp2，封装为 mpegts。
func (r *ConversionRequest) FFmpegArgs() []string {
	return []string{
		"-i", r.InputPath,
		"-c:v", "mpeg2video",
		"-q:v", "2",
		"-c:a", "mp2",
		"-f", "mpegts",
		r.OutputPath,
	}
}
