package errno

// code=4xx request rejected (expected, user-visible fixed text)
// code=5xx process/startup error
// code=2xxxx job processing error

type Errno struct {
	Code    int
	Message string
}

// Error 实现error接口
func (e *Errno) Error() string {
	return e.Message
}

var (
	OK = &Errno{Code: 200, Message: "Success"}

	ErrUnauthorized = &Errno{Code: 401, Message: "Sender is not the configured owner"}
	ErrInvalidFile  = &Errno{Code: 400, Message: "Message carries no convertible .mp4 attachment"}

	ErrInternalServer = &Errno{Code: 500, Message: "Internal server error"}
	ErrConfiguration  = &Errno{Code: 501, Message: "Configuration is missing or invalid"}
	ErrFFmpegMissing  = &Errno{Code: 502, Message: "FFmpeg binary is missing or not executable"}

	// 转码作业错误码
	ErrDownloadFailed  = &Errno{Code: 20001, Message: "Downloading the source file failed"}
	ErrTranscodeFailed = &Errno{Code: 20002, Message: "Transcoding the source file failed"}
	ErrUploadFailed    = &Errno{Code: 20003, Message: "Uploading the converted file failed"}
	ErrStagingFailed   = &Errno{Code: 20004, Message: "Preparing staging paths failed"}
)
