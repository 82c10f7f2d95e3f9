package vo

// JobStatus 转换作业状态
type JobStatus string

const (
	// JobStatusReceived 已接收（已通过授权检查）
	JobStatusReceived JobStatus = "received"
	// JobStatusDownloading 下载源文件中
	JobStatusDownloading JobStatus = "downloading"
	// JobStatusValidated 源文件已落盘校验
	JobStatusValidated JobStatus = "validated"
	// JobStatusConverting 转码中
	JobStatusConverting JobStatus = "converting"
	// JobStatusUploading 回传结果中
	JobStatusUploading JobStatus = "uploading"
	// JobStatusCompleted 已完成
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed 失败
	JobStatusFailed JobStatus = "failed"
	// JobStatusRejected 在任何暂存发生前被拒绝（鉴权或校验）
	JobStatusRejected JobStatus = "rejected"
)

// IsValid 检查状态是否有效
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusReceived, JobStatusDownloading, JobStatusValidated,
		JobStatusConverting, JobStatusUploading,
		JobStatusCompleted, JobStatusFailed, JobStatusRejected:
		return true
	default:
		return false
	}
}

// String 返回状态字符串
func (s JobStatus) String() string {
	return string(s)
}

// IsFinalStatus 检查是否为最终状态
func (s JobStatus) IsFinalStatus() bool {
	return s == JobStatusCompleted || s == JobStatusFailed || s == JobStatusRejected
}

// CanTransitionTo 检查是否可以转换到目标状态。状态单调推进，不允许回退。
func (s JobStatus) CanTransitionTo(target JobStatus) bool {
	// Failed is reachable from every non-terminal state.
	if target == JobStatusFailed {
		return !s.IsFinalStatus()
	}
	switch s {
	case JobStatusReceived:
		return target == JobStatusDownloading || target == JobStatusRejected
	case JobStatusDownloading:
		return target == JobStatusValidated
	case JobStatusValidated:
		return target == JobStatusConverting
	case JobStatusConverting:
		return target == JobStatusUploading
	case JobStatusUploading:
		return target == JobStatusCompleted
	case JobStatusCompleted, JobStatusFailed, JobStatusRejected:
		return false
	default:
		return false
	}
}
