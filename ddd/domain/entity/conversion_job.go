package entity

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"mpeg2-bot/ddd/domain/vo"
)

// ConversionJob 转换作业实体：一条入站消息对应一个作业。
// 暂存路径在创建时一次性生成，uuid保证并发作业之间不冲突，且绝不复用。
type ConversionJob struct {
	jobID        string        // 作业ID
	chatID       int64         // 会话ID
	messageID    int           // 源消息ID
	fileName     string        // 声明的文件名（可为空）
	inputPath    string        // 输入暂存路径
	outputPath   string        // 输出暂存路径
	status       vo.JobStatus  // 作业状态
	errorMessage string        // 错误信息
	createdAt    time.Time     // 创建时间
	updatedAt    time.Time     // 更新时间
	completedAt  *time.Time    // 终态时间
}

// NewConversionJob 创建新的转换作业，分配唯一暂存路径。
func NewConversionJob(chatID int64, messageID int, fileName, stagingDir string) *ConversionJob {
	id := uuid.New().String()
	now := time.Now()
	return &ConversionJob{
		jobID:      id,
		chatID:     chatID,
		messageID:  messageID,
		fileName:   fileName,
		inputPath:  filepath.Join(stagingDir, "input_"+id+".mp4"),
		outputPath: filepath.Join(stagingDir, "output_"+id+".mpg"),
		status:     vo.JobStatusReceived,
		createdAt:  now,
		updatedAt:  now,
	}
}

// Getters
func (j *ConversionJob) JobID() string         { return j.jobID }
func (j *ConversionJob) ChatID() int64         { return j.chatID }
func (j *ConversionJob) MessageID() int        { return j.messageID }
func (j *ConversionJob) FileName() string      { return j.fileName }
func (j *ConversionJob) InputPath() string     { return j.inputPath }
func (j *ConversionJob) OutputPath() string    { return j.outputPath }
func (j *ConversionJob) Status() vo.JobStatus  { return j.status }
func (j *ConversionJob) ErrorMessage() string  { return j.errorMessage }
func (j *ConversionJob) CreatedAt() time.Time  { return j.createdAt }
func (j *ConversionJob) UpdatedAt() time.Time  { return j.updatedAt }
func (j *ConversionJob) CompletedAt() *time.Time { return j.completedAt }

// BeginDownload 进入下载阶段
func (j *ConversionJob) BeginDownload() error {
	return j.transition(vo.JobStatusDownloading)
}

// MarkValidated 源文件已落盘
func (j *ConversionJob) MarkValidated() error {
	return j.transition(vo.JobStatusValidated)
}

// BeginConvert 进入转码阶段
func (j *ConversionJob) BeginConvert() error {
	return j.transition(vo.JobStatusConverting)
}

// BeginUpload 进入回传阶段
func (j *ConversionJob) BeginUpload() error {
	return j.transition(vo.JobStatusUploading)
}

// Complete 作业完成
func (j *ConversionJob) Complete() error {
	if err := j.transition(vo.JobStatusCompleted); err != nil {
		return err
	}
	now := time.Now()
	j.completedAt = &now
	return nil
}

// Fail 作业失败，记录原因。对已处于终态的作业是无效转换。
func (j *ConversionJob) Fail(message string) error {
	if err := j.transition(vo.JobStatusFailed); err != nil {
		return err
	}
	j.errorMessage = message
	now := time.Now()
	j.completedAt = &now
	return nil
}

func (j *ConversionJob) transition(target vo.JobStatus) error {
	if !j.status.CanTransitionTo(target) {
		return NewDomainError("cannot transition job from " + j.status.String() + " to " + target.String())
	}
	j.status = target
	j.updatedAt = time.Now()
	return nil
}

// Cleanup removes both staging paths. Idempotent: missing files are not an
// error. Other filesystem errors are returned for logging only and never
// fail the job.
func (j *ConversionJob) Cleanup() error {
	var errs []error
	for _, path := range []string{j.inputPath, j.outputPath} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
