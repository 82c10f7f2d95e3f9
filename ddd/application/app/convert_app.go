package app

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"
	"time"

	"mpeg2-bot/ddd/application/cqe"
	"mpeg2-bot/ddd/application/notify"
	"mpeg2-bot/ddd/domain/entity"
	"mpeg2-bot/ddd/domain/gateway"
	"mpeg2-bot/ddd/domain/service"
	"mpeg2-bot/ddd/domain/vo"
	"mpeg2-bot/pkg/errno"
	"mpeg2-bot/pkg/logger"
)

// OutputDisplayName 回传文件的固定展示名，与原始文件名无关。
const OutputDisplayName = "converted.mpg"

// ConvertApp 作业生命周期控制器：驱动单个作业走完
// 接收→鉴权→下载→校验→转码→回传→清理 的完整流水线。
type ConvertApp interface {
	// HandleIncoming runs one inbound message end to end. Every fault is
	// contained here; nothing propagates to other jobs or the serving loop.
	HandleIncoming(ctx context.Context, req *cqe.IncomingMedia)
}

type convertAppImpl struct {
	auth       service.AuthorizationService
	transport  gateway.TransportGateway
	transcoder gateway.TranscoderGateway
	stagingDir string
}

// NewConvertApp 创建作业生命周期控制器
func NewConvertApp(
	auth service.AuthorizationService,
	transport gateway.TransportGateway,
	transcoder gateway.TranscoderGateway,
	stagingDir string,
) ConvertApp {
	return &convertAppImpl{
		auth:       auth,
		transport:  transport,
		transcoder: transcoder,
		stagingDir: stagingDir,
	}
}

func (a *convertAppImpl) HandleIncoming(ctx context.Context, req *cqe.IncomingMedia) {
	notifier := notify.NewNotifier(a.transport, req.ChatID, req.MessageID)

	// Authorization denial and validation rejection are degenerate terminal
	// outcomes: no job record, no staging paths, transcoder never invoked.
	if !a.auth.Authorize(req.SenderID, req.HasSender) {
		notifier.Notify(ctx, notify.TextUnauthorized)
		return
	}

	if err := req.Validate(); err != nil {
		logger.Infof("inbound file rejected chat_id=%d file_name=%s", req.ChatID, attachmentName(req))
		notifier.Notify(ctx, notify.TextInvalidFile)
		return
	}

	job := entity.NewConversionJob(req.ChatID, req.MessageID, attachmentName(req), a.stagingDir)

	// Cleanup runs unconditionally once the pipeline reaches a terminal
	// state; the panic boundary runs first (LIFO) and converts any
	// unexpected fault into the failed terminal state.
	defer a.cleanup(job)
	defer a.recoverJob(ctx, job, notifier)

	a.run(ctx, job, req, notifier)
}

func (a *convertAppImpl) run(ctx context.Context, job *entity.ConversionJob, req *cqe.IncomingMedia, notifier *notify.Notifier) {
	logger.Infof("conversion job started job_id=%s chat_id=%d file_name=%s", job.JobID(), job.ChatID(), job.FileName())

	if err := job.BeginDownload(); err != nil {
		a.failJob(ctx, job, notifier, notify.ErrorText(err.Error()), err)
		return
	}
	notifier.Notify(ctx, notify.TextDownloading)
	if err := a.transport.DownloadAttachment(ctx, req.Attachment, job.InputPath()); err != nil {
		a.failJob(ctx, job, notifier, notify.TextDownloadFailed, errno.NewBizError(errno.ErrDownloadFailed, err))
		return
	}
	if _, err := os.Stat(job.InputPath()); err != nil {
		a.failJob(ctx, job, notifier, notify.TextDownloadFailed, errno.NewBizError(errno.ErrDownloadFailed, err))
		return
	}
	if err := job.MarkValidated(); err != nil {
		a.failJob(ctx, job, notifier, notify.ErrorText(err.Error()), err)
		return
	}

	if err := job.BeginConvert(); err != nil {
		a.failJob(ctx, job, notifier, notify.ErrorText(err.Error()), err)
		return
	}
	notifier.Notify(ctx, notify.TextConverting)
	request, err := vo.NewConversionRequest(job.InputPath(), job.OutputPath())
	if err != nil {
		a.failJob(ctx, job, notifier, notify.ErrorText(err.Error()), errno.NewBizError(errno.ErrStagingFailed, err))
		return
	}
	outcome := a.transcoder.Convert(ctx, request)
	if !outcome.Success() {
		// The raw diagnostic goes to the log only; the user gets the
		// generic conversion-failure text.
		logger.Errorf("ffmpeg failed job_id=%s error=%v diagnostic=%s", job.JobID(), outcome.Err(), outcome.Diagnostic())
		a.failJob(ctx, job, notifier, notify.TextConvertFailed, errno.NewBizError(errno.ErrTranscodeFailed, outcome.Err()))
		return
	}

	if err := job.BeginUpload(); err != nil {
		a.failJob(ctx, job, notifier, notify.ErrorText(err.Error()), err)
		return
	}
	notifier.Notify(ctx, notify.TextUploading)
	if err := a.transport.SendDocument(ctx, job.ChatID(), job.MessageID(), job.OutputPath(), OutputDisplayName, notify.CaptionReady); err != nil {
		a.failJob(ctx, job, notifier, notify.TextUploadFailed, errno.NewBizError(errno.ErrUploadFailed, err))
		return
	}

	if err := job.Complete(); err != nil {
		a.failJob(ctx, job, notifier, notify.ErrorText(err.Error()), err)
		return
	}
	notifier.Notify(ctx, notify.TextCompleted)
	logger.Infof("conversion job completed job_id=%s duration=%s", job.JobID(), time.Since(job.CreatedAt()))
}

// failJob moves the job to the failed terminal state, logs the cause in full
// and surfaces exactly one human-readable status update.
func (a *convertAppImpl) failJob(ctx context.Context, job *entity.ConversionJob, notifier *notify.Notifier, userText string, cause error) {
	logger.Errorf("conversion job failed job_id=%s status=%s error=%v", job.JobID(), job.Status(), cause)
	if err := job.Fail(cause.Error()); err != nil {
		logger.Warnf("job fail transition rejected job_id=%s error=%v", job.JobID(), err)
	}
	notifier.Notify(ctx, userText)
}

// recoverJob is the job's outermost fault boundary: an unexpected panic is
// logged with full detail, surfaced as a generic error and converted into
// the failed terminal state. Cleanup still runs afterwards.
func (a *convertAppImpl) recoverJob(ctx context.Context, job *entity.ConversionJob, notifier *notify.Notifier) {
	r := recover()
	if r == nil {
		return
	}
	description := fmt.Sprintf("%v", r)
	logger.Errorf("panic in conversion job job_id=%s panic=%v stack=%s", job.JobID(), r, debug.Stack())
	if !job.Status().IsFinalStatus() {
		_ = job.Fail(description)
	}
	notifier.Notify(ctx, notify.ErrorText(description))
}

func (a *convertAppImpl) cleanup(job *entity.ConversionJob) {
	if err := job.Cleanup(); err != nil {
		logger.Warnf("staging cleanup failed job_id=%s error=%v", job.JobID(), err)
	}
}

func attachmentName(req *cqe.IncomingMedia) string {
	if req.Attachment == nil {
		return ""
	}
	return req.Attachment.DeclaredName()
}
