package gateway

import "context"

// Attachment is the opaque transport handle for an inbound media file. The
// concrete type belongs to the transport implementation; the domain only
// needs the declared name and the video/document classification.
type Attachment interface {
	// DeclaredName 声明的文件名；原生视频可能没有文件名，返回空串
	DeclaredName() string

	// IsVideo 是否为原生视频附件（而非普通文件附件）
	IsVideo() bool
}

// StatusMessage is a previously sent reply that can be edited in place; one
// evolving status line per job.
type StatusMessage interface {
	Edit(ctx context.Context, text string) error
}

// TransportGateway 聊天传输网关
type TransportGateway interface {
	// DownloadAttachment 下载附件到本地路径，阻塞直至完成
	DownloadAttachment(ctx context.Context, attachment Attachment, localPath string) error

	// SendReply 回复文本消息，返回可编辑的句柄
	SendReply(ctx context.Context, chatID int64, replyTo int, text string) (StatusMessage, error)

	// SendDocument 以附件形式发送本地文件，使用固定展示名与说明文字
	SendDocument(ctx context.Context, chatID int64, replyTo int, localPath, displayName, caption string) error
}
