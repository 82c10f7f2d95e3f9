package cqe

import (
	"strings"

	"mpeg2-bot/ddd/domain/gateway"
	"mpeg2-bot/pkg/errno"
)

// SourceExtension 固定的源文件扩展名
const SourceExtension = ".mp4"

// IncomingMedia 入站媒体消息CQE，由传输适配层构造。
type IncomingMedia struct {
	ChatID     int64              // 会话ID
	MessageID  int                // 源消息ID
	SenderID   int64              // 发送者ID
	HasSender  bool               // 发送者身份是否存在
	Attachment gateway.Attachment // 附件句柄（视频或文件），可为nil
}

// Validate classifies the message as video-bearing and checks the declared
// file name extension, case-insensitively. Extension-only by design; the
// actual container and codec are never inspected. A native video attachment
// without a declared name passes.
func (m *IncomingMedia) Validate() error {
	if m.Attachment == nil {
		return errno.ErrInvalidFile
	}
	name := m.Attachment.DeclaredName()
	if name == "" {
		if m.Attachment.IsVideo() {
			return nil
		}
		return errno.ErrInvalidFile
	}
	if !strings.HasSuffix(strings.ToLower(name), SourceExtension) {
		return errno.ErrInvalidFile
	}
	return nil
}
