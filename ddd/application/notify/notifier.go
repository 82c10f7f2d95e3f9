package notify

import (
	"context"

	"mpeg2-bot/ddd/domain/gateway"
	"mpeg2-bot/pkg/logger"
)

// Fixed user-visible texts. Raw diagnostics never appear here; failures are
// explained in general terms only.
const (
	TextUnauthorized = "❌ You are not authorized to use this bot."
	TextWelcome      = "👋 Welcome! Send an MP4 video or document to convert it to MPEG-2 format.\nUse /help for more info."
	TextHelp         = "📖 *Bot Command List:*\n" +
		"/start - Welcome message\n" +
		"/help - Show this help message\n\n" +
		"🎥 Just send an `.mp4` file (video or document) and I’ll convert it to MPEG-2 format."
	TextInvalidFile    = "❌ Invalid file. Please send an `.mp4` video or document."
	TextDownloading    = "⏳ Downloading your MP4 file..."
	TextDownloadFailed = "❌ Failed to download the MP4 file."
	TextConverting     = "🔄 Converting to MPEG-2..."
	TextConvertFailed  = "❌ Conversion failed. Check logs."
	TextUploading      = "📤 Uploading your MPEG-2 file..."
	TextUploadFailed   = "❌ Failed to upload the MPEG-2 file."
	TextCompleted      = "✅ Conversion complete."
	CaptionReady       = "✅ Your MPEG-2 file is ready!"
)

// ErrorText renders the generic error status for an unexpected fault.
func ErrorText(description string) string {
	return "❌ Error: " + description
}

// Notifier delivers one evolving status line per job: the first notification
// sends a reply, every later one edits it in place. Notification delivery
// failures are logged and never fail the job.
type Notifier struct {
	transport gateway.TransportGateway
	chatID    int64
	replyTo   int
	status    gateway.StatusMessage
}

// NewNotifier 创建每作业一个的状态通知器。
func NewNotifier(transport gateway.TransportGateway, chatID int64, replyTo int) *Notifier {
	return &Notifier{
		transport: transport,
		chatID:    chatID,
		replyTo:   replyTo,
	}
}

// Notify renders the given status text to the user.
func (n *Notifier) Notify(ctx context.Context, text string) {
	if n.status == nil {
		status, err := n.transport.SendReply(ctx, n.chatID, n.replyTo, text)
		if err != nil {
			logger.Warnf("status reply failed chat_id=%d error=%v", n.chatID, err)
			return
		}
		n.status = status
		return
	}
	if err := n.status.Edit(ctx, text); err != nil {
		logger.Warnf("status edit failed chat_id=%d error=%v", n.chatID, err)
	}
}
