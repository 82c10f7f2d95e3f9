package telegram

import (
	"context"
	"strings"

	"github.com/gotd/td/tg"

	appsvc "mpeg2-bot/ddd/application/app"
	"mpeg2-bot/ddd/application/cqe"
	"mpeg2-bot/ddd/application/notify"
	"mpeg2-bot/ddd/domain/service"
	infra "mpeg2-bot/ddd/infrastructure/telegram"
	"mpeg2-bot/pkg/logger"
)

// Handler maps raw Telegram updates onto the application layer: commands are
// answered inline, qualifying media messages each get their own pipeline
// goroutine. Jobs are independent; nothing here serializes them.
type Handler struct {
	convertApp appsvc.ConvertApp
	auth       service.AuthorizationService
	client     *infra.Client
}

// NewHandler 创建消息适配器
func NewHandler(convertApp appsvc.ConvertApp, auth service.AuthorizationService, client *infra.Client) *Handler {
	return &Handler{
		convertApp: convertApp,
		auth:       auth,
		client:     client,
	}
}

// Register wires the handler into the client's update dispatcher.
func (h *Handler) Register() {
	h.client.OnNewMessage(h.handleNewMessage)
}

func (h *Handler) handleNewMessage(ctx context.Context, e tg.Entities, update *tg.UpdateNewMessage) error {
	msg, ok := update.Message.(*tg.Message)
	if !ok || msg.Out {
		return nil
	}
	h.client.CachePeers(e)

	chatID, senderID, hasSender := identities(msg)

	if command, ok := parseCommand(msg.Message); ok {
		h.handleCommand(ctx, chatID, msg.ID, senderID, hasSender, command)
		return nil
	}

	attachment, ok := infra.AttachmentFromMessage(msg)
	if !ok {
		// Plain text and unrelated media are ignored, matching the inbound
		// filter of the bot: only videos and file attachments qualify.
		return nil
	}

	req := &cqe.IncomingMedia{
		ChatID:     chatID,
		MessageID:  msg.ID,
		SenderID:   senderID,
		HasSender:  hasSender,
		Attachment: attachment,
	}

	// One detached task per qualifying message; jobs run concurrently and
	// a fault in one never reaches another.
	go h.convertApp.HandleIncoming(ctx, req)
	return nil
}

func (h *Handler) handleCommand(ctx context.Context, chatID int64, messageID int, senderID int64, hasSender bool, command string) {
	if !h.auth.Authorize(senderID, hasSender) {
		h.reply(ctx, chatID, messageID, notify.TextUnauthorized)
		return
	}
	switch command {
	case "start":
		h.reply(ctx, chatID, messageID, notify.TextWelcome)
	case "help":
		h.reply(ctx, chatID, messageID, notify.TextHelp)
	default:
		// Unknown commands are ignored.
	}
}

func (h *Handler) reply(ctx context.Context, chatID int64, messageID int, text string) {
	if _, err := h.client.SendReply(ctx, chatID, messageID, text); err != nil {
		logger.Warnf("command reply failed chat_id=%d error=%v", chatID, err)
	}
}

// identities resolves the conversation and sender of a message. In private
// chats FromID is omitted and the peer itself is the sender.
func identities(msg *tg.Message) (chatID int64, senderID int64, hasSender bool) {
	switch peer := msg.PeerID.(type) {
	case *tg.PeerUser:
		chatID = peer.UserID
		senderID = peer.UserID
		hasSender = true
	case *tg.PeerChat:
		chatID = peer.ChatID
	case *tg.PeerChannel:
		chatID = peer.ChannelID
	}
	if from, ok := msg.FromID.(*tg.PeerUser); ok {
		senderID = from.UserID
		hasSender = true
	}
	return chatID, senderID, hasSender
}

// parseCommand extracts a bot command like "/start" or "/help@botname".
func parseCommand(text string) (string, bool) {
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	command := strings.Fields(text)[0]
	command = strings.TrimPrefix(command, "/")
	if at := strings.IndexByte(command, '@'); at >= 0 {
		command = command[:at]
	}
	if command == "" {
		return "", false
	}
	return command, true
}
