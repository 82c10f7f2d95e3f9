package telegram

import (
	"context"
	"fmt"
	"sync"

	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/downloader"
	"github.com/gotd/td/telegram/message"
	"github.com/gotd/td/telegram/message/styling"
	"github.com/gotd/td/telegram/message/unpack"
	"github.com/gotd/td/telegram/uploader"
	"github.com/gotd/td/tg"

	"mpeg2-bot/ddd/domain/gateway"
	"mpeg2-bot/pkg/config"
	"mpeg2-bot/pkg/logger"
)

// Client is the MTProto transport. It owns the gotd client, dispatches
// new-message updates to the registered handler and implements
// gateway.TransportGateway for the job pipeline.
type Client struct {
	cfg        config.TelegramConfig
	client     *telegram.Client
	dispatcher tg.UpdateDispatcher
	api        *tg.Client
	sender     *message.Sender

	peerMu sync.RWMutex
	peers  map[int64]*tg.InputPeerUser
}

var _ gateway.TransportGateway = (*Client)(nil)

// NewClient 创建Telegram客户端
func NewClient(cfg *config.Config) *Client {
	dispatcher := tg.NewUpdateDispatcher()
	client := telegram.NewClient(cfg.Telegram.APIID, cfg.Telegram.APIHash, telegram.Options{
		UpdateHandler:  dispatcher,
		SessionStorage: &session.FileStorage{Path: cfg.Telegram.SessionFile},
	})
	api := client.API()
	return &Client{
		cfg:        cfg.Telegram,
		client:     client,
		dispatcher: dispatcher,
		api:        api,
		sender:     message.NewSender(api),
		peers:      make(map[int64]*tg.InputPeerUser),
	}
}

// OnNewMessage registers the update handler; call before Run.
func (c *Client) OnNewMessage(handler func(ctx context.Context, e tg.Entities, update *tg.UpdateNewMessage) error) {
	c.dispatcher.OnNewMessage(handler)
}

// Run connects, authorizes as a bot and serves updates until ctx is
// cancelled. Blocks for the lifetime of the connection.
func (c *Client) Run(ctx context.Context) error {
	return c.client.Run(ctx, func(ctx context.Context) error {
		status, err := c.client.Auth().Status(ctx)
		if err != nil {
			return fmt.Errorf("auth status: %w", err)
		}
		if !status.Authorized {
			if _, err := c.client.Auth().Bot(ctx, c.cfg.BotToken); err != nil {
				return fmt.Errorf("bot authorization: %w", err)
			}
		}
		self, err := c.client.Self(ctx)
		if err != nil {
			return fmt.Errorf("resolve self: %w", err)
		}
		logger.Infof("telegram bot authorized id=%d username=%s", self.ID, self.Username)

		<-ctx.Done()
		return ctx.Err()
	})
}

// CachePeers remembers user access hashes seen in update entities, so later
// replies and uploads can address the peer.
func (c *Client) CachePeers(e tg.Entities) {
	c.peerMu.Lock()
	defer c.peerMu.Unlock()
	for id, user := range e.Users {
		c.peers[id] = &tg.InputPeerUser{UserID: id, AccessHash: user.AccessHash}
	}
}

func (c *Client) inputPeer(chatID int64) tg.InputPeerClass {
	c.peerMu.RLock()
	defer c.peerMu.RUnlock()
	if peer, ok := c.peers[chatID]; ok {
		return peer
	}
	return &tg.InputPeerUser{UserID: chatID}
}

// DownloadAttachment streams the attachment document to localPath, blocking
// until the transfer completes.
func (c *Client) DownloadAttachment(ctx context.Context, attachment gateway.Attachment, localPath string) error {
	docAtt, ok := attachment.(*documentAttachment)
	if !ok {
		return fmt.Errorf("unsupported attachment type %T", attachment)
	}
	location := docAtt.doc.AsInputDocumentFileLocation()
	if _, err := downloader.NewDownloader().Download(c.api, location).ToPath(ctx, localPath); err != nil {
		return fmt.Errorf("download attachment: %w", err)
	}
	return nil
}

// SendReply sends a text reply and returns an editable handle for the
// per-job status line.
func (c *Client) SendReply(ctx context.Context, chatID int64, replyTo int, text string) (gateway.StatusMessage, error) {
	peer := c.inputPeer(chatID)
	id, err := unpack.MessageID(c.sender.To(peer).Reply(replyTo).Text(ctx, text))
	if err != nil {
		return nil, fmt.Errorf("send reply: %w", err)
	}
	return &statusMessage{api: c.api, peer: peer, id: id}, nil
}

// SendDocument uploads localPath and sends it as a document attachment with
// the given display name and caption. Blocks until the upload completes.
func (c *Client) SendDocument(ctx context.Context, chatID int64, replyTo int, localPath, displayName, caption string) error {
	file, err := uploader.NewUploader(c.api).FromPath(ctx, localPath)
	if err != nil {
		return fmt.Errorf("upload document: %w", err)
	}
	document := message.UploadedDocument(file, styling.Plain(caption)).
		Filename(displayName).
		MIME("video/mpeg").
		ForceFile(true)
	if _, err := c.sender.To(c.inputPeer(chatID)).Reply(replyTo).Media(ctx, document); err != nil {
		return fmt.Errorf("send document: %w", err)
	}
	return nil
}

// statusMessage edits a previously sent reply in place.
type statusMessage struct {
	api  *tg.Client
	peer tg.InputPeerClass
	id   int
}

func (s *statusMessage) Edit(ctx context.Context, text string) error {
	req := &tg.MessagesEditMessageRequest{Peer: s.peer, ID: s.id}
	req.SetMessage(text)
	if _, err := s.api.MessagesEditMessage(ctx, req); err != nil {
		return fmt.Errorf("edit message: %w", err)
	}
	return nil
}
