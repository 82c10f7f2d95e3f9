package telegram

import (
	"github.com/gotd/td/tg"

	"mpeg2-bot/ddd/domain/gateway"
)

// documentAttachment adapts a Telegram document to the domain attachment
// handle. Both native videos and generic file attachments arrive as
// documents on the wire; the video attribute tells them apart.
type documentAttachment struct {
	doc   *tg.Document
	name  string
	video bool
}

var _ gateway.Attachment = (*documentAttachment)(nil)

func (a *documentAttachment) DeclaredName() string { return a.name }
func (a *documentAttachment) IsVideo() bool        { return a.video }

// AttachmentFromMessage extracts the media attachment of an inbound message,
// if any.
func AttachmentFromMessage(msg *tg.Message) (gateway.Attachment, bool) {
	media, ok := msg.Media.(*tg.MessageMediaDocument)
	if !ok {
		return nil, false
	}
	doc, ok := media.Document.AsNotEmpty()
	if !ok {
		return nil, false
	}
	att := &documentAttachment{doc: doc}
	for _, attr := range doc.Attributes {
		switch a := attr.(type) {
		case *tg.DocumentAttributeVideo:
			att.video = true
		case *tg.DocumentAttributeFilename:
			att.name = a.FileName
		}
	}
	return att, true
}
