package cqe

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeAttachment struct {
	name  string
	video bool
}

func (f *fakeAttachment) DeclaredName() string { return f.name }
func (f *fakeAttachment) IsVideo() bool        { return f.video }

func TestValidateAcceptsMP4Names(t *testing.T) {
	cases := []struct {
		name  string
		video bool
	}{
		{"movie.mp4", true},
		{"movie.mp4", false}, // document attachment with mp4 name
		{"MOVIE.MP4", false},
		{"Clip.Mp4", true},
	}
	for _, c := range cases {
		m := &IncomingMedia{Attachment: &fakeAttachment{name: c.name, video: c.video}}
		assert.NoError(t, m.Validate(), "name=%s video=%v", c.name, c.video)
	}
}

func TestValidateRejectsWrongExtension(t *testing.T) {
	for _, name := range []string{"movie.txt", "clip.mov", "clip", "movie.mp4.avi"} {
		m := &IncomingMedia{Attachment: &fakeAttachment{name: name, video: true}}
		assert.Error(t, m.Validate(), "name=%s", name)
	}
}

func TestValidateNamelessAttachment(t *testing.T) {
	// A native video without a declared name passes; a nameless plain
	// document does not.
	video := &IncomingMedia{Attachment: &fakeAttachment{video: true}}
	assert.NoError(t, video.Validate())

	doc := &IncomingMedia{Attachment: &fakeAttachment{video: false}}
	assert.Error(t, doc.Validate())
}

func TestValidateNilAttachment(t *testing.T) {
	m := &IncomingMedia{}
	assert.Error(t, m.Validate())
}
