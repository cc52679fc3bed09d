// Package narration captions uploaded images and reads the caption aloud.
package narration

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/adrianliechti/narrator/pkg/caption"
	"github.com/adrianliechti/narrator/pkg/provider"
	"github.com/adrianliechti/narrator/pkg/storage"

	"github.com/google/uuid"
)

const (
	DefaultLanguage = "en"

	DefaultAudioName = "caption_audio.mp3"
)

var ErrEmptyCaption = errors.New("empty caption")

type Captioner interface {
	Caption(ctx context.Context, file provider.File) (*caption.Result, error)
}

type Narrator struct {
	captioner   Captioner
	synthesizer provider.Synthesizer

	audio   storage.Store
	uploads storage.Store

	voice    string
	language string
	speed    *float32

	naming Naming
}

type Narration struct {
	Caption      string
	DetectedText string

	AudioName   string
	ContentType string
}

func New(captioner Captioner, synthesizer provider.Synthesizer, audio storage.Store, options ...Option) (*Narrator, error) {
	if captioner == nil {
		return nil, errors.New("missing captioner")
	}

	if synthesizer == nil {
		return nil, errors.New("missing synthesizer")
	}

	if audio == nil {
		return nil, errors.New("missing audio store")
	}

	n := &Narrator{
		captioner:   captioner,
		synthesizer: synthesizer,

		audio: audio,

		language: DefaultLanguage,

		naming: NamingFixed,
	}

	for _, option := range options {
		option(n)
	}

	if n.naming != NamingFixed && n.naming != NamingUnique {
		return nil, fmt.Errorf("invalid naming %q", n.naming)
	}

	return n, nil
}

// Narrate keeps the upload, captions it and stores the spoken caption.
func (n *Narrator) Narrate(ctx context.Context, file provider.File) (*Narration, error) {
	if err := n.storeUpload(ctx, file); err != nil {
		return nil, err
	}

	result, err := n.captioner.Caption(ctx, file)

	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(result.Caption) == "" {
		return nil, ErrEmptyCaption
	}

	synthesis, err := n.synthesizer.Synthesize(ctx, result.Caption, &provider.SynthesizeOptions{
		Voice:    n.voice,
		Language: n.language,

		Speed: n.speed,
	})

	if err != nil {
		return nil, err
	}

	contentType := synthesis.ContentType

	if contentType == "" {
		contentType = "audio/mpeg"
	}

	name := n.audioName(contentType)

	if err := n.audio.Put(ctx, name, synthesis.Content, contentType); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "narration created", "file", file.Name, "audio", name, "caption", result.Caption)

	return &Narration{
		Caption:      result.Caption,
		DetectedText: result.DetectedText,

		AudioName:   name,
		ContentType: contentType,
	}, nil
}

// Caption describes file without synthesizing speech.
func (n *Narrator) Caption(ctx context.Context, file provider.File) (*caption.Result, error) {
	return n.captioner.Caption(ctx, file)
}

// Audio returns a previously stored narration.
func (n *Narrator) Audio(ctx context.Context, name string) (*storage.Object, error) {
	return n.audio.Get(ctx, name)
}

func (n *Narrator) storeUpload(ctx context.Context, file provider.File) error {
	if n.uploads == nil {
		return nil
	}

	name := storage.SanitizeName(file.Name)

	if name == "" || n.naming == NamingUnique {
		ext := storage.Extension(file.ContentType)

		if name != "" {
			ext = strings.ToLower(path.Ext(name))
		}

		name = uuid.NewString() + ext
	}

	return n.uploads.Put(ctx, name, file.Content, file.ContentType)
}

func (n *Narrator) audioName(contentType string) string {
	ext := storage.Extension(contentType)

	if ext == "" {
		ext = ".mp3"
	}

	if n.naming == NamingUnique {
		return uuid.NewString() + ext
	}

	return strings.TrimSuffix(DefaultAudioName, ".mp3") + ext
}
