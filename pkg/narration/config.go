package narration

import (
	"github.com/adrianliechti/narrator/pkg/storage"
)

// Naming decides how synthesized audio files are named.
type Naming string

const (
	// NamingFixed reuses a single audio file that every request overwrites.
	NamingFixed Naming = "fixed"

	// NamingUnique gives every narration its own audio file.
	NamingUnique Naming = "unique"
)

type Option func(*Narrator)

func WithUploads(store storage.Store) Option {
	return func(n *Narrator) {
		n.uploads = store
	}
}

func WithVoice(voice string) Option {
	return func(n *Narrator) {
		n.voice = voice
	}
}

func WithLanguage(language string) Option {
	return func(n *Narrator) {
		if language != "" {
			n.language = language
		}
	}
}

func WithSpeed(speed *float32) Option {
	return func(n *Narrator) {
		n.speed = speed
	}
}

func WithNaming(naming Naming) Option {
	return func(n *Narrator) {
		if naming != "" {
			n.naming = naming
		}
	}
}
