package config

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/adrianliechti/narrator/pkg/storage"
	"github.com/adrianliechti/narrator/pkg/storage/fs"
	"github.com/adrianliechti/narrator/pkg/storage/memory"
	natsstore "github.com/adrianliechti/narrator/pkg/storage/nats"

	"github.com/nats-io/nats.go"
)

type storageConfig struct {
	Type string `yaml:"type"`

	Path string `yaml:"path"`
	URL  string `yaml:"url"`

	Uploads *bucketConfig `yaml:"uploads"`
	Audio   *bucketConfig `yaml:"audio"`
}

type bucketConfig struct {
	Name string `yaml:"name"`

	Disabled bool `yaml:"disabled"`
}

func (c *bucketConfig) name(fallback string) string {
	if c == nil || c.Name == "" {
		return fallback
	}

	return c.Name
}

func (c *bucketConfig) enabled() bool {
	return c == nil || !c.Disabled
}

func (cfg *Config) registerStorage(f *configFile) error {
	config := f.Storage

	uploads := config.Uploads.name("uploads")
	audio := config.Audio.name("tts_audio")

	if !config.Audio.enabled() {
		return errors.New("audio storage cannot be disabled")
	}

	switch strings.ToLower(config.Type) {
	case "", "fs", "file", "local":
		dir := config.Path

		if dir == "" {
			dir = "."
		}

		store, err := fs.New(filepath.Join(dir, audio))

		if err != nil {
			return err
		}

		cfg.audio = store

		if config.Uploads.enabled() {
			store, err := fs.New(filepath.Join(dir, uploads))

			if err != nil {
				return err
			}

			cfg.uploads = store
		}

	case "nats":
		url := config.URL

		if url == "" {
			url = nats.DefaultURL
		}

		nc, err := nats.Connect(url, nats.Name("narrator"))

		if err != nil {
			return err
		}

		cfg.closers = append(cfg.closers, func() error {
			return nc.Drain()
		})

		js, err := nc.JetStream()

		if err != nil {
			return err
		}

		store, err := natsstore.New(js, audio)

		if err != nil {
			return err
		}

		cfg.audio = store

		if config.Uploads.enabled() {
			store, err := natsstore.New(js, uploads)

			if err != nil {
				return err
			}

			cfg.uploads = store
		}

	case "memory":
		cfg.audio = memory.New()

		if config.Uploads.enabled() {
			cfg.uploads = memory.New()
		}

	default:
		return errors.New("invalid storage type: " + config.Type)
	}

	return nil
}

// Audio returns the store holding synthesized narrations.
func (cfg *Config) Audio() storage.Store {
	return cfg.audio
}

// Uploads returns the store holding uploaded images, or nil if uploads are not kept.
func (cfg *Config) Uploads() storage.Store {
	return cfg.uploads
}
