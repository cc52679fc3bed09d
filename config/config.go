package config

import (
	"bytes"
	"errors"
	"os"

	"github.com/adrianliechti/narrator/pkg/extractor"
	"github.com/adrianliechti/narrator/pkg/narration"
	"github.com/adrianliechti/narrator/pkg/provider"
	"github.com/adrianliechti/narrator/pkg/storage"

	"github.com/joho/godotenv"
	"golang.org/x/time/rate"
	"gopkg.in/yaml.v3"
)

const DefaultMaxUploadSize = 32 << 20

type Config struct {
	Address string

	// PublicURL is the externally reachable base URL used in audio links.
	// When empty it is derived from each request.
	PublicURL string

	MaxUploadSize int64

	Narrator *narration.Narrator

	completer   map[string]provider.Completer
	synthesizer map[string]provider.Synthesizer

	extractor map[string]extractor.Provider

	uploads storage.Store
	audio   storage.Store

	closers []func() error
}

func Parse(path string) (*Config, error) {
	file, err := parseFile(path)

	if err != nil {
		return nil, err
	}

	c := &Config{
		Address: ":5000",

		MaxUploadSize: DefaultMaxUploadSize,
	}

	if file.Address != "" {
		c.Address = file.Address
	}

	if file.PublicURL != "" {
		c.PublicURL = file.PublicURL
	}

	if file.MaxUploadSize > 0 {
		c.MaxUploadSize = file.MaxUploadSize
	}

	steps := []func(*configFile) error{
		c.registerStorage,
		c.registerCompleters,
		c.registerExtractors,
		c.registerSynthesizers,
		c.registerNarrator,
	}

	for _, step := range steps {
		if err := step(file); err != nil {
			c.Close()
			return nil, err
		}
	}

	return c, nil
}

// Close releases connections held by configured backends.
func (cfg *Config) Close() error {
	var errs []error

	for _, close := range cfg.closers {
		errs = append(errs, close())
	}

	return errors.Join(errs...)
}

type configFile struct {
	Address   string `yaml:"address"`
	PublicURL string `yaml:"public_url"`

	MaxUploadSize int64 `yaml:"max_upload_size"`

	Storage storageConfig `yaml:"storage"`

	Completers   yaml.Node `yaml:"completers"`
	Extractors   yaml.Node `yaml:"extractors"`
	Synthesizers yaml.Node `yaml:"synthesizers"`

	Caption captionConfig `yaml:"caption"`
	Speech  speechConfig  `yaml:"speech"`
}

func parseFile(path string) (*configFile, error) {
	// a missing .env file is not an error
	godotenv.Load()

	data, err := os.ReadFile(path)

	if err != nil {
		return nil, err
	}

	data = []byte(os.ExpandEnv(string(data)))

	var config configFile

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	if err := decoder.Decode(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

func createLimiter(limit *int) *rate.Limiter {
	if limit == nil {
		return nil
	}

	return rate.NewLimiter(rate.Limit(*limit), *limit)
}
