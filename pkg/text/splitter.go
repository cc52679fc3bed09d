package text

import (
	"strings"
	"unicode/utf8"
)

// Splitter breaks text into chunks of at most ChunkSize, preferring the
// earliest separator in Separators that still yields chunks that fit.
type Splitter struct {
	ChunkSize int

	Separators []string

	LenFunc   func(string) int
	Trim      bool
	Normalize bool
}

func NewSplitter() Splitter {
	s := Splitter{
		ChunkSize: 100,

		Separators: []string{
			". ",
			", ",
			" ",
			"",
		},

		LenFunc:   utf8.RuneCountInString,
		Trim:      true,
		Normalize: true,
	}

	return s
}

func (s *Splitter) Split(text string) []string {
	if s.Normalize {
		text = Normalize(text)
	}

	return s.split(text, s.Separators)
}

func (s *Splitter) split(text string, separators []string) []string {
	var result []string

	if s.size(text) <= s.ChunkSize {
		return s.appendChunk(result, text)
	}

	if len(separators) == 0 {
		return s.appendChunk(result, text)
	}

	separator, rest := s.textSeparator(text, separators)

	var current string

	for _, piece := range strings.SplitAfter(text, separator) {
		if piece == "" {
			continue
		}

		if s.size(current+piece) <= s.ChunkSize {
			current += piece
			continue
		}

		result = s.appendChunk(result, current)
		current = ""

		if s.size(piece) <= s.ChunkSize {
			current = piece
			continue
		}

		// piece alone is too long, fall back to the next separator
		result = append(result, s.split(piece, rest)...)
	}

	return s.appendChunk(result, current)
}

func (s *Splitter) appendChunk(result []string, chunk string) []string {
	if s.Trim {
		chunk = strings.TrimSpace(chunk)
	}

	if chunk == "" {
		return result
	}

	return append(result, chunk)
}

func (s *Splitter) size(text string) int {
	if s.Trim {
		text = strings.TrimSpace(text)
	}

	return s.LenFunc(text)
}

// textSeparator returns the first separator found in text and the ones after it.
// The empty separator splits between runes and always matches.
func (s *Splitter) textSeparator(text string, separators []string) (string, []string) {
	for i, sep := range separators {
		if sep == "" || strings.Contains(text, sep) {
			return sep, separators[i+1:]
		}
	}

	return "", nil
}
