// Package storage keeps uploaded images and synthesized audio in flat,
// named buckets.
package storage

import (
	"context"
	"errors"
	"mime"
	"path"
	"strings"
	"time"
)

var (
	ErrNotFound    = errors.New("object not found")
	ErrInvalidName = errors.New("invalid object name")
)

type Store interface {
	Put(ctx context.Context, name string, data []byte, contentType string) error
	Get(ctx context.Context, name string) (*Object, error)
}

type Object struct {
	Name string

	Content     []byte
	ContentType string

	ModTime time.Time
}

// ValidateName rejects names that are empty or could escape the bucket.
func ValidateName(name string) error {
	if name == "" || name == "." || name == ".." {
		return ErrInvalidName
	}

	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") || strings.ContainsRune(name, 0) {
		return ErrInvalidName
	}

	return nil
}

// SanitizeName reduces a client supplied file name to a safe base name.
func SanitizeName(name string) string {
	name = strings.ReplaceAll(name, `\`, "/")
	name = path.Base(name)

	name = strings.Map(func(r rune) rune {
		if r == 0 || r == '/' {
			return -1
		}

		return r
	}, name)

	name = strings.ReplaceAll(name, "..", "")
	name = strings.TrimSpace(name)

	if name == "" || name == "." {
		return ""
	}

	return name
}

var contentTypes = map[string]string{
	".mp3":  "audio/mpeg",
	".ogg":  "audio/ogg",
	".opus": "audio/ogg",
	".aac":  "audio/aac",
	".flac": "audio/flac",
	".wav":  "audio/wav",
	".pcm":  "audio/pcm",

	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// ContentType guesses the content type of an object from its name.
func ContentType(name string) string {
	ext := strings.ToLower(path.Ext(name))

	if val, ok := contentTypes[ext]; ok {
		return val
	}

	if val := mime.TypeByExtension(ext); val != "" {
		return val
	}

	return "application/octet-stream"
}

// Extension returns the file extension matching a content type.
func Extension(contentType string) string {
	mediaType, _, _ := mime.ParseMediaType(contentType)

	for ext, val := range contentTypes {
		if val == mediaType && ext != ".jpeg" && ext != ".opus" {
			return ext
		}
	}

	if exts, _ := mime.ExtensionsByType(mediaType); len(exts) > 0 {
		return exts[0]
	}

	return ""
}
