package audio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// MaxSourceSize is the upload ceiling enforced before any processing.
const MaxSourceSize = 50 * 1024 * 1024

// MinSourceSize rejects buffers too small to hold playable audio.
const MinSourceSize = 1024

// acceptedMediaTypes is the fixed allow-list checked against the declared
// media type.
var acceptedMediaTypes = map[string]bool{
	"audio/mp3":   true,
	"audio/mpeg":  true,
	"audio/wav":   true,
	"audio/wave":  true,
	"audio/ogg":   true,
	"audio/m4a":   true,
	"audio/webm":  true,
	"audio/flac":  true,
	"audio/x-wav": true,
}

// acceptedExtensions backs up the media-type check when the declared type is
// missing or unrecognized.
var acceptedExtensions = map[string]bool{
	".mp3":  true,
	".wav":  true,
	".ogg":  true,
	".m4a":  true,
	".webm": true,
	".flac": true,
}

// ValidationError reports a boundary rejection before any component runs.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid audio source: " + e.Reason
}

// Source is an accepted, immutable audio input: raw bytes plus the declared
// media type and original filename. Construct it through NewSource only.
type Source struct {
	data      []byte
	mediaType string
	filename  string
}

// NewSource validates and wraps an audio buffer. Violations of the size or
// media-type rules return a *ValidationError and no Source.
func NewSource(data []byte, mediaType, filename string) (*Source, error) {
	if len(data) > MaxSourceSize {
		return nil, &ValidationError{Reason: fmt.Sprintf(
			"file too large (%.2f MB), maximum size is 50 MB",
			float64(len(data))/1024/1024,
		)}
	}
	if len(data) < MinSourceSize {
		return nil, &ValidationError{Reason: "file too small to be a valid audio recording"}
	}

	normalized := strings.ToLower(strings.TrimSpace(mediaType))
	if i := strings.Index(normalized, ";"); i >= 0 {
		normalized = strings.TrimSpace(normalized[:i])
	}
	ext := strings.ToLower(filepath.Ext(filename))

	if !acceptedMediaTypes[normalized] && !acceptedExtensions[ext] {
		return nil, &ValidationError{Reason: fmt.Sprintf(
			"unsupported type %q, supported formats: MP3, WAV, OGG, M4A, WebM, FLAC",
			mediaType,
		)}
	}

	copied := make([]byte, len(data))
	copy(copied, data)
	return &Source{data: copied, mediaType: normalized, filename: filename}, nil
}

// Bytes returns the raw audio buffer. Callers must not mutate it.
func (s *Source) Bytes() []byte { return s.data }

// MediaType returns the normalized declared media type.
func (s *Source) MediaType() string { return s.mediaType }

// Filename returns the original filename, if one was supplied.
func (s *Source) Filename() string { return s.filename }

// Size returns the buffer length in bytes.
func (s *Source) Size() int { return len(s.data) }
