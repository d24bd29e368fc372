// Package als extracts audio clip metadata from Ableton Live set files.
//
// A .als file is a gzip-wrapped XML document. Parse inflates it, walks the
// element tree for AudioClip elements and returns the clips sorted by their
// timeline start together with the unique sample paths they reference.
package als

import "errors"

// AudioClip is one placed audio region on the arrangement timeline.
type AudioClip struct {
	Start float64 `yaml:"start"`
	Path  string  `yaml:"path"`
}

// ParseResult is the document written for a single set file.
type ParseResult struct {
	Paths      []string    `yaml:"paths"`
	AudioClips []AudioClip `yaml:"audio_clips"`
}

var (
	ErrGzip             = errors.New("invalid gzip stream")
	ErrEncoding         = errors.New("decompressed data is not valid UTF-8")
	ErrXML              = errors.New("malformed XML")
	ErrMissingAttribute = errors.New("missing attribute")
	ErrInvalidStart     = errors.New("invalid clip start")
	ErrNaNStart         = errors.New("clip start is NaN")
)

// Element and attribute names used by Live set documents.
const (
	tagAudioClip    = "AudioClip"
	tagSampleRef    = "SampleRef"
	tagFileRef      = "FileRef"
	tagPath         = "Path"
	tagCurrentStart = "CurrentStart"
	attrValue       = "Value"
)
