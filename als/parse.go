package als

import (
	"fmt"
	"io"
	"os"
)

// ParseOptions controls optional side outputs of ParseFileWithOptions.
type ParseOptions struct {
	// DumpXML, when set, receives the decompressed XML before it is parsed.
	DumpXML string
}

// Parse runs the whole pipeline over a gzip-compressed set file.
func Parse(r io.Reader) (*ParseResult, error) {
	return parse(r, ParseOptions{})
}

// ParseFile opens path and parses it.
func ParseFile(path string) (*ParseResult, error) {
	return ParseFileWithOptions(path, ParseOptions{})
}

// ParseFileWithOptions parses path, writing any side outputs named in opts.
func ParseFileWithOptions(path string, opts ParseOptions) (*ParseResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return parse(f, opts)
}

func parse(r io.Reader, opts ParseOptions) (*ParseResult, error) {
	text, err := Decompress(r)
	if err != nil {
		return nil, err
	}

	if opts.DumpXML != "" {
		if err := os.WriteFile(opts.DumpXML, []byte(text), 0o644); err != nil {
			return nil, fmt.Errorf("dump xml: %w", err)
		}
	}

	root, err := ParseDocument(text)
	if err != nil {
		return nil, err
	}

	clips, err := ScanAudioClips(root)
	if err != nil {
		return nil, err
	}

	return Aggregate(clips)
}
