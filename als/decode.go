package als

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/klauspost/compress/gzip"
)

// Decompress inflates a gzip stream into text. Concatenated gzip members are
// read back to back, so the result is the concatenation of every member.
func Decompress(r io.Reader) (string, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGzip, err)
	}
	defer zr.Close()
	zr.Multistream(true)

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, zr); err != nil {
		return "", fmt.Errorf("%w: %v", ErrGzip, err)
	}

	if !utf8.Valid(buf.Bytes()) {
		return "", ErrEncoding
	}
	return buf.String(), nil
}
