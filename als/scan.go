package als

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ScanAudioClips collects one AudioClip for every AudioClip element that is a
// direct child of root or of any element below it.
//
// When a clip carries several Path or CurrentStart elements the last one in
// document order wins. A clip without a SampleRef/FileRef/Path chain is kept
// with an empty path.
func ScanAudioClips(root *Node) ([]AudioClip, error) {
	var clips []AudioClip
	for _, node := range root.Descendants() {
		for _, el := range node.ChildrenNamed(tagAudioClip) {
			clip, err := readClip(el)
			if err != nil {
				return nil, fmt.Errorf("audio clip %d: %w", len(clips)+1, err)
			}
			clips = append(clips, clip)
		}
	}
	return clips, nil
}

func readClip(el *Node) (AudioClip, error) {
	path := ""
	currentStart := ""

	for _, sampleRef := range el.ChildrenNamed(tagSampleRef) {
		for _, fileRef := range sampleRef.ChildrenNamed(tagFileRef) {
			for _, p := range fileRef.ChildrenNamed(tagPath) {
				v, err := valueOf(p)
				if err != nil {
					return AudioClip{}, err
				}
				path = v
			}
		}
	}

	for _, cs := range el.ChildrenNamed(tagCurrentStart) {
		v, err := valueOf(cs)
		if err != nil {
			return AudioClip{}, err
		}
		currentStart = v
	}

	start, err := parseStart(currentStart)
	if err != nil {
		return AudioClip{}, err
	}

	return AudioClip{Start: start, Path: path}, nil
}

// parseStart reads a decimal start value. Values beyond float64 range become
// ±Inf. Hex floats and digit separators are not accepted.
func parseStart(s string) (float64, error) {
	digits := strings.TrimLeft(s, "+-")
	if len(s)-len(digits) > 1 || strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") ||
		strings.Contains(s, "_") {
		return 0, fmt.Errorf("%w %q", ErrInvalidStart, s)
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && numErr.Err == strconv.ErrRange {
			return v, nil
		}
		return 0, fmt.Errorf("%w %q", ErrInvalidStart, s)
	}
	return v, nil
}

func valueOf(n *Node) (string, error) {
	v, ok := n.Attribute(attrValue)
	if !ok {
		return "", fmt.Errorf("%w %s on <%s>", ErrMissingAttribute, attrValue, n.Name.Local)
	}
	return v, nil
}
