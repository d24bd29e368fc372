package als

import (
	"math"
	"sort"
)

// Aggregate sorts clips by start and collects their distinct paths. Paths are
// listed in the order they first appear along the sorted clips. clips is not
// modified.
func Aggregate(clips []AudioClip) (*ParseResult, error) {
	for _, c := range clips {
		if math.IsNaN(c.Start) {
			return nil, ErrNaNStart
		}
	}

	sorted := make([]AudioClip, len(clips))
	copy(sorted, clips)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start < sorted[j].Start
	})

	seen := make(map[string]struct{}, len(sorted))
	paths := make([]string, 0, len(sorted))
	for _, c := range sorted {
		if _, ok := seen[c.Path]; ok {
			continue
		}
		seen[c.Path] = struct{}{}
		paths = append(paths, c.Path)
	}

	return &ParseResult{Paths: paths, AudioClips: sorted}, nil
}
