// Package transcript provides playback-position lookups over an immutable
// transcript snapshot. The lookup is a pure function of (segments, time) and
// is decoupled from any session or transport lifecycle so it can be queried
// on every playback-progress tick.
package transcript

import (
	"slices"
	"sort"

	"github.com/avelichko/lingtube-backend/internal/domain"
)

// NoActiveSegment is returned by ActiveSegment when the playback position
// precedes the first segment or the transcript is empty.
const NoActiveSegment = -1

// ActiveSegment returns the index of the segment active at currentTimeMs:
// the last segment whose OffsetMs is less than or equal to currentTimeMs.
// The lower bound is inclusive: a position exactly at a segment's offset
// selects that segment.
//
// segments must be ordered by strictly increasing OffsetMs (see [Ingest]).
// Runs in O(log n).
func ActiveSegment(segments []domain.TranscriptSegment, currentTimeMs int64) int {
	if len(segments) == 0 {
		return NoActiveSegment
	}

	// First segment with OffsetMs > currentTimeMs; the active segment is
	// the one immediately before that boundary.
	boundary := sort.Search(len(segments), func(i int) bool {
		return segments[i].OffsetMs > currentTimeMs
	})
	if boundary == 0 {
		return NoActiveSegment
	}
	return boundary - 1
}

// Ingest prepares raw segments fetched from a transcript provider for index
// queries: it sorts by offset (stable, preserving source order of equal
// offsets) and drops all but the first segment at any given offset. Source
// data does not guarantee strictly increasing offsets; the index contract
// does. The input slice is not modified.
func Ingest(raw []domain.TranscriptSegment) []domain.TranscriptSegment {
	if len(raw) == 0 {
		return nil
	}

	segments := slices.Clone(raw)
	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].OffsetMs < segments[j].OffsetMs
	})

	out := segments[:1]
	for _, s := range segments[1:] {
		if s.OffsetMs == out[len(out)-1].OffsetMs {
			continue
		}
		out = append(out, s)
	}
	return out
}
