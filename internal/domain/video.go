package domain

import "time"

// TranscriptSegment is one timed unit of a video transcript. Segments are
// created once when a video's transcript is fetched and are immutable after
// ingestion; within one transcript offsets are strictly increasing.
type TranscriptSegment struct {
	Text       string
	OffsetMs   int64
	DurationMs int64
}

// End returns the segment's end offset in milliseconds.
func (s TranscriptSegment) End() int64 {
	return s.OffsetMs + s.DurationMs
}

// Video is a pre-processed video: metadata plus its cached transcript.
type Video struct {
	ID         string
	Title      string
	Transcript []TranscriptSegment
	CreatedAt  time.Time
}
