package ytranscript

// apiTranscript represents the transcript API response payload.
type apiTranscript struct {
	Title    string       `json:"title"`
	Segments []apiSegment `json:"segments"`
}

// apiSegment represents a single timed line in the API payload.
type apiSegment struct {
	Text       string `json:"text"`
	OffsetMs   int64  `json:"offset_ms"`
	DurationMs int64  `json:"duration_ms"`
}
