package provider

// TranscriptResult is the structured result from an external transcript source.
type TranscriptResult struct {
	VideoID  string
	Title    string
	Language string
	Segments []SegmentResult
}

// SegmentResult represents a single timed transcript line.
type SegmentResult struct {
	Text       string
	OffsetMs   int64
	DurationMs int64
}

// QuizResult is a generated comprehension quiz.
type QuizResult struct {
	Questions []QuizQuestion
}

// QuizQuestion is a single multiple-choice question.
type QuizQuestion struct {
	Prompt      string
	Options     []string
	AnswerIndex int
}

// FeedbackResult is AI feedback on a spoken repetition of a transcript line.
type FeedbackResult struct {
	Score       int
	Feedback    string
	Suggestions []string
}
