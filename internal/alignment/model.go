package alignment

// Unmatched is the candidate index of a result that matched nothing.
const Unmatched = -1

// Candidate is one sentence-like unit of a work's source text.
type Candidate struct {
	Index      int
	Raw        string
	Normalized string
	Reading    string
}

// Transcription is the recognizer output for one audio segment.
type Transcription struct {
	Index      int
	Path       string
	Raw        string
	Normalized string
	Reading    string
}

// MatchResult pairs a transcription with the candidate it aligned to.
type MatchResult struct {
	TranscriptionIndex int    `json:"transcription_index" yaml:"transcription_index"`
	CandidateIndex     int    `json:"candidate_index" yaml:"candidate_index"`
	Text               string `json:"text,omitempty" yaml:"text,omitempty"`
}

// Matched reports whether the result names a candidate.
func (r MatchResult) Matched() bool {
	return r.CandidateIndex != Unmatched
}

func unmatched(transcriptionIndex int) MatchResult {
	return MatchResult{TranscriptionIndex: transcriptionIndex, CandidateIndex: Unmatched}
}
