// Package alignment matches ASR transcriptions to sentences of a work's source
// text.
//
// Every comparison runs on two channels: the normalized surface text and a
// normalized phonetic reading produced by an injected reading.Transcriber.
// Two strategies are offered.
//
// Align handles one transcription at a time. It keeps the candidates whose
// combined surface and phonetic partial similarity clears the acceptance
// threshold, then searches every window of those candidates for the substring
// whose reading best matches the transcription's, and finally maps that
// normalized window back onto the candidate's original characters.
//
// AlignWork handles a whole work. For each transcription it takes the top-K
// candidates by surface similarity and, independently, by phonetic similarity,
// intersects the two sets, and breaks ties among the survivors with a term
// that rewards candidates whose relative position in the source matches the
// transcription's relative position in the recording.
//
// Neither strategy treats a weak or empty input as an error; such items come
// back Unmatched. Errors are reserved for collaborator failures and broken
// invariants, both tagged with the markers in internal/services.
package alignment
