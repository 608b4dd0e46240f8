// Package store persists per-work transcriptions and alignment results in
// SQLite.
//
// Each work owns one database file, data.db, inside its directory under the
// configured data root. The file_transcriptions table is keyed by the audio
// segment's file path; transcriptions are read back in file-path order, which
// is the recording order the aligners assume. Writes through one Store are
// serialized, and every statement retries briefly when SQLite reports the
// database busy, so several processes may share a work's file.
//
// Alignment results are overwritten in place: re-running a work replaces
// source_index and best_matches for every row it touches.
package store
