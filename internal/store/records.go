package store

import (
	"context"
	"database/sql"
	"fmt"
)

// Transcription is one recognizer result as stored.
type Transcription struct {
	Path string
	Text string
}

// Result is an alignment outcome for one file path. A negative SourceIndex
// marks an unmatched transcription.
type Result struct {
	Path        string
	SourceIndex int
	Text        string
}

// Record is a full row of file_transcriptions.
type Record struct {
	Path               string
	Transcription      string
	BestMatch          string
	FinalTranscription string
	SourceIndex        *int
}

// Transcriptions returns every stored transcription ordered by file path.
func (s *Store) Transcriptions(ctx context.Context) ([]Transcription, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `
		SELECT file_path, julius_transcription
		FROM file_transcriptions
		ORDER BY file_path`)
	if err != nil {
		return nil, fmt.Errorf("query transcriptions: %w", err)
	}
	defer rows.Close()

	var out []Transcription
	for rows.Next() {
		var path, text sql.NullString
		if err := rows.Scan(&path, &text); err != nil {
			return nil, fmt.Errorf("scan transcription: %w", err)
		}
		out = append(out, Transcription{Path: path.String, Text: text.String})
	}
	return out, rows.Err()
}

// Records returns every row ordered by file path.
func (s *Store) Records(ctx context.Context) ([]Record, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `
		SELECT file_path, julius_transcription, best_matches, final_transcription, source_index
		FROM file_transcriptions
		ORDER BY file_path`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			path, text, best, final sql.NullString
			index                   sql.NullInt64
		)
		if err := rows.Scan(&path, &text, &best, &final, &index); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		rec := Record{
			Path:               path.String,
			Transcription:      text.String,
			BestMatch:          best.String,
			FinalTranscription: final.String,
		}
		if index.Valid {
			v := int(index.Int64)
			rec.SourceIndex = &v
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Insert adds transcriptions, leaving rows whose file path already exists
// untouched. It returns the number of rows added.
func (s *Store) Insert(ctx context.Context, items []Transcription) (int, error) {
	ctx = ensureContext(ctx)
	added := 0
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		added = 0
		stmt, err := tx.PrepareContext(ctx, `
			INSERT OR IGNORE INTO file_transcriptions (file_path, julius_transcription)
			VALUES (?, ?)`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, item := range items {
			res, err := stmt.ExecContext(ctx, item.Path, item.Text)
			if err != nil {
				return fmt.Errorf("insert %s: %w", item.Path, err)
			}
			if n, _ := res.RowsAffected(); n > 0 {
				added++
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("insert transcriptions: %w", err)
	}
	return added, nil
}

// Upsert stores transcriptions, replacing the text of paths already present.
// Alignment results of replaced rows are kept until the next pass overwrites
// them.
func (s *Store) Upsert(ctx context.Context, items []Transcription) error {
	ctx = ensureContext(ctx)
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			INSERT INTO file_transcriptions (file_path, julius_transcription)
			VALUES (?, ?)
			ON CONFLICT(file_path) DO UPDATE SET julius_transcription = excluded.julius_transcription`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, item := range items {
			if _, err := stmt.ExecContext(ctx, item.Path, item.Text); err != nil {
				return fmt.Errorf("upsert %s: %w", item.Path, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("upsert transcriptions: %w", err)
	}
	return nil
}

// Put records one alignment result.
func (s *Store) Put(ctx context.Context, result Result) error {
	return s.PutAll(ctx, []Result{result})
}

// PutAll records alignment results in one transaction. Unmatched results store
// a NULL best match.
func (s *Store) PutAll(ctx context.Context, results []Result) error {
	ctx = ensureContext(ctx)
	err := s.withTx(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, `
			UPDATE file_transcriptions
			SET source_index = ?, best_matches = ?
			WHERE file_path = ?`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, r := range results {
			res, err := stmt.ExecContext(ctx, r.SourceIndex, nullableString(r.Text), r.Path)
			if err != nil {
				return fmt.Errorf("update %s: %w", r.Path, err)
			}
			if n, _ := res.RowsAffected(); n == 0 {
				return fmt.Errorf("update %s: %w", r.Path, ErrUnknownPath)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("store results: %w", err)
	}
	return nil
}

// ClearResults forgets every stored alignment result.
func (s *Store) ClearResults(ctx context.Context) error {
	ctx = ensureContext(ctx)
	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, "UPDATE file_transcriptions SET source_index = NULL, best_matches = NULL")
		return err
	})
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
