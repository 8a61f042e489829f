package store

import (
	"context"
	"fmt"
	"time"
)

// Document is an uploaded contract saved to a user's library.
type Document struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Filename  string    `json:"filename"`
	MIME      string    `json:"mime"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

const documentColumns = `id, user_id, filename, mime, content, created_at`

func scanDocument(row scanner) (Document, error) {
	var d Document
	var created int64
	if err := row.Scan(&d.ID, &d.UserID, &d.Filename, &d.MIME, &d.Content, &created); err != nil {
		return Document{}, err
	}
	d.CreatedAt = fromUnix(created)
	return d, nil
}

// SaveDocument stores d for d.UserID and returns it with id and timestamp set.
func (s *Store) SaveDocument(ctx context.Context, d Document) (Document, error) {
	d.CreatedAt = fromUnix(toUnix(s.now()))
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO documents(user_id, filename, mime, content, created_at) VALUES(?,?,?,?,?)`,
		d.UserID, d.Filename, d.MIME, d.Content, toUnix(d.CreatedAt))
	if err != nil {
		return Document{}, fmt.Errorf("insert document: %w", err)
	}
	if d.ID, err = res.LastInsertId(); err != nil {
		return Document{}, fmt.Errorf("document last insert id: %w", err)
	}
	return d, nil
}

// ListDocuments returns the documents of userID, newest first.
func (s *Store) ListDocuments(ctx context.Context, userID int64) ([]Document, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	defer rows.Close()
	out := []Document{}
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, fmt.Errorf("scan document: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// GetDocument returns document id when it belongs to userID.
func (s *Store) GetDocument(ctx context.Context, id, userID int64) (Document, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+documentColumns+` FROM documents WHERE id = ? AND user_id = ?`, id, userID)
	d, err := scanDocument(row)
	if err != nil {
		return Document{}, noRows(err)
	}
	return d, nil
}

// DeleteDocument removes document id when it belongs to userID.
func (s *Store) DeleteDocument(ctx context.Context, id, userID int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM documents WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return requireAffected(res, "delete document")
}
