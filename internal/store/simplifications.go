package store

import (
	"context"
	"fmt"
	"time"

	"github.com/hyperifyio/clauseease/internal/readability"
)

// Simplification is one logged simplification run.
type Simplification struct {
	ID         int64              `json:"id"`
	UserID     int64              `json:"user_id"`
	Level      string             `json:"level"`
	Mode       string             `json:"mode"`
	Original   string             `json:"original_text"`
	Simplified string             `json:"simplified_text"`
	Summary    string             `json:"summary,omitempty"`
	Before     readability.Scores `json:"before"`
	After      readability.Scores `json:"after"`
	CreatedAt  time.Time          `json:"created_at"`
}

// LevelStat aggregates the log for one level.
type LevelStat struct {
	Level string `json:"level"`
	Count int64  `json:"count"`
	// AvgReduction is the mean of original length minus simplified length,
	// in characters.
	AvgReduction float64 `json:"avg_reduction"`
}

const simplificationColumns = `id, user_id, level, mode, original_text, simplified_text, summary,
	before_fre, before_fk, before_fog, after_fre, after_fk, after_fog, created_at`

func scanSimplification(row scanner) (Simplification, error) {
	var r Simplification
	var created int64
	if err := row.Scan(&r.ID, &r.UserID, &r.Level, &r.Mode, &r.Original, &r.Simplified, &r.Summary,
		&r.Before.FleschReadingEase, &r.Before.FleschKincaidGrade, &r.Before.GunningFog,
		&r.After.FleschReadingEase, &r.After.FleschKincaidGrade, &r.After.GunningFog, &created); err != nil {
		return Simplification{}, err
	}
	r.CreatedAt = fromUnix(created)
	return r, nil
}

// LogSimplification appends r to the log and returns its id.
func (s *Store) LogSimplification(ctx context.Context, r Simplification) (int64, error) {
	if r.Mode == "" {
		r.Mode = "rules"
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO simplifications(user_id, level, mode, original_text, simplified_text, summary,
			before_fre, before_fk, before_fog, after_fre, after_fk, after_fog, created_at)
		 VALUES(?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		r.UserID, r.Level, r.Mode, r.Original, r.Simplified, r.Summary,
		r.Before.FleschReadingEase, r.Before.FleschKincaidGrade, r.Before.GunningFog,
		r.After.FleschReadingEase, r.After.FleschKincaidGrade, r.After.GunningFog,
		toUnix(s.now()))
	if err != nil {
		return 0, fmt.Errorf("insert simplification: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("simplification last insert id: %w", err)
	}
	return id, nil
}

// ListSimplifications returns the log of userID, newest first.
func (s *Store) ListSimplifications(ctx context.Context, userID int64) ([]Simplification, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+simplificationColumns+` FROM simplifications WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list simplifications: %w", err)
	}
	defer rows.Close()
	out := []Simplification{}
	for rows.Next() {
		r, err := scanSimplification(rows)
		if err != nil {
			return nil, fmt.Errorf("scan simplification: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// GetSimplification returns log entry id when it belongs to userID.
func (s *Store) GetSimplification(ctx context.Context, id, userID int64) (Simplification, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+simplificationColumns+` FROM simplifications WHERE id = ? AND user_id = ?`, id, userID)
	r, err := scanSimplification(row)
	if err != nil {
		return Simplification{}, noRows(err)
	}
	return r, nil
}

// LevelStats aggregates the whole log per level, ordered by level name.
func (s *Store) LevelStats(ctx context.Context) ([]LevelStat, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT level, COUNT(*), AVG(LENGTH(original_text) - LENGTH(simplified_text))
		 FROM simplifications GROUP BY level ORDER BY level`)
	if err != nil {
		return nil, fmt.Errorf("level stats: %w", err)
	}
	defer rows.Close()
	out := []LevelStat{}
	for rows.Next() {
		var st LevelStat
		if err := rows.Scan(&st.Level, &st.Count, &st.AvgReduction); err != nil {
			return nil, fmt.Errorf("scan level stat: %w", err)
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
