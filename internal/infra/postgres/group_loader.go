package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"quizdesk-service/internal/domain"
)

// GroupLoader loads question groups from Postgres. Group metadata lives in
// columns; the ordered questions are a JSONB document, mirroring the
// document shape the content pipeline produces.
type GroupLoader struct {
	pool *pgxpool.Pool
}

func NewGroupLoader(pool *pgxpool.Pool) *GroupLoader {
	return &GroupLoader{pool: pool}
}

func (l *GroupLoader) LoadGroup(ctx context.Context, groupID string) (domain.QuestionGroup, error) {
	var (
		info domain.GroupInfo
		raw  []byte
	)
	err := l.pool.QueryRow(ctx,
		`SELECT id, name, description, pass_line, total_count, questions FROM question_groups WHERE id=$1`,
		groupID,
	).Scan(&info.ID, &info.Name, &info.Description, &info.PassLine, &info.TotalCount, &raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.QuestionGroup{}, domain.ErrGroupNotFound
	}
	if err != nil {
		return domain.QuestionGroup{}, fmt.Errorf("%w: load group: %v", domain.ErrStorageUnavailable, err)
	}

	var questions []domain.Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return domain.QuestionGroup{}, fmt.Errorf("unmarshal questions: %w", err)
	}
	if len(questions) == 0 {
		return domain.QuestionGroup{}, domain.ErrGroupNotFound
	}
	return domain.QuestionGroup{Info: info, Questions: questions}, nil
}

func (l *GroupLoader) LoadCatalog(ctx context.Context) ([]domain.GroupInfo, error) {
	rows, err := l.pool.Query(ctx,
		`SELECT id, name, description, pass_line, total_count FROM question_groups ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%w: list groups: %v", domain.ErrStorageUnavailable, err)
	}
	defer rows.Close()

	var infos []domain.GroupInfo
	for rows.Next() {
		var info domain.GroupInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.Description, &info.PassLine, &info.TotalCount); err != nil {
			return nil, fmt.Errorf("scan group: %w", err)
		}
		infos = append(infos, info)
	}
	return infos, rows.Err()
}
