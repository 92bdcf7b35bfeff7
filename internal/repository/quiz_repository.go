package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/quizzes/internal/model"
	"github.com/stemsi/quizzes/internal/validator"
)

// ErrQuizNotFound is returned when no quiz matches the requested id.
var ErrQuizNotFound = errors.New("quiz not found")

// QuizRepository is the quiz store.
//
// Search patterns are SQL LIKE patterns matched case-insensitively. Create and
// Update write only the question and answer columns and return a
// *validator.ValidationError when the quiz breaks its rules.
type QuizRepository interface {
	GetByID(ctx context.Context, id int) (*model.Quiz, error)
	ListPaginated(ctx context.Context, pattern string, limit, offset int) ([]model.Quiz, int, error)
	Create(ctx context.Context, q *model.Quiz) error
	Update(ctx context.Context, q *model.Quiz) error
	Delete(ctx context.Context, id int) error
	CountExcluding(ctx context.Context, exclude []int) (int, error)
	GetNthExcluding(ctx context.Context, exclude []int, offset int) (*model.Quiz, error)
}

type quizRepository struct {
	db *pgxpool.Pool
}

// NewQuizRepository creates a pgx-backed QuizRepository.
func NewQuizRepository(db *pgxpool.Pool) QuizRepository {
	return &quizRepository{db: db}
}

const quizColumns = `id, question, answer, created_at, updated_at`

func scanQuiz(row pgx.Row) (*model.Quiz, error) {
	q := &model.Quiz{}
	if err := row.Scan(&q.ID, &q.Question, &q.Answer, &q.CreatedAt, &q.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuizNotFound
		}
		return nil, err
	}
	return q, nil
}

func (r *quizRepository) GetByID(ctx context.Context, id int) (*model.Quiz, error) {
	return scanQuiz(r.db.QueryRow(ctx,
		`SELECT `+quizColumns+` FROM quizzes WHERE id = $1`, id))
}

// ListPaginated counts the quizzes matching pattern, then fetches one page of them.
// An empty pattern matches everything.
func (r *quizRepository) ListPaginated(ctx context.Context, pattern string, limit, offset int) ([]model.Quiz, int, error) {
	where := ``
	var args []interface{}
	if pattern != "" {
		where = ` WHERE question ILIKE $1`
		args = append(args, pattern)
	}

	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM quizzes`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count quizzes: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM quizzes%s ORDER BY id LIMIT $%d OFFSET $%d`,
		quizColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()

	var quizzes []model.Quiz
	for rows.Next() {
		var q model.Quiz
		if err := rows.Scan(&q.ID, &q.Question, &q.Answer, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, 0, err
		}
		quizzes = append(quizzes, q)
	}
	return quizzes, total, rows.Err()
}

func (r *quizRepository) Create(ctx context.Context, q *model.Quiz) error {
	if err := validator.Struct(q); err != nil {
		return err
	}
	return r.db.QueryRow(ctx,
		`INSERT INTO quizzes (question, answer)
		 VALUES ($1, $2)
		 RETURNING id, created_at, updated_at`,
		q.Question, q.Answer,
	).Scan(&q.ID, &q.CreatedAt, &q.UpdatedAt)
}

func (r *quizRepository) Update(ctx context.Context, q *model.Quiz) error {
	if err := validator.Struct(q); err != nil {
		return err
	}
	err := r.db.QueryRow(ctx,
		`UPDATE quizzes
		 SET question = $1, answer = $2, updated_at = CURRENT_TIMESTAMP
		 WHERE id = $3
		 RETURNING updated_at`,
		q.Question, q.Answer, q.ID,
	).Scan(&q.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrQuizNotFound
	}
	return err
}

func (r *quizRepository) Delete(ctx context.Context, id int) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM quizzes WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrQuizNotFound
	}
	return nil
}

// CountExcluding counts the quizzes whose id is not in exclude.
func (r *quizRepository) CountExcluding(ctx context.Context, exclude []int) (int, error) {
	var n int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM quizzes WHERE id <> ALL($1::int[])`, excludeArg(exclude),
	).Scan(&n)
	return n, err
}

// GetNthExcluding returns the quiz at offset among those whose id is not in
// exclude, ordered by id.
func (r *quizRepository) GetNthExcluding(ctx context.Context, exclude []int, offset int) (*model.Quiz, error) {
	return scanQuiz(r.db.QueryRow(ctx,
		`SELECT `+quizColumns+` FROM quizzes
		 WHERE id <> ALL($1::int[])
		 ORDER BY id LIMIT 1 OFFSET $2`,
		excludeArg(exclude), offset))
}

// excludeArg keeps the array parameter non-NULL; id <> ALL(NULL) matches nothing.
func excludeArg(ids []int) []int32 {
	out := make([]int32, len(ids))
	for i, id := range ids {
		out[i] = int32(id)
	}
	return out
}
