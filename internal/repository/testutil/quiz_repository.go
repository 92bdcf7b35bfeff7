// Package testutil provides an in-memory QuizRepository with the same
// search, ordering and validation semantics as the Postgres store.
package testutil

import (
	"context"
	"regexp"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stemsi/quizzes/internal/model"
	"github.com/stemsi/quizzes/internal/repository"
	"github.com/stemsi/quizzes/internal/validator"
)

// QuizRepository keeps quizzes in a map. Set Err to make every call fail.
type QuizRepository struct {
	mu      sync.Mutex
	quizzes map[int]model.Quiz
	nextID  int
	Err     error
}

var _ repository.QuizRepository = (*QuizRepository)(nil)

// NewQuizRepository returns an empty store.
func NewQuizRepository() *QuizRepository {
	return &QuizRepository{quizzes: make(map[int]model.Quiz), nextID: 1}
}

// SeedQuiz inserts a quiz directly, bypassing validation.
func SeedQuiz(tb testing.TB, r *QuizRepository, question, answer string) model.Quiz {
	tb.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	q := model.Quiz{ID: r.nextID, Question: question, Answer: answer, CreatedAt: now, UpdatedAt: now}
	r.quizzes[q.ID] = q
	r.nextID++
	return q
}

// Len reports the number of stored quizzes.
func (r *QuizRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.quizzes)
}

func (r *QuizRepository) GetByID(_ context.Context, id int) (*model.Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	q, ok := r.quizzes[id]
	if !ok {
		return nil, repository.ErrQuizNotFound
	}
	return &q, nil
}

func (r *QuizRepository) ListPaginated(_ context.Context, pattern string, limit, offset int) ([]model.Quiz, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, 0, r.Err
	}

	var re *regexp.Regexp
	if pattern != "" {
		re = LikeToRegexp(pattern)
	}

	var matched []model.Quiz
	for _, q := range r.sorted() {
		if re == nil || re.MatchString(q.Question) {
			matched = append(matched, q)
		}
	}
	return window(matched, limit, offset), len(matched), nil
}

func (r *QuizRepository) Create(_ context.Context, q *model.Quiz) error {
	if err := validator.Struct(q); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	now := time.Now().UTC()
	q.ID, q.CreatedAt, q.UpdatedAt = r.nextID, now, now
	r.nextID++
	r.quizzes[q.ID] = model.Quiz{ID: q.ID, Question: q.Question, Answer: q.Answer, CreatedAt: now, UpdatedAt: now}
	return nil
}

func (r *QuizRepository) Update(_ context.Context, q *model.Quiz) error {
	if err := validator.Struct(q); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	stored, ok := r.quizzes[q.ID]
	if !ok {
		return repository.ErrQuizNotFound
	}
	stored.Question, stored.Answer, stored.UpdatedAt = q.Question, q.Answer, time.Now().UTC()
	r.quizzes[q.ID] = stored
	q.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *QuizRepository) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	if _, ok := r.quizzes[id]; !ok {
		return repository.ErrQuizNotFound
	}
	delete(r.quizzes, id)
	return nil
}

func (r *QuizRepository) CountExcluding(_ context.Context, exclude []int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return 0, r.Err
	}
	return len(r.remaining(exclude)), nil
}

func (r *QuizRepository) GetNthExcluding(_ context.Context, exclude []int, offset int) (*model.Quiz, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return nil, r.Err
	}
	rest := window(r.remaining(exclude), 1, offset)
	if len(rest) == 0 {
		return nil, repository.ErrQuizNotFound
	}
	return &rest[0], nil
}

func (r *QuizRepository) remaining(exclude []int) []model.Quiz {
	skip := make(map[int]bool, len(exclude))
	for _, id := range exclude {
		skip[id] = true
	}
	var out []model.Quiz
	for _, q := range r.sorted() {
		if !skip[q.ID] {
			out = append(out, q)
		}
	}
	return out
}

func (r *QuizRepository) sorted() []model.Quiz {
	out := make([]model.Quiz, 0, len(r.quizzes))
	for _, q := range r.quizzes {
		out = append(out, q)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func window(qs []model.Quiz, limit, offset int) []model.Quiz {
	if offset < 0 || offset >= len(qs) {
		return []model.Quiz{}
	}
	end := offset + limit
	if end > len(qs) {
		end = len(qs)
	}
	return qs[offset:end]
}

// LikeToRegexp compiles a case-insensitive SQL LIKE pattern (backslash escapes).
func LikeToRegexp(pattern string) *regexp.Regexp {
	var b strings.Builder
	b.WriteString(`(?is)^`)
	escaped := false
	for _, ch := range pattern {
		switch {
		case escaped:
			b.WriteString(regexp.QuoteMeta(string(ch)))
			escaped = false
		case ch == '\\':
			escaped = true
		case ch == '%':
			b.WriteString(`.*`)
		case ch == '_':
			b.WriteString(`.`)
		default:
			b.WriteString(regexp.QuoteMeta(string(ch)))
		}
	}
	b.WriteString(`$`)
	return regexp.MustCompile(b.String())
}
