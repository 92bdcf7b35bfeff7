package service

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/stemsi/quizzes/internal/model"
	"github.com/stemsi/quizzes/internal/repository"
	"github.com/stemsi/quizzes/internal/response"
)

// QuizzesPerPage is the page size of the quiz list.
const QuizzesPerPage = 10

// maxPage keeps the page offset inside an int.
const maxPage = math.MaxInt / QuizzesPerPage

var (
	likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	spaceRun    = regexp.MustCompile(` +`)
)

// SearchPattern turns a search box entry into a LIKE pattern: every run of
// spaces becomes a wildcard, so "capital spain" matches "Capital of Spain".
// An empty search yields an empty pattern, which matches everything.
func SearchPattern(search string) string {
	if search == "" {
		return ""
	}
	return "%" + spaceRun.ReplaceAllString(likeEscaper.Replace(search), "%") + "%"
}

// CheckAnswer compares answers ignoring case and surrounding whitespace.
func CheckAnswer(submitted, expected string) bool {
	return strings.ToLower(strings.TrimSpace(submitted)) == strings.ToLower(strings.TrimSpace(expected))
}

// ParsePage reads a 1-based page number; anything unusable means page 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

type QuizService interface {
	List(ctx context.Context, search string, page int) ([]model.Quiz, *response.Pagination, error)
	Get(ctx context.Context, id int) (*model.Quiz, error)
	Create(ctx context.Context, quiz *model.Quiz) error
	Update(ctx context.Context, quiz *model.Quiz) error
	Delete(ctx context.Context, id int) error
}

type quizService struct {
	quizRepo repository.QuizRepository
}

func NewQuizService(quizRepo repository.QuizRepository) QuizService {
	return &quizService{quizRepo: quizRepo}
}

// List returns one page of quizzes matching search, ordered by id.
// Pages past the end come back empty with the real totals.
func (s *quizService) List(ctx context.Context, search string, page int) ([]model.Quiz, *response.Pagination, error) {
	page = min(max(page, 1), maxPage)
	offset := (page - 1) * QuizzesPerPage

	quizzes, total, err := s.quizRepo.ListPaginated(ctx, SearchPattern(search), QuizzesPerPage, offset)
	if err != nil {
		return nil, nil, err
	}
	if quizzes == nil {
		quizzes = []model.Quiz{}
	}
	return quizzes, response.NewPagination(page, QuizzesPerPage, total), nil
}

func (s *quizService) Get(ctx context.Context, id int) (*model.Quiz, error) {
	return s.quizRepo.GetByID(ctx, id)
}

func (s *quizService) Create(ctx context.Context, quiz *model.Quiz) error {
	return s.quizRepo.Create(ctx, quiz)
}

func (s *quizService) Update(ctx context.Context, quiz *model.Quiz) error {
	return s.quizRepo.Update(ctx, quiz)
}

func (s *quizService) Delete(ctx context.Context, id int) error {
	return s.quizRepo.Delete(ctx, id)
}
