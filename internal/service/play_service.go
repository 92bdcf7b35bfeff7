package service

import (
	"context"
	"errors"
	"math"
	"math/rand"

	"github.com/rs/zerolog"
	"github.com/stemsi/quizzes/internal/logger"
	"github.com/stemsi/quizzes/internal/model"
	"github.com/stemsi/quizzes/internal/repository"
	"github.com/stemsi/quizzes/internal/session"
)

// Round is what the random player sees next: a quiz, or the end of the run.
type Round struct {
	Quiz      *model.Quiz
	Score     int
	Exhausted bool
}

// Verdict is the outcome of one answered quiz.
type Verdict struct {
	Quiz    *model.Quiz
	Answer  string
	Correct bool
	Score   int
}

type PlayService interface {
	Next(ctx context.Context, play *session.PlaySession) (*Round, error)
	Check(ctx context.Context, play *session.PlaySession, quiz *model.Quiz, answer string) (*Verdict, error)
}

type playService struct {
	quizRepo repository.QuizRepository
	random   func() float64
	log      zerolog.Logger
}

// NewPlayService creates a PlayService. random must return values in [0, 1);
// nil means math/rand.
func NewPlayService(quizRepo repository.QuizRepository, random func() float64, log zerolog.Logger) PlayService {
	if random == nil {
		random = rand.Float64
	}
	return &playService{
		quizRepo: quizRepo,
		random:   random,
		log:      logger.Component(log, "play"),
	}
}

// Next picks a uniformly random quiz the session has not answered yet. When
// none is left the run is finished and its final score reported.
func (s *playService) Next(ctx context.Context, play *session.PlaySession) (*Round, error) {
	answered, err := play.Answered(ctx)
	if err != nil {
		return nil, err
	}

	remaining, err := s.quizRepo.CountExcluding(ctx, answered)
	if err != nil {
		return nil, err
	}
	if remaining == 0 {
		return s.finish(ctx, play)
	}

	quiz, err := s.quizRepo.GetNthExcluding(ctx, answered, pickOffset(s.random(), remaining))
	if errors.Is(err, repository.ErrQuizNotFound) {
		// The table shrank between the count and the fetch.
		return s.finish(ctx, play)
	}
	if err != nil {
		return nil, err
	}
	return &Round{Quiz: quiz, Score: len(answered)}, nil
}

func (s *playService) finish(ctx context.Context, play *session.PlaySession) (*Round, error) {
	score, err := play.Finish(ctx)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("session", play.ID).Int("score", score).Msg("Random play finished")
	return &Round{Score: score, Exhausted: true}, nil
}

// Check grades answer against quiz. A correct answer adds the quiz to the run;
// a wrong one starts the run over.
func (s *playService) Check(ctx context.Context, play *session.PlaySession, quiz *model.Quiz, answer string) (*Verdict, error) {
	v := &Verdict{Quiz: quiz, Answer: answer, Correct: CheckAnswer(answer, quiz.Answer)}
	if !v.Correct {
		if err := play.Reset(ctx); err != nil {
			return nil, err
		}
		return v, nil
	}

	score, err := play.MarkAnswered(ctx, quiz.ID)
	if err != nil {
		return nil, err
	}
	v.Score = score
	return v, nil
}

func pickOffset(r float64, n int) int {
	off := int(math.Floor(r * float64(n)))
	if off >= n {
		off = n - 1
	}
	if off < 0 {
		off = 0
	}
	return off
}
