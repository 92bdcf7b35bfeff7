package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/quizzes/internal/model"
	"github.com/stemsi/quizzes/internal/response"
	"github.com/stemsi/quizzes/internal/service"
	"github.com/stemsi/quizzes/internal/session"
)

// PlayHandler serves random play. Progress lives in the PlayStore under the
// visitor's session id.
type PlayHandler struct {
	playService service.PlayService
	plays       *session.PlayStore
}

func NewPlayHandler(playService service.PlayService, plays *session.PlayStore) *PlayHandler {
	return &PlayHandler{playService: playService, plays: plays}
}

// RandomPlay GET /quizzes/randomplay
func (h *PlayHandler) RandomPlay(c *gin.Context) {
	play := h.plays.Open(session.ID(c))

	round, err := h.playService.Next(c.Request.Context(), play)
	if err != nil {
		_ = c.Error(err)
		return
	}

	if round.Exhausted {
		response.Render(c, http.StatusOK, response.View{
			Name: "quizzes/random_nomore",
			Data: gin.H{"score": round.Score},
		})
		return
	}
	response.Render(c, http.StatusOK, response.View{
		Name: "quizzes/random_play",
		Data: gin.H{"quiz": round.Quiz.Prompt(), "score": round.Score},
	})
}

// RandomCheck GET /quizzes/randomcheck/:id
func (h *PlayHandler) RandomCheck(c *gin.Context) {
	var query model.AnswerQuery
	_ = c.ShouldBindQuery(&query)

	play := h.plays.Open(session.ID(c))
	verdict, err := h.playService.Check(c.Request.Context(), play, loadedQuiz(c), query.Answer)
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Render(c, http.StatusOK, response.View{
		Name: "quizzes/random_result",
		Data: gin.H{
			"quiz":   verdict.Quiz,
			"answer": verdict.Answer,
			"result": verdict.Correct,
			"score":  verdict.Score,
		},
	})
}
