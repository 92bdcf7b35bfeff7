package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stemsi/quizzes/internal/model"
	"github.com/stemsi/quizzes/internal/repository"
	"github.com/stemsi/quizzes/internal/response"
	"github.com/stemsi/quizzes/internal/service"
	"github.com/stemsi/quizzes/internal/session"
	"github.com/stemsi/quizzes/internal/validator"
)

// ContextKeyQuiz is where Load leaves the quiz named by :id.
const ContextKeyQuiz = "quiz"

type QuizHandler struct {
	quizService service.QuizService
}

func NewQuizHandler(quizService service.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

func quizPath(id int) string {
	return "/quizzes/" + strconv.Itoa(id)
}

// loadedQuiz returns the quiz stored by Load.
func loadedQuiz(c *gin.Context) *model.Quiz {
	v, _ := c.Get(ContextKeyQuiz)
	q, _ := v.(*model.Quiz)
	return q
}

// Load resolves :id for every route that works on a single quiz. Unknown and
// malformed ids both end the request as not found.
func (h *QuizHandler) Load(c *gin.Context) {
	raw := c.Param("id")
	id, err := strconv.Atoi(raw)
	if err != nil || id < 1 {
		_ = c.Error(fmt.Errorf("quiz id %q: %w", raw, repository.ErrQuizNotFound))
		c.Abort()
		return
	}

	quiz, err := h.quizService.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrQuizNotFound) {
			err = fmt.Errorf("no quiz exists with id=%d: %w", id, err)
		}
		_ = c.Error(err)
		c.Abort()
		return
	}

	c.Set(ContextKeyQuiz, quiz)
	c.Next()
}

// List GET /quizzes
func (h *QuizHandler) List(c *gin.Context) {
	var query model.ListQuizzesQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	quizzes, pagination, err := h.quizService.List(c.Request.Context(), query.Search, service.ParsePage(query.PageNo))
	if err != nil {
		_ = c.Error(err)
		return
	}

	response.Render(c, http.StatusOK, response.View{
		Name:       "quizzes/index",
		Data:       gin.H{"quizzes": quizzes, "search": query.Search},
		Pagination: pagination,
	})
}

// Show GET /quizzes/:id
func (h *QuizHandler) Show(c *gin.Context) {
	response.Render(c, http.StatusOK, response.View{
		Name: "quizzes/show",
		Data: gin.H{"quiz": loadedQuiz(c)},
	})
}

// New GET /quizzes/new
func (h *QuizHandler) New(c *gin.Context) {
	renderForm(c, "quizzes/new", &model.Quiz{}, nil)
}

// Create POST /quizzes
func (h *QuizHandler) Create(c *gin.Context) {
	var form model.QuizForm
	if err := validator.Bind(c, &form); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	quiz := &model.Quiz{Question: form.Question, Answer: form.Answer}
	if err := h.quizService.Create(c.Request.Context(), quiz); err != nil {
		failSave(c, err, "quizzes/new", quiz, "Error creating the new quiz")
		return
	}

	session.AddNotice(c, session.NoticeSuccess, "Quiz created successfully.")
	response.Redirect(c, quizPath(quiz.ID))
}

// Edit GET /quizzes/:id/edit
func (h *QuizHandler) Edit(c *gin.Context) {
	renderForm(c, "quizzes/edit", loadedQuiz(c), nil)
}

// Update PUT /quizzes/:id
func (h *QuizHandler) Update(c *gin.Context) {
	var form model.QuizForm
	if err := validator.Bind(c, &form); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		return
	}

	quiz := loadedQuiz(c)
	quiz.Question = form.Question
	quiz.Answer = form.Answer
	if err := h.quizService.Update(c.Request.Context(), quiz); err != nil {
		failSave(c, err, "quizzes/edit", quiz, "Error editing the quiz")
		return
	}

	session.AddNotice(c, session.NoticeSuccess, "Quiz edited successfully.")
	response.Redirect(c, quizPath(quiz.ID))
}

// Destroy DELETE /quizzes/:id
func (h *QuizHandler) Destroy(c *gin.Context) {
	quiz := loadedQuiz(c)
	if err := h.quizService.Delete(c.Request.Context(), quiz.ID); err != nil {
		session.AddNotice(c, session.NoticeError, "Error deleting the quiz: "+err.Error())
		_ = c.Error(err)
		return
	}

	session.AddNotice(c, session.NoticeSuccess, "Quiz deleted successfully.")
	response.Redirect(c, "/quizzes")
}

// Play GET /quizzes/:id/play
func (h *QuizHandler) Play(c *gin.Context) {
	var query model.AnswerQuery
	_ = c.ShouldBindQuery(&query)

	response.Render(c, http.StatusOK, response.View{
		Name: "quizzes/play",
		Data: gin.H{"quiz": loadedQuiz(c).Prompt(), "answer": query.Answer},
	})
}

// Check GET /quizzes/:id/check
func (h *QuizHandler) Check(c *gin.Context) {
	var query model.AnswerQuery
	_ = c.ShouldBindQuery(&query)

	quiz := loadedQuiz(c)
	response.Render(c, http.StatusOK, response.View{
		Name: "quizzes/result",
		Data: gin.H{
			"quiz":   quiz,
			"answer": query.Answer,
			"result": service.CheckAnswer(query.Answer, quiz.Answer),
		},
	})
}

func renderForm(c *gin.Context, view string, quiz *model.Quiz, fieldErrors map[string]string) {
	response.Render(c, http.StatusOK, response.View{
		Name: view,
		Data: gin.H{"quiz": quiz, "errors": fieldErrors},
	})
}

// failSave re-renders the form when the quiz was rejected, and hands any other
// failure to the error responder with a notice for the next page.
func failSave(c *gin.Context, err error, view string, quiz *model.Quiz, action string) {
	var ve *validator.ValidationError
	if errors.As(err, &ve) {
		session.AddNotice(c, session.NoticeError, "There are errors in the form:")
		for _, fe := range ve.Fields {
			session.AddNotice(c, session.NoticeError, fe.Notice())
		}
		renderForm(c, view, quiz, ve.FieldMap())
		return
	}

	session.AddNotice(c, session.NoticeError, action+": "+err.Error())
	_ = c.Error(err)
}
