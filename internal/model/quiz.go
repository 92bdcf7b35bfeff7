package model

import "time"

// Quiz is a question/answer pair.
type Quiz struct {
	ID        int       `json:"id"`
	Question  string    `json:"question" validate:"notblank,max=2000"`
	Answer    string    `json:"answer" validate:"notblank,max=2000"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// QuizPrompt is what a player sees before answering. It leaves out the answer.
type QuizPrompt struct {
	ID       int    `json:"id"`
	Question string `json:"question"`
}

// Prompt returns the answer-free view of q.
func (q *Quiz) Prompt() QuizPrompt {
	return QuizPrompt{ID: q.ID, Question: q.Question}
}

// QuizForm is the payload of the create and edit forms. It carries no
// binding rules: the store validates the resulting Quiz so that rejected
// values can be echoed back into the form.
type QuizForm struct {
	Question string `form:"question" json:"question"`
	Answer   string `form:"answer" json:"answer"`
}

// ListQuizzesQuery is the query string of GET /quizzes.
type ListQuizzesQuery struct {
	Search string `form:"search"`
	PageNo string `form:"pageno"`
}

// AnswerQuery carries the submitted answer on the play/check routes.
type AnswerQuery struct {
	Answer string `form:"answer"`
}
