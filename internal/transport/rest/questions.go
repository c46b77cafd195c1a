package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/querycloud/internal/domain"
	"github.com/heartmarshall/querycloud/internal/service/board"
)

// boardService defines the minimal interface needed by QuestionHandler.
type boardService interface {
	ListQuestions(ctx context.Context) ([]domain.Question, error)
	GetQuestion(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	CreateQuestion(ctx context.Context, input board.CreateQuestionInput) (*domain.Question, error)
	ListAnswers(ctx context.Context, questionID uuid.UUID) ([]domain.Answer, error)
	CreateAnswer(ctx context.Context, input board.CreateAnswerInput) (*domain.Answer, error)
}

// QuestionHandler serves the question and answer REST endpoints.
type QuestionHandler struct {
	svc boardService
	log *slog.Logger
}

// NewQuestionHandler creates a QuestionHandler.
func NewQuestionHandler(svc boardService, logger *slog.Logger) *QuestionHandler {
	return &QuestionHandler{svc: svc, log: logger.With("handler", "questions")}
}

type contentRequest struct {
	Content string `json:"content"`
}

// QuestionResponse is the wire form of a question.
type QuestionResponse struct {
	ID          uuid.UUID `json:"id"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
	AnswerCount int       `json:"answerCount"`
}

// AnswerResponse is the wire form of an answer.
type AnswerResponse struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"questionId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

// List handles GET /api/questions.
func (h *QuestionHandler) List(w http.ResponseWriter, r *http.Request) {
	questions, err := h.svc.ListQuestions(r.Context())
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]QuestionResponse, 0, len(questions))
	for _, q := range questions {
		resp = append(resp, toQuestionResponse(q))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Get handles GET /api/questions/{id}.
func (h *QuestionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseQuestionID(w, r)
	if !ok {
		return
	}

	q, err := h.svc.GetQuestion(r.Context(), id)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusOK, toQuestionResponse(*q))
}

// Create handles POST /api/questions.
func (h *QuestionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req contentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	q, err := h.svc.CreateQuestion(r.Context(), board.CreateQuestionInput{Content: req.Content})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toQuestionResponse(*q))
}

// ListAnswers handles GET /api/questions/{id}/answers.
func (h *QuestionHandler) ListAnswers(w http.ResponseWriter, r *http.Request) {
	questionID, ok := parseQuestionID(w, r)
	if !ok {
		return
	}

	answers, err := h.svc.ListAnswers(r.Context(), questionID)
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	resp := make([]AnswerResponse, 0, len(answers))
	for _, a := range answers {
		resp = append(resp, toAnswerResponse(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

// CreateAnswer handles POST /api/questions/{id}/answers.
func (h *QuestionHandler) CreateAnswer(w http.ResponseWriter, r *http.Request) {
	questionID, ok := parseQuestionID(w, r)
	if !ok {
		return
	}

	var req contentRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	a, err := h.svc.CreateAnswer(r.Context(), board.CreateAnswerInput{
		QuestionID: questionID,
		Content:    req.Content,
	})
	if err != nil {
		handleError(w, r, h.log, err)
		return
	}

	writeJSON(w, http.StatusCreated, toAnswerResponse(*a))
}

func parseQuestionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid question id")
		return uuid.Nil, false
	}
	return id, true
}

func toQuestionResponse(q domain.Question) QuestionResponse {
	return QuestionResponse{
		ID:          q.ID,
		Content:     q.Content,
		CreatedAt:   q.CreatedAt,
		AnswerCount: q.AnswerCount,
	}
}

func toAnswerResponse(a domain.Answer) AnswerResponse {
	return AnswerResponse{
		ID:         a.ID,
		QuestionID: a.QuestionID,
		Content:    a.Content,
		CreatedAt:  a.CreatedAt,
	}
}
