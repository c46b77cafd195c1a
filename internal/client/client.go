// Package client implements tui.Backend over the Query Cloud HTTP API and
// its WebSocket change feed.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/heartmarshall/querycloud/internal/config"
	"github.com/heartmarshall/querycloud/internal/domain"
)

// Client talks to a Query Cloud server.
type Client struct {
	baseURL        *url.URL
	http           *http.Client
	dialer         *websocket.Dialer
	reconnectDelay time.Duration
	log            *slog.Logger
}

// New creates a Client for cfg.APIURL.
func New(cfg config.ClientConfig, logger *slog.Logger) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(cfg.APIURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse api url: %w", err)
	}

	return &Client{
		baseURL: u,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		dialer: &websocket.Dialer{
			Proxy:            http.ProxyFromEnvironment,
			HandshakeTimeout: cfg.RequestTimeout,
		},
		reconnectDelay: cfg.ReconnectDelay,
		log:            logger.With("component", "client"),
	}, nil
}

type questionDTO struct {
	ID          uuid.UUID `json:"id"`
	Content     string    `json:"content"`
	CreatedAt   time.Time `json:"createdAt"`
	AnswerCount int       `json:"answerCount"`
}

type answerDTO struct {
	ID         uuid.UUID `json:"id"`
	QuestionID uuid.UUID `json:"questionId"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"createdAt"`
}

type errorDTO struct {
	Error  string `json:"error"`
	Fields []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"fields"`
}

// ListQuestions fetches every question, newest first.
func (c *Client) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	var dtos []questionDTO
	if err := c.do(ctx, http.MethodGet, "/api/questions", nil, &dtos); err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}

	out := make([]domain.Question, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// ListAnswers fetches the answers of one question, newest first.
func (c *Client) ListAnswers(ctx context.Context, questionID uuid.UUID) ([]domain.Answer, error) {
	var dtos []answerDTO
	if err := c.do(ctx, http.MethodGet, answersPath(questionID), nil, &dtos); err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}

	out := make([]domain.Answer, 0, len(dtos))
	for _, d := range dtos {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// GetQuestion fetches one question.
func (c *Client) GetQuestion(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	var dto questionDTO
	if err := c.do(ctx, http.MethodGet, "/api/questions/"+id.String(), nil, &dto); err != nil {
		return nil, fmt.Errorf("get question: %w", err)
	}
	q := dto.toDomain()
	return &q, nil
}

// CreateQuestion posts a question.
func (c *Client) CreateQuestion(ctx context.Context, content string) (*domain.Question, error) {
	var dto questionDTO
	if err := c.do(ctx, http.MethodPost, "/api/questions", map[string]string{"content": content}, &dto); err != nil {
		return nil, fmt.Errorf("create question: %w", err)
	}
	q := dto.toDomain()
	return &q, nil
}

// CreateAnswer posts an answer under questionID.
func (c *Client) CreateAnswer(ctx context.Context, questionID uuid.UUID, content string) (*domain.Answer, error) {
	var dto answerDTO
	if err := c.do(ctx, http.MethodPost, answersPath(questionID), map[string]string{"content": content}, &dto); err != nil {
		return nil, fmt.Errorf("create answer: %w", err)
	}
	a := dto.toDomain()
	return &a, nil
}

func answersPath(questionID uuid.UUID) string {
	return "/api/questions/" + questionID.String() + "/answers"
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.String() + path
}

// do performs a JSON request and decodes a 2xx body into out.
func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		buf, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// statusError converts a non-2xx response into a domain error where one fits.
func statusError(resp *http.Response) error {
	var e errorDTO
	_ = json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&e)

	switch resp.StatusCode {
	case http.StatusBadRequest:
		if len(e.Fields) > 0 {
			fields := make([]domain.FieldError, 0, len(e.Fields))
			for _, f := range e.Fields {
				fields = append(fields, domain.FieldError{Field: f.Field, Message: f.Message})
			}
			return domain.NewValidationErrors(fields)
		}
		return fmt.Errorf("%s: %w", e.Error, domain.ErrValidation)
	case http.StatusNotFound:
		return domain.ErrNotFound
	case http.StatusConflict:
		return domain.ErrAlreadyExists
	}

	if e.Error != "" {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, e.Error)
	}
	return errors.New("server returned " + resp.Status)
}

func (d questionDTO) toDomain() domain.Question {
	return domain.Question{
		ID:          d.ID,
		Content:     d.Content,
		CreatedAt:   d.CreatedAt,
		AnswerCount: d.AnswerCount,
	}
}

func (d answerDTO) toDomain() domain.Answer {
	return domain.Answer{
		ID:         d.ID,
		QuestionID: d.QuestionID,
		Content:    d.Content,
		CreatedAt:  d.CreatedAt,
	}
}
