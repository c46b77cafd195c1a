package board

import (
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/heartmarshall/querycloud/internal/domain"
)

// CreateQuestionInput holds the parameters for posting a question.
type CreateQuestionInput struct {
	Content string
}

// Validate checks the normalized content against maxLen (in characters).
func (i CreateQuestionInput) Validate(maxLen int) error {
	if fe := validateContent(i.Content, maxLen); fe != nil {
		return domain.NewValidationErrors([]domain.FieldError{*fe})
	}
	return nil
}

// CreateAnswerInput holds the parameters for posting an answer.
type CreateAnswerInput struct {
	QuestionID uuid.UUID
	Content    string
}

// Validate checks all fields and collects all errors.
func (i CreateAnswerInput) Validate(maxLen int) error {
	var errs []domain.FieldError

	if i.QuestionID == uuid.Nil {
		errs = append(errs, domain.FieldError{Field: "question_id", Message: "required"})
	}
	if fe := validateContent(i.Content, maxLen); fe != nil {
		errs = append(errs, *fe)
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateContent(content string, maxLen int) *domain.FieldError {
	content = domain.NormalizeContent(content)
	if content == "" {
		return &domain.FieldError{Field: "content", Message: "required"}
	}
	if utf8.RuneCountInString(content) > maxLen {
		return &domain.FieldError{Field: "content", Message: fmt.Sprintf("max %d characters", maxLen)}
	}
	return nil
}
