package board

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/querycloud/internal/domain"
)

var _ answerRepo = &answerRepoMock{}

type answerRepoMock struct {
	ListByQuestionFunc func(ctx context.Context, questionID uuid.UUID) ([]domain.Answer, error)
	CreateFunc         func(ctx context.Context, questionID uuid.UUID, content string) (*domain.Answer, error)

	calls struct {
		ListByQuestion []struct {
			Ctx        context.Context
			QuestionID uuid.UUID
		}
		Create []struct {
			Ctx        context.Context
			QuestionID uuid.UUID
			Content    string
		}
	}
	lockListByQuestion sync.RWMutex
	lockCreate         sync.RWMutex
}

func (mock *answerRepoMock) ListByQuestion(ctx context.Context, questionID uuid.UUID) ([]domain.Answer, error) {
	if mock.ListByQuestionFunc == nil {
		panic("answerRepoMock.ListByQuestionFunc: method is nil but answerRepo.ListByQuestion was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		QuestionID uuid.UUID
	}{Ctx: ctx, QuestionID: questionID}
	mock.lockListByQuestion.Lock()
	mock.calls.ListByQuestion = append(mock.calls.ListByQuestion, callInfo)
	mock.lockListByQuestion.Unlock()
	return mock.ListByQuestionFunc(ctx, questionID)
}

func (mock *answerRepoMock) ListByQuestionCalls() []struct {
	Ctx        context.Context
	QuestionID uuid.UUID
} {
	mock.lockListByQuestion.RLock()
	calls := mock.calls.ListByQuestion
	mock.lockListByQuestion.RUnlock()
	return calls
}

func (mock *answerRepoMock) Create(ctx context.Context, questionID uuid.UUID, content string) (*domain.Answer, error) {
	if mock.CreateFunc == nil {
		panic("answerRepoMock.CreateFunc: method is nil but answerRepo.Create was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		QuestionID uuid.UUID
		Content    string
	}{Ctx: ctx, QuestionID: questionID, Content: content}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, questionID, content)
}

func (mock *answerRepoMock) CreateCalls() []struct {
	Ctx        context.Context
	QuestionID uuid.UUID
	Content    string
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
