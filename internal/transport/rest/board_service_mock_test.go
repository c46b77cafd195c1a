package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/querycloud/internal/domain"
	"github.com/heartmarshall/querycloud/internal/service/board"
)

var _ boardService = &boardServiceMock{}

type boardServiceMock struct {
	ListQuestionsFunc  func(ctx context.Context) ([]domain.Question, error)
	GetQuestionFunc    func(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	CreateQuestionFunc func(ctx context.Context, input board.CreateQuestionInput) (*domain.Question, error)
	ListAnswersFunc    func(ctx context.Context, questionID uuid.UUID) ([]domain.Answer, error)
	CreateAnswerFunc   func(ctx context.Context, input board.CreateAnswerInput) (*domain.Answer, error)

	calls struct {
		ListQuestions []struct {
			Ctx context.Context
		}
		GetQuestion []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		CreateQuestion []struct {
			Ctx   context.Context
			Input board.CreateQuestionInput
		}
		ListAnswers []struct {
			Ctx        context.Context
			QuestionID uuid.UUID
		}
		CreateAnswer []struct {
			Ctx   context.Context
			Input board.CreateAnswerInput
		}
	}
	lockListQuestions  sync.RWMutex
	lockGetQuestion    sync.RWMutex
	lockCreateQuestion sync.RWMutex
	lockListAnswers    sync.RWMutex
	lockCreateAnswer   sync.RWMutex
}

func (mock *boardServiceMock) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	if mock.ListQuestionsFunc == nil {
		panic("boardServiceMock.ListQuestionsFunc: method is nil but boardService.ListQuestions was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListQuestions.Lock()
	mock.calls.ListQuestions = append(mock.calls.ListQuestions, callInfo)
	mock.lockListQuestions.Unlock()
	return mock.ListQuestionsFunc(ctx)
}

func (mock *boardServiceMock) ListQuestionsCalls() []struct {
	Ctx context.Context
} {
	mock.lockListQuestions.RLock()
	calls := mock.calls.ListQuestions
	mock.lockListQuestions.RUnlock()
	return calls
}

func (mock *boardServiceMock) GetQuestion(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	if mock.GetQuestionFunc == nil {
		panic("boardServiceMock.GetQuestionFunc: method is nil but boardService.GetQuestion was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetQuestion.Lock()
	mock.calls.GetQuestion = append(mock.calls.GetQuestion, callInfo)
	mock.lockGetQuestion.Unlock()
	return mock.GetQuestionFunc(ctx, id)
}

func (mock *boardServiceMock) GetQuestionCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetQuestion.RLock()
	calls := mock.calls.GetQuestion
	mock.lockGetQuestion.RUnlock()
	return calls
}

func (mock *boardServiceMock) CreateQuestion(ctx context.Context, input board.CreateQuestionInput) (*domain.Question, error) {
	if mock.CreateQuestionFunc == nil {
		panic("boardServiceMock.CreateQuestionFunc: method is nil but boardService.CreateQuestion was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input board.CreateQuestionInput
	}{Ctx: ctx, Input: input}
	mock.lockCreateQuestion.Lock()
	mock.calls.CreateQuestion = append(mock.calls.CreateQuestion, callInfo)
	mock.lockCreateQuestion.Unlock()
	return mock.CreateQuestionFunc(ctx, input)
}

func (mock *boardServiceMock) CreateQuestionCalls() []struct {
	Ctx   context.Context
	Input board.CreateQuestionInput
} {
	mock.lockCreateQuestion.RLock()
	calls := mock.calls.CreateQuestion
	mock.lockCreateQuestion.RUnlock()
	return calls
}

func (mock *boardServiceMock) ListAnswers(ctx context.Context, questionID uuid.UUID) ([]domain.Answer, error) {
	if mock.ListAnswersFunc == nil {
		panic("boardServiceMock.ListAnswersFunc: method is nil but boardService.ListAnswers was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		QuestionID uuid.UUID
	}{Ctx: ctx, QuestionID: questionID}
	mock.lockListAnswers.Lock()
	mock.calls.ListAnswers = append(mock.calls.ListAnswers, callInfo)
	mock.lockListAnswers.Unlock()
	return mock.ListAnswersFunc(ctx, questionID)
}

func (mock *boardServiceMock) ListAnswersCalls() []struct {
	Ctx        context.Context
	QuestionID uuid.UUID
} {
	mock.lockListAnswers.RLock()
	calls := mock.calls.ListAnswers
	mock.lockListAnswers.RUnlock()
	return calls
}

func (mock *boardServiceMock) CreateAnswer(ctx context.Context, input board.CreateAnswerInput) (*domain.Answer, error) {
	if mock.CreateAnswerFunc == nil {
		panic("boardServiceMock.CreateAnswerFunc: method is nil but boardService.CreateAnswer was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input board.CreateAnswerInput
	}{Ctx: ctx, Input: input}
	mock.lockCreateAnswer.Lock()
	mock.calls.CreateAnswer = append(mock.calls.CreateAnswer, callInfo)
	mock.lockCreateAnswer.Unlock()
	return mock.CreateAnswerFunc(ctx, input)
}

func (mock *boardServiceMock) CreateAnswerCalls() []struct {
	Ctx   context.Context
	Input board.CreateAnswerInput
} {
	mock.lockCreateAnswer.RLock()
	calls := mock.calls.CreateAnswer
	mock.lockCreateAnswer.RUnlock()
	return calls
}
