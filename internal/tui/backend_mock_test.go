package tui

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/querycloud/internal/domain"
)

var _ Backend = &BackendMock{}

type BackendMock struct {
	ListQuestionsFunc      func(ctx context.Context) ([]domain.Question, error)
	ListAnswersFunc        func(ctx context.Context, questionID uuid.UUID) ([]domain.Answer, error)
	CreateQuestionFunc     func(ctx context.Context, content string) (*domain.Question, error)
	CreateAnswerFunc       func(ctx context.Context, questionID uuid.UUID, content string) (*domain.Answer, error)
	SubscribeToChangesFunc func(ctx context.Context, collection domain.Collection) (Subscription, error)

	calls struct {
		ListQuestions []struct {
			Ctx context.Context
		}
		ListAnswers []struct {
			Ctx        context.Context
			QuestionID uuid.UUID
		}
		CreateQuestion []struct {
			Ctx     context.Context
			Content string
		}
		CreateAnswer []struct {
			Ctx        context.Context
			QuestionID uuid.UUID
			Content    string
		}
		SubscribeToChanges []struct {
			Ctx        context.Context
			Collection domain.Collection
		}
	}
	lockListQuestions      sync.RWMutex
	lockListAnswers        sync.RWMutex
	lockCreateQuestion     sync.RWMutex
	lockCreateAnswer       sync.RWMutex
	lockSubscribeToChanges sync.RWMutex
}

func (mock *BackendMock) ListQuestions(ctx context.Context) ([]domain.Question, error) {
	if mock.ListQuestionsFunc == nil {
		panic("BackendMock.ListQuestionsFunc: method is nil but Backend.ListQuestions was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockListQuestions.Lock()
	mock.calls.ListQuestions = append(mock.calls.ListQuestions, callInfo)
	mock.lockListQuestions.Unlock()
	return mock.ListQuestionsFunc(ctx)
}

func (mock *BackendMock) ListQuestionsCalls() []struct {
	Ctx context.Context
} {
	mock.lockListQuestions.RLock()
	calls := mock.calls.ListQuestions
	mock.lockListQuestions.RUnlock()
	return calls
}

func (mock *BackendMock) ListAnswers(ctx context.Context, questionID uuid.UUID) ([]domain.Answer, error) {
	if mock.ListAnswersFunc == nil {
		panic("BackendMock.ListAnswersFunc: method is nil but Backend.ListAnswers was just called")
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

func (mock *BackendMock) ListAnswersCalls() []struct {
	Ctx        context.Context
	QuestionID uuid.UUID
} {
	mock.lockListAnswers.RLock()
	calls := mock.calls.ListAnswers
	mock.lockListAnswers.RUnlock()
	return calls
}

func (mock *BackendMock) CreateQuestion(ctx context.Context, content string) (*domain.Question, error) {
	if mock.CreateQuestionFunc == nil {
		panic("BackendMock.CreateQuestionFunc: method is nil but Backend.CreateQuestion was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Content string
	}{Ctx: ctx, Content: content}
	mock.lockCreateQuestion.Lock()
	mock.calls.CreateQuestion = append(mock.calls.CreateQuestion, callInfo)
	mock.lockCreateQuestion.Unlock()
	return mock.CreateQuestionFunc(ctx, content)
}

func (mock *BackendMock) CreateQuestionCalls() []struct {
	Ctx     context.Context
	Content string
} {
	mock.lockCreateQuestion.RLock()
	calls := mock.calls.CreateQuestion
	mock.lockCreateQuestion.RUnlock()
	return calls
}

func (mock *BackendMock) CreateAnswer(ctx context.Context, questionID uuid.UUID, content string) (*domain.Answer, error) {
	if mock.CreateAnswerFunc == nil {
		panic("BackendMock.CreateAnswerFunc: method is nil but Backend.CreateAnswer was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		QuestionID uuid.UUID
		Content    string
	}{Ctx: ctx, QuestionID: questionID, Content: content}
	mock.lockCreateAnswer.Lock()
	mock.calls.CreateAnswer = append(mock.calls.CreateAnswer, callInfo)
	mock.lockCreateAnswer.Unlock()
	return mock.CreateAnswerFunc(ctx, questionID, content)
}

func (mock *BackendMock) CreateAnswerCalls() []struct {
	Ctx        context.Context
	QuestionID uuid.UUID
	Content    string
} {
	mock.lockCreateAnswer.RLock()
	calls := mock.calls.CreateAnswer
	mock.lockCreateAnswer.RUnlock()
	return calls
}

func (mock *BackendMock) SubscribeToChanges(ctx context.Context, collection domain.Collection) (Subscription, error) {
	if mock.SubscribeToChangesFunc == nil {
		panic("BackendMock.SubscribeToChangesFunc: method is nil but Backend.SubscribeToChanges was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		Collection domain.Collection
	}{Ctx: ctx, Collection: collection}
	mock.lockSubscribeToChanges.Lock()
	mock.calls.SubscribeToChanges = append(mock.calls.SubscribeToChanges, callInfo)
	mock.lockSubscribeToChanges.Unlock()
	return mock.SubscribeToChangesFunc(ctx, collection)
}

func (mock *BackendMock) SubscribeToChangesCalls() []struct {
	Ctx        context.Context
	Collection domain.Collection
} {
	mock.lockSubscribeToChanges.RLock()
	calls := mock.calls.SubscribeToChanges
	mock.lockSubscribeToChanges.RUnlock()
	return calls
}
