package board

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/querycloud/internal/domain"
)

var _ questionRepo = &questionRepoMock{}

type questionRepoMock struct {
	ListFunc    func(ctx context.Context) ([]domain.Question, error)
	GetByIDFunc func(ctx context.Context, id uuid.UUID) (*domain.Question, error)
	CreateFunc  func(ctx context.Context, content string) (*domain.Question, error)

	calls struct {
		List []struct {
			Ctx context.Context
		}
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Create []struct {
			Ctx     context.Context
			Content string
		}
	}
	lockList    sync.RWMutex
	lockGetByID sync.RWMutex
	lockCreate  sync.RWMutex
}

func (mock *questionRepoMock) List(ctx context.Context) ([]domain.Question, error) {
	if mock.ListFunc == nil {
		panic("questionRepoMock.ListFunc: method is nil but questionRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
	}{Ctx: ctx}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx)
}

func (mock *questionRepoMock) ListCalls() []struct {
	Ctx context.Context
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *questionRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.Question, error) {
	if mock.GetByIDFunc == nil {
		panic("questionRepoMock.GetByIDFunc: method is nil but questionRepo.GetByID was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetByID.Lock()
	mock.calls.GetByID = append(mock.calls.GetByID, callInfo)
	mock.lockGetByID.Unlock()
	return mock.GetByIDFunc(ctx, id)
}

func (mock *questionRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *questionRepoMock) Create(ctx context.Context, content string) (*domain.Question, error) {
	if mock.CreateFunc == nil {
		panic("questionRepoMock.CreateFunc: method is nil but questionRepo.Create was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Content string
	}{Ctx: ctx, Content: content}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, content)
}

func (mock *questionRepoMock) CreateCalls() []struct {
	Ctx     context.Context
	Content string
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
