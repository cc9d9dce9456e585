package distribution

import (
	"context"
	"sync"

	"github.com/mossfell/giftdist-backend/internal/domain"
)

var _ policyRepo = &policyRepoMock{}

type policyRepoMock struct {
	GetFunc func(ctx context.Context, gameID string) (*domain.GamePolicy, error)

	calls struct {
		Get []struct {
			Ctx    context.Context
			GameID string
		}
	}
	lockGet sync.RWMutex
}

func (mock *policyRepoMock) Get(ctx context.Context, gameID string) (*domain.GamePolicy, error) {
	if mock.GetFunc == nil {
		panic("policyRepoMock.GetFunc: method is nil but policyRepo.Get was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		GameID string
	}{Ctx: ctx, GameID: gameID}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, gameID)
}

func (mock *policyRepoMock) GetCalls() []struct {
	Ctx    context.Context
	GameID string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}
