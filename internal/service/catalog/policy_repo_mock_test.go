package catalog

import (
	"context"
	"sync"

	"github.com/mossfell/giftdist-backend/internal/domain"
)

var _ policyRepo = &policyRepoMock{}

type policyRepoMock struct {
	GetFunc    func(ctx context.Context, gameID string) (*domain.GamePolicy, error)
	UpsertFunc func(ctx context.Context, p *domain.GamePolicy) (*domain.GamePolicy, error)

	calls struct {
		Get []struct {
			Ctx    context.Context
			GameID string
		}
		Upsert []struct {
			Ctx context.Context
			P   *domain.GamePolicy
		}
	}
	lockGet    sync.RWMutex
	lockUpsert sync.RWMutex
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

func (mock *policyRepoMock) Upsert(ctx context.Context, p *domain.GamePolicy) (*domain.GamePolicy, error) {
	if mock.UpsertFunc == nil {
		panic("policyRepoMock.UpsertFunc: method is nil but policyRepo.Upsert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   *domain.GamePolicy
	}{Ctx: ctx, P: p}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, p)
}

func (mock *policyRepoMock) UpsertCalls() []struct {
	Ctx context.Context
	P   *domain.GamePolicy
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}
