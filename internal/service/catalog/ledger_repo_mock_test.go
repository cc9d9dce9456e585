package catalog

import (
	"context"
	"sync"

	"github.com/mossfell/giftdist-backend/internal/domain"
)

var _ ledgerRepo = &ledgerRepoMock{}

type ledgerRepoMock struct {
	StatsFunc    func(ctx context.Context, gameID string) (domain.LedgerStats, error)
	TopItemsFunc func(ctx context.Context, gameID string, limit int) ([]domain.ItemGrantCount, error)

	calls struct {
		Stats []struct {
			Ctx    context.Context
			GameID string
		}
		TopItems []struct {
			Ctx    context.Context
			GameID string
			Limit  int
		}
	}
	lockStats    sync.RWMutex
	lockTopItems sync.RWMutex
}

func (mock *ledgerRepoMock) Stats(ctx context.Context, gameID string) (domain.LedgerStats, error) {
	if mock.StatsFunc == nil {
		panic("ledgerRepoMock.StatsFunc: method is nil but ledgerRepo.Stats was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		GameID string
	}{Ctx: ctx, GameID: gameID}
	mock.lockStats.Lock()
	mock.calls.Stats = append(mock.calls.Stats, callInfo)
	mock.lockStats.Unlock()
	return mock.StatsFunc(ctx, gameID)
}

func (mock *ledgerRepoMock) StatsCalls() []struct {
	Ctx    context.Context
	GameID string
} {
	mock.lockStats.RLock()
	calls := mock.calls.Stats
	mock.lockStats.RUnlock()
	return calls
}

func (mock *ledgerRepoMock) TopItems(ctx context.Context, gameID string, limit int) ([]domain.ItemGrantCount, error) {
	if mock.TopItemsFunc == nil {
		panic("ledgerRepoMock.TopItemsFunc: method is nil but ledgerRepo.TopItems was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		GameID string
		Limit  int
	}{Ctx: ctx, GameID: gameID, Limit: limit}
	mock.lockTopItems.Lock()
	mock.calls.TopItems = append(mock.calls.TopItems, callInfo)
	mock.lockTopItems.Unlock()
	return mock.TopItemsFunc(ctx, gameID, limit)
}

func (mock *ledgerRepoMock) TopItemsCalls() []struct {
	Ctx    context.Context
	GameID string
	Limit  int
} {
	mock.lockTopItems.RLock()
	calls := mock.calls.TopItems
	mock.lockTopItems.RUnlock()
	return calls
}
