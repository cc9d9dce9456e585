package distribution

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mossfell/giftdist-backend/internal/domain"
)

var _ itemRepo = &itemRepoMock{}

type itemRepoMock struct {
	ListByGameFunc           func(ctx context.Context, gameID string) ([]domain.GiftItem, error)
	IncrementGrantCountsFunc func(ctx context.Context, ids []uuid.UUID) error

	calls struct {
		ListByGame []struct {
			Ctx    context.Context
			GameID string
		}
		IncrementGrantCounts []struct {
			Ctx context.Context
			IDs []uuid.UUID
		}
	}
	lockListByGame           sync.RWMutex
	lockIncrementGrantCounts sync.RWMutex
}

func (mock *itemRepoMock) ListByGame(ctx context.Context, gameID string) ([]domain.GiftItem, error) {
	if mock.ListByGameFunc == nil {
		panic("itemRepoMock.ListByGameFunc: method is nil but itemRepo.ListByGame was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		GameID string
	}{Ctx: ctx, GameID: gameID}
	mock.lockListByGame.Lock()
	mock.calls.ListByGame = append(mock.calls.ListByGame, callInfo)
	mock.lockListByGame.Unlock()
	return mock.ListByGameFunc(ctx, gameID)
}

func (mock *itemRepoMock) ListByGameCalls() []struct {
	Ctx    context.Context
	GameID string
} {
	mock.lockListByGame.RLock()
	calls := mock.calls.ListByGame
	mock.lockListByGame.RUnlock()
	return calls
}

func (mock *itemRepoMock) IncrementGrantCounts(ctx context.Context, ids []uuid.UUID) error {
	if mock.IncrementGrantCountsFunc == nil {
		panic("itemRepoMock.IncrementGrantCountsFunc: method is nil but itemRepo.IncrementGrantCounts was just called")
	}
	callInfo := struct {
		Ctx context.Context
		IDs []uuid.UUID
	}{Ctx: ctx, IDs: ids}
	mock.lockIncrementGrantCounts.Lock()
	mock.calls.IncrementGrantCounts = append(mock.calls.IncrementGrantCounts, callInfo)
	mock.lockIncrementGrantCounts.Unlock()
	return mock.IncrementGrantCountsFunc(ctx, ids)
}

func (mock *itemRepoMock) IncrementGrantCountsCalls() []struct {
	Ctx context.Context
	IDs []uuid.UUID
} {
	mock.lockIncrementGrantCounts.RLock()
	calls := mock.calls.IncrementGrantCounts
	mock.lockIncrementGrantCounts.RUnlock()
	return calls
}
