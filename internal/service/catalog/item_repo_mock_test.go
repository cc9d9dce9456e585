package catalog

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/mossfell/giftdist-backend/internal/domain"
)

var _ itemRepo = &itemRepoMock{}

type itemRepoMock struct {
	GetByIDFunc     func(ctx context.Context, id uuid.UUID) (*domain.GiftItem, error)
	ListFunc        func(ctx context.Context, f domain.ItemFilter) ([]domain.GiftItem, int, error)
	CountByGameFunc func(ctx context.Context, gameID string) (int, int, error)
	UpsertFunc      func(ctx context.Context, item *domain.GiftItem) (*domain.GiftItem, error)
	SetEnabledFunc  func(ctx context.Context, id uuid.UUID, enabled bool) error

	calls struct {
		GetByID []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		List []struct {
			Ctx context.Context
			F   domain.ItemFilter
		}
		CountByGame []struct {
			Ctx    context.Context
			GameID string
		}
		Upsert []struct {
			Ctx  context.Context
			Item *domain.GiftItem
		}
		SetEnabled []struct {
			Ctx     context.Context
			ID      uuid.UUID
			Enabled bool
		}
	}
	lockGetByID     sync.RWMutex
	lockList        sync.RWMutex
	lockCountByGame sync.RWMutex
	lockUpsert      sync.RWMutex
	lockSetEnabled  sync.RWMutex
}

func (mock *itemRepoMock) GetByID(ctx context.Context, id uuid.UUID) (*domain.GiftItem, error) {
	if mock.GetByIDFunc == nil {
		panic("itemRepoMock.GetByIDFunc: method is nil but itemRepo.GetByID was just called")
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

func (mock *itemRepoMock) GetByIDCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetByID.RLock()
	calls := mock.calls.GetByID
	mock.lockGetByID.RUnlock()
	return calls
}

func (mock *itemRepoMock) List(ctx context.Context, f domain.ItemFilter) ([]domain.GiftItem, int, error) {
	if mock.ListFunc == nil {
		panic("itemRepoMock.ListFunc: method is nil but itemRepo.List was just called")
	}
	callInfo := struct {
		Ctx context.Context
		F   domain.ItemFilter
	}{Ctx: ctx, F: f}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, f)
}

func (mock *itemRepoMock) ListCalls() []struct {
	Ctx context.Context
	F   domain.ItemFilter
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *itemRepoMock) CountByGame(ctx context.Context, gameID string) (int, int, error) {
	if mock.CountByGameFunc == nil {
		panic("itemRepoMock.CountByGameFunc: method is nil but itemRepo.CountByGame was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		GameID string
	}{Ctx: ctx, GameID: gameID}
	mock.lockCountByGame.Lock()
	mock.calls.CountByGame = append(mock.calls.CountByGame, callInfo)
	mock.lockCountByGame.Unlock()
	return mock.CountByGameFunc(ctx, gameID)
}

func (mock *itemRepoMock) CountByGameCalls() []struct {
	Ctx    context.Context
	GameID string
} {
	mock.lockCountByGame.RLock()
	calls := mock.calls.CountByGame
	mock.lockCountByGame.RUnlock()
	return calls
}

func (mock *itemRepoMock) Upsert(ctx context.Context, item *domain.GiftItem) (*domain.GiftItem, error) {
	if mock.UpsertFunc == nil {
		panic("itemRepoMock.UpsertFunc: method is nil but itemRepo.Upsert was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Item *domain.GiftItem
	}{Ctx: ctx, Item: item}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, item)
}

func (mock *itemRepoMock) UpsertCalls() []struct {
	Ctx  context.Context
	Item *domain.GiftItem
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}

func (mock *itemRepoMock) SetEnabled(ctx context.Context, id uuid.UUID, enabled bool) error {
	if mock.SetEnabledFunc == nil {
		panic("itemRepoMock.SetEnabledFunc: method is nil but itemRepo.SetEnabled was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		ID      uuid.UUID
		Enabled bool
	}{Ctx: ctx, ID: id, Enabled: enabled}
	mock.lockSetEnabled.Lock()
	mock.calls.SetEnabled = append(mock.calls.SetEnabled, callInfo)
	mock.lockSetEnabled.Unlock()
	return mock.SetEnabledFunc(ctx, id, enabled)
}

func (mock *itemRepoMock) SetEnabledCalls() []struct {
	Ctx     context.Context
	ID      uuid.UUID
	Enabled bool
} {
	mock.lockSetEnabled.RLock()
	calls := mock.calls.SetEnabled
	mock.lockSetEnabled.RUnlock()
	return calls
}
