package importer

import (
	"context"
	"sync"

	"github.com/mossfell/giftdist-backend/internal/domain"
)

var _ catalogRepo = &catalogRepoMock{}

type catalogRepoMock struct {
	GetByGameFilenameFunc func(ctx context.Context, gameID, filename string) (*domain.GiftItem, error)
	UpsertFunc            func(ctx context.Context, item *domain.GiftItem) (*domain.GiftItem, error)

	calls struct {
		GetByGameFilename []struct {
			Ctx      context.Context
			GameID   string
			Filename string
		}
		Upsert []struct {
			Ctx  context.Context
			Item *domain.GiftItem
		}
	}
	lockGetByGameFilename sync.RWMutex
	lockUpsert            sync.RWMutex
}

func (mock *catalogRepoMock) GetByGameFilename(ctx context.Context, gameID, filename string) (*domain.GiftItem, error) {
	if mock.GetByGameFilenameFunc == nil {
		panic("catalogRepoMock.GetByGameFilenameFunc: method is nil but catalogRepo.GetByGameFilename was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		GameID   string
		Filename string
	}{Ctx: ctx, GameID: gameID, Filename: filename}
	mock.lockGetByGameFilename.Lock()
	mock.calls.GetByGameFilename = append(mock.calls.GetByGameFilename, callInfo)
	mock.lockGetByGameFilename.Unlock()
	return mock.GetByGameFilenameFunc(ctx, gameID, filename)
}

func (mock *catalogRepoMock) GetByGameFilenameCalls() []struct {
	Ctx      context.Context
	GameID   string
	Filename string
} {
	mock.lockGetByGameFilename.RLock()
	calls := mock.calls.GetByGameFilename
	mock.lockGetByGameFilename.RUnlock()
	return calls
}

func (mock *catalogRepoMock) Upsert(ctx context.Context, item *domain.GiftItem) (*domain.GiftItem, error) {
	if mock.UpsertFunc == nil {
		panic("catalogRepoMock.UpsertFunc: method is nil but catalogRepo.Upsert was just called")
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

func (mock *catalogRepoMock) UpsertCalls() []struct {
	Ctx  context.Context
	Item *domain.GiftItem
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}
