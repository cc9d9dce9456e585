package distribution

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mossfell/giftdist-backend/internal/domain"
)

var _ grantRepo = &grantRepoMock{}

type grantRepoMock struct {
	CurrentCycleFunc         func(ctx context.Context, recipientID, gameID string) (int, error)
	ResetCycleFunc           func(ctx context.Context, recipientID, gameID string) (int, error)
	HistoryItemIDsFunc       func(ctx context.Context, recipientID, gameID string, cycle int) ([]uuid.UUID, error)
	HistoryFunc              func(ctx context.Context, recipientID, gameID string) ([]domain.GrantRecord, error)
	FindByRequestKeyFunc     func(ctx context.Context, recipientID, gameID, requestKey string) ([]domain.GrantRecord, error)
	RecordFunc               func(ctx context.Context, rec *domain.GrantRecord) (*domain.GrantRecord, error)
	PurgeCompletedCyclesFunc func(ctx context.Context, before time.Time) (int64, error)
	CountPurgeableFunc       func(ctx context.Context, before time.Time) (int64, error)

	calls struct {
		CurrentCycle []struct {
			Ctx         context.Context
			RecipientID string
			GameID      string
		}
		ResetCycle []struct {
			Ctx         context.Context
			RecipientID string
			GameID      string
		}
		HistoryItemIDs []struct {
			Ctx         context.Context
			RecipientID string
			GameID      string
			Cycle       int
		}
		History []struct {
			Ctx         context.Context
			RecipientID string
			GameID      string
		}
		FindByRequestKey []struct {
			Ctx         context.Context
			RecipientID string
			GameID      string
			RequestKey  string
		}
		Record []struct {
			Ctx context.Context
			Rec *domain.GrantRecord
		}
		PurgeCompletedCycles []struct {
			Ctx    context.Context
			Before time.Time
		}
		CountPurgeable []struct {
			Ctx    context.Context
			Before time.Time
		}
	}
	lockCurrentCycle         sync.RWMutex
	lockResetCycle           sync.RWMutex
	lockHistoryItemIDs       sync.RWMutex
	lockHistory              sync.RWMutex
	lockFindByRequestKey     sync.RWMutex
	lockRecord               sync.RWMutex
	lockPurgeCompletedCycles sync.RWMutex
	lockCountPurgeable       sync.RWMutex
}

func (mock *grantRepoMock) CurrentCycle(ctx context.Context, recipientID, gameID string) (int, error) {
	if mock.CurrentCycleFunc == nil {
		panic("grantRepoMock.CurrentCycleFunc: method is nil but grantRepo.CurrentCycle was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		RecipientID string
		GameID      string
	}{Ctx: ctx, RecipientID: recipientID, GameID: gameID}
	mock.lockCurrentCycle.Lock()
	mock.calls.CurrentCycle = append(mock.calls.CurrentCycle, callInfo)
	mock.lockCurrentCycle.Unlock()
	return mock.CurrentCycleFunc(ctx, recipientID, gameID)
}

func (mock *grantRepoMock) CurrentCycleCalls() []struct {
	Ctx         context.Context
	RecipientID string
	GameID      string
} {
	mock.lockCurrentCycle.RLock()
	calls := mock.calls.CurrentCycle
	mock.lockCurrentCycle.RUnlock()
	return calls
}

func (mock *grantRepoMock) ResetCycle(ctx context.Context, recipientID, gameID string) (int, error) {
	if mock.ResetCycleFunc == nil {
		panic("grantRepoMock.ResetCycleFunc: method is nil but grantRepo.ResetCycle was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		RecipientID string
		GameID      string
	}{Ctx: ctx, RecipientID: recipientID, GameID: gameID}
	mock.lockResetCycle.Lock()
	mock.calls.ResetCycle = append(mock.calls.ResetCycle, callInfo)
	mock.lockResetCycle.Unlock()
	return mock.ResetCycleFunc(ctx, recipientID, gameID)
}

func (mock *grantRepoMock) ResetCycleCalls() []struct {
	Ctx         context.Context
	RecipientID string
	GameID      string
} {
	mock.lockResetCycle.RLock()
	calls := mock.calls.ResetCycle
	mock.lockResetCycle.RUnlock()
	return calls
}

func (mock *grantRepoMock) HistoryItemIDs(ctx context.Context, recipientID, gameID string, cycle int) ([]uuid.UUID, error) {
	if mock.HistoryItemIDsFunc == nil {
		panic("grantRepoMock.HistoryItemIDsFunc: method is nil but grantRepo.HistoryItemIDs was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		RecipientID string
		GameID      string
		Cycle       int
	}{Ctx: ctx, RecipientID: recipientID, GameID: gameID, Cycle: cycle}
	mock.lockHistoryItemIDs.Lock()
	mock.calls.HistoryItemIDs = append(mock.calls.HistoryItemIDs, callInfo)
	mock.lockHistoryItemIDs.Unlock()
	return mock.HistoryItemIDsFunc(ctx, recipientID, gameID, cycle)
}

func (mock *grantRepoMock) HistoryItemIDsCalls() []struct {
	Ctx         context.Context
	RecipientID string
	GameID      string
	Cycle       int
} {
	mock.lockHistoryItemIDs.RLock()
	calls := mock.calls.HistoryItemIDs
	mock.lockHistoryItemIDs.RUnlock()
	return calls
}

func (mock *grantRepoMock) History(ctx context.Context, recipientID, gameID string) ([]domain.GrantRecord, error) {
	if mock.HistoryFunc == nil {
		panic("grantRepoMock.HistoryFunc: method is nil but grantRepo.History was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		RecipientID string
		GameID      string
	}{Ctx: ctx, RecipientID: recipientID, GameID: gameID}
	mock.lockHistory.Lock()
	mock.calls.History = append(mock.calls.History, callInfo)
	mock.lockHistory.Unlock()
	return mock.HistoryFunc(ctx, recipientID, gameID)
}

func (mock *grantRepoMock) HistoryCalls() []struct {
	Ctx         context.Context
	RecipientID string
	GameID      string
} {
	mock.lockHistory.RLock()
	calls := mock.calls.History
	mock.lockHistory.RUnlock()
	return calls
}

func (mock *grantRepoMock) FindByRequestKey(ctx context.Context, recipientID, gameID, requestKey string) ([]domain.GrantRecord, error) {
	if mock.FindByRequestKeyFunc == nil {
		panic("grantRepoMock.FindByRequestKeyFunc: method is nil but grantRepo.FindByRequestKey was just called")
	}
	callInfo := struct {
		Ctx         context.Context
		RecipientID string
		GameID      string
		RequestKey  string
	}{Ctx: ctx, RecipientID: recipientID, GameID: gameID, RequestKey: requestKey}
	mock.lockFindByRequestKey.Lock()
	mock.calls.FindByRequestKey = append(mock.calls.FindByRequestKey, callInfo)
	mock.lockFindByRequestKey.Unlock()
	return mock.FindByRequestKeyFunc(ctx, recipientID, gameID, requestKey)
}

func (mock *grantRepoMock) FindByRequestKeyCalls() []struct {
	Ctx         context.Context
	RecipientID string
	GameID      string
	RequestKey  string
} {
	mock.lockFindByRequestKey.RLock()
	calls := mock.calls.FindByRequestKey
	mock.lockFindByRequestKey.RUnlock()
	return calls
}

func (mock *grantRepoMock) Record(ctx context.Context, rec *domain.GrantRecord) (*domain.GrantRecord, error) {
	if mock.RecordFunc == nil {
		panic("grantRepoMock.RecordFunc: method is nil but grantRepo.Record was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Rec *domain.GrantRecord
	}{Ctx: ctx, Rec: rec}
	mock.lockRecord.Lock()
	mock.calls.Record = append(mock.calls.Record, callInfo)
	mock.lockRecord.Unlock()
	return mock.RecordFunc(ctx, rec)
}

func (mock *grantRepoMock) RecordCalls() []struct {
	Ctx context.Context
	Rec *domain.GrantRecord
} {
	mock.lockRecord.RLock()
	calls := mock.calls.Record
	mock.lockRecord.RUnlock()
	return calls
}

func (mock *grantRepoMock) PurgeCompletedCycles(ctx context.Context, before time.Time) (int64, error) {
	if mock.PurgeCompletedCyclesFunc == nil {
		panic("grantRepoMock.PurgeCompletedCyclesFunc: method is nil but grantRepo.PurgeCompletedCycles was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Before time.Time
	}{Ctx: ctx, Before: before}
	mock.lockPurgeCompletedCycles.Lock()
	mock.calls.PurgeCompletedCycles = append(mock.calls.PurgeCompletedCycles, callInfo)
	mock.lockPurgeCompletedCycles.Unlock()
	return mock.PurgeCompletedCyclesFunc(ctx, before)
}

func (mock *grantRepoMock) PurgeCompletedCyclesCalls() []struct {
	Ctx    context.Context
	Before time.Time
} {
	mock.lockPurgeCompletedCycles.RLock()
	calls := mock.calls.PurgeCompletedCycles
	mock.lockPurgeCompletedCycles.RUnlock()
	return calls
}

func (mock *grantRepoMock) CountPurgeable(ctx context.Context, before time.Time) (int64, error) {
	if mock.CountPurgeableFunc == nil {
		panic("grantRepoMock.CountPurgeableFunc: method is nil but grantRepo.CountPurgeable was just called")
	}
	callInfo := struct {
		Ctx    context.Context
		Before time.Time
	}{Ctx: ctx, Before: before}
	mock.lockCountPurgeable.Lock()
	mock.calls.CountPurgeable = append(mock.calls.CountPurgeable, callInfo)
	mock.lockCountPurgeable.Unlock()
	return mock.CountPurgeableFunc(ctx, before)
}

func (mock *grantRepoMock) CountPurgeableCalls() []struct {
	Ctx    context.Context
	Before time.Time
} {
	mock.lockCountPurgeable.RLock()
	calls := mock.calls.CountPurgeable
	mock.lockCountPurgeable.RUnlock()
	return calls
}
