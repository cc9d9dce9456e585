// Package distribution implements the gift distribution engine: for a
// (recipient, game) pair it decides which gift items to hand out, records the
// grants in the dedup ledger, and manages cycle resets when the pool drains.
package distribution

import (
	"context"
	cryptorand "crypto/rand"
	"encoding/binary"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mossfell/giftdist-backend/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type itemRepo interface {
	ListByGame(ctx context.Context, gameID string) ([]domain.GiftItem, error)
	IncrementGrantCounts(ctx context.Context, ids []uuid.UUID) error
}

type policyRepo interface {
	Get(ctx context.Context, gameID string) (*domain.GamePolicy, error)
}

type grantRepo interface {
	CurrentCycle(ctx context.Context, recipientID, gameID string) (int, error)
	ResetCycle(ctx context.Context, recipientID, gameID string) (int, error)
	HistoryItemIDs(ctx context.Context, recipientID, gameID string, cycle int) ([]uuid.UUID, error)
	History(ctx context.Context, recipientID, gameID string) ([]domain.GrantRecord, error)
	FindByRequestKey(ctx context.Context, recipientID, gameID, requestKey string) ([]domain.GrantRecord, error)
	Record(ctx context.Context, rec *domain.GrantRecord) (*domain.GrantRecord, error)
	PurgeCompletedCycles(ctx context.Context, before time.Time) (int64, error)
	CountPurgeable(ctx context.Context, before time.Time) (int64, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// lockJanitorInterval is how often idle per-recipient lock entries are reaped.
const lockJanitorInterval = 5 * time.Minute

// Service implements the distribution engine.
type Service struct {
	items    itemRepo
	policies policyRepo
	grants   grantRepo
	tx       txManager
	locks    *keyedMutex
	log      *slog.Logger

	// rng feeds random-mode selection. Guarded by rngMu: selections for
	// different recipients run concurrently.
	rngMu sync.Mutex
	rng   *rand.Rand
}

// NewService creates a new distribution service. The random source is seeded
// from crypto/rand; call Stop on shutdown to release the lock janitor.
func NewService(
	log *slog.Logger,
	items itemRepo,
	policies policyRepo,
	grants grantRepo,
	tx txManager,
) (*Service, error) {
	seed, err := cryptoSeed()
	if err != nil {
		return nil, fmt.Errorf("seed random source: %w", err)
	}

	return &Service{
		items:    items,
		policies: policies,
		grants:   grants,
		tx:       tx,
		locks:    newKeyedMutex(lockJanitorInterval),
		log:      log.With("service", "distribution"),
		//nolint:gosec // selection randomness, not cryptographic
		rng: rand.New(rand.NewSource(seed)),
	}, nil
}

// Stop terminates the lock janitor goroutine.
func (s *Service) Stop() {
	s.locks.stop()
}

// randIntn returns a uniform int in [0, n).
func (s *Service) randIntn(n int) int {
	s.rngMu.Lock()
	defer s.rngMu.Unlock()
	return s.rng.Intn(n)
}

func cryptoSeed() (int64, error) {
	var b [8]byte
	if _, err := cryptorand.Read(b[:]); err != nil {
		return 0, err
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
