package distribution

import (
	"context"
	"log/slog"
	"time"

	"github.com/mossfell/giftdist-backend/internal/domain"
	"github.com/mossfell/giftdist-backend/internal/metrics"
)

// CleanupLedger removes records from completed cycles granted before the
// cutoff. Current-cycle history always survives: it drives dedup. With
// dryRun the count of purgeable records is returned and nothing is deleted.
func (s *Service) CleanupLedger(ctx context.Context, before time.Time, dryRun bool) (int64, error) {
	if dryRun {
		n, err := s.grants.CountPurgeable(ctx, before)
		if err != nil {
			return 0, &domain.UnavailableError{Op: "count purgeable", Err: err}
		}
		return n, nil
	}

	n, err := s.grants.PurgeCompletedCycles(ctx, before)
	if err != nil {
		return 0, &domain.UnavailableError{Op: "purge ledger", Err: err}
	}
	metrics.PurgedRecordsTotal.Add(float64(n))

	s.log.InfoContext(ctx, "ledger cleanup finished",
		slog.Time("before", before),
		slog.Int64("purged", n),
	)

	return n, nil
}
