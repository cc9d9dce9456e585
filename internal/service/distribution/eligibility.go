package distribution

import (
	"time"

	"github.com/mossfell/giftdist-backend/internal/domain"
)

// eligibleItems retains enabled items whose availability window contains now.
// Order is preserved: callers pass the catalog in its canonical order
// (priority descending, id ascending), so the result stays in catalog order.
func eligibleItems(now time.Time, items []domain.GiftItem) []domain.GiftItem {
	eligible := make([]domain.GiftItem, 0, len(items))
	for _, item := range items {
		if item.Enabled && item.AvailableAt(now) {
			eligible = append(eligible, item)
		}
	}
	return eligible
}
