//go:build e2e

package e2e_test

import (
	"log/slog"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mossfell/giftdist-backend/internal/adapter/postgres"
	giftrepo "github.com/mossfell/giftdist-backend/internal/adapter/postgres/gift"
	grantrepo "github.com/mossfell/giftdist-backend/internal/adapter/postgres/grant"
	policyrepo "github.com/mossfell/giftdist-backend/internal/adapter/postgres/policy"
	"github.com/mossfell/giftdist-backend/internal/adapter/postgres/testhelper"
	"github.com/mossfell/giftdist-backend/internal/service/catalog"
	"github.com/mossfell/giftdist-backend/internal/service/distribution"
)

// testLogWriter adapts testing.T to io.Writer for slog.
type testLogWriter struct{ t *testing.T }

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(string(p))
	return len(p), nil
}

// testStack wires the real services over a shared PostgreSQL container.
type testStack struct {
	Pool    *pgxpool.Pool
	Items   *giftrepo.Repo
	Dist    *distribution.Service
	Catalog *catalog.Service
}

// setupStack bootstraps the full stack backed by a real PostgreSQL
// container (shared via testhelper).
func setupStack(t *testing.T) *testStack {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	logger := slog.New(slog.NewTextHandler(testLogWriter{t}, nil))
	txm := postgres.NewTxManager(pool)

	items := giftrepo.New(pool)
	policies := policyrepo.New(pool)
	grants := grantrepo.New(pool)

	dist, err := distribution.NewService(logger, items, policies, grants, txm)
	if err != nil {
		t.Fatalf("distribution.NewService: %v", err)
	}
	t.Cleanup(dist.Stop)

	cat := catalog.NewService(logger, items, policies, grants, 0)

	return &testStack{
		Pool:    pool,
		Items:   items,
		Dist:    dist,
		Catalog: cat,
	}
}
