//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// AuctionRowState mirrors the nullable protocol columns of one stored auction.
type AuctionRowState struct {
	CommitA *string
	CommitB *string
	BidA    *int64
	BidB    *int64
	SecretA *string
	SecretB *string
}

// reads the raw protocol columns, bypassing the API surface
func FetchAuctionRow(t *testing.T, db DBLike, id string) AuctionRowState {
	t.Helper()

	var row AuctionRowState
	err := db.QueryRow(context.Background(), `
		SELECT commit_a, commit_b, bid_a_cents, bid_b_cents, secret_a, secret_b
		FROM auctions WHERE id = $1`, id).
		Scan(&row.CommitA, &row.CommitB, &row.BidA, &row.BidB, &row.SecretA, &row.SecretB)
	require.NoError(t, err)
	return row
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables so each subtest starts from a blank protocol state
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return nil
}
