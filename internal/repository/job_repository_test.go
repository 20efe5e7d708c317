package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"workhub/internal/database"
	"workhub/internal/query"
)

type recordedQuery struct {
	sql  string
	args []any
}

type fakeRow struct {
	scanFn func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scanFn(dest...) }

type fakeRows struct{}

func (fakeRows) Close()                 {}
func (fakeRows) Next() bool             { return false }
func (fakeRows) Scan(dest ...any) error { return nil }
func (fakeRows) Err() error             { return nil }

type fakeDB struct {
	queries []recordedQuery
}

func (f *fakeDB) Ping(context.Context) error { return nil }
func (f *fakeDB) Close() error               { return nil }

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (int64, error) {
	f.queries = append(f.queries, recordedQuery{sql: sql, args: args})
	return 1, nil
}

func (f *fakeDB) Query(_ context.Context, sql string, args ...any) (database.Rows, error) {
	f.queries = append(f.queries, recordedQuery{sql: sql, args: args})
	return fakeRows{}, nil
}

func (f *fakeDB) QueryRow(_ context.Context, sql string, args ...any) database.Row {
	f.queries = append(f.queries, recordedQuery{sql: sql, args: args})
	return fakeRow{scanFn: func(dest ...any) error {
		if p, ok := dest[0].(*int); ok {
			*p = 0
		}
		return nil
	}}
}

func (f *fakeDB) Begin(context.Context) (database.Tx, error) { return nil, nil }

func TestPostgresJobRepository_Search_CountAndPageShareOneInstant(t *testing.T) {
	db := &fakeDB{}
	repo := NewPostgresJobRepository(db)

	// a clock that ticks on every read exposes any second plan compile
	base := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	calls := 0
	repo.now = func() time.Time {
		calls++
		return base.Add(time.Duration(calls) * time.Second)
	}

	_, _, err := repo.Search(context.Background(), query.Filter{Status: "open", DatePosted: "7d"}, 10, 0)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(db.queries) != 2 {
		t.Fatalf("expected count and page statements, got %d", len(db.queries))
	}

	count, page := db.queries[0], db.queries[1]
	if !strings.Contains(count.sql, "COUNT(1)") {
		t.Fatalf("expected count statement first, got %q", count.sql)
	}

	countCutoff, ok := count.args[1].(time.Time)
	if !ok {
		t.Fatalf("expected posted_at cutoff in count args, got %T", count.args[1])
	}
	pageCutoff, ok := page.args[1].(time.Time)
	if !ok {
		t.Fatalf("expected posted_at cutoff in page args, got %T", page.args[1])
	}
	if !countCutoff.Equal(pageCutoff) {
		t.Fatalf("count and page cutoffs diverge: %v vs %v", countCutoff, pageCutoff)
	}
}

func TestPostgresJobRepository_Search_AppendsLimitAndOffset(t *testing.T) {
	db := &fakeDB{}
	repo := NewPostgresJobRepository(db)

	_, _, err := repo.Search(context.Background(), query.Filter{Status: "open"}, 20, 40)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	page := db.queries[len(db.queries)-1]
	n := len(page.args)
	if n < 2 || page.args[n-2] != 20 || page.args[n-1] != 40 {
		t.Fatalf("expected trailing limit/offset args 20/40, got %v", page.args)
	}
}
