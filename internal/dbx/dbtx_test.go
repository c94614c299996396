package dbx

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(4)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS images (id INTEGER PRIMARY KEY, update_id TEXT, image_url TEXT);`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO images (update_id, image_url) VALUES ('u1', 'https://old.example/a.png')`)
	require.NoError(t, err)
	return db
}

func urls(t *testing.T, db *sql.DB) []string {
	t.Helper()
	rows, err := db.Query(`SELECT image_url FROM images WHERE update_id = 'u1' ORDER BY id`)
	require.NoError(t, err)
	defer rows.Close()
	var out []string
	for rows.Next() {
		var u string
		require.NoError(t, rows.Scan(&u))
		out = append(out, u)
	}
	require.NoError(t, rows.Err())
	return out
}

func replace(ctx context.Context, tx DBTX, url string) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM images WHERE update_id = 'u1'`); err != nil {
		return err
	}
	_, err := tx.ExecContext(ctx, `INSERT INTO images (update_id, image_url) VALUES ('u1', ?)`, url)
	return err
}

func TestWithTx_CommitsOnSuccess(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		return replace(ctx, tx, "https://new.example/b.png")
	})
	require.NoError(t, err)
	require.Equal(t, []string{"https://new.example/b.png"}, urls(t, db))
}

func TestWithTx_RollbackOnFnError(t *testing.T) {
	db := setupDB(t)

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, replace(ctx, tx, "https://new.example/b.png"))
		return errors.New("boom")
	})
	require.Error(t, err)
	require.Equal(t, []string{"https://old.example/a.png"}, urls(t, db), "old image set must survive")
}

func TestWithTx_RollbackOnPanic(t *testing.T) {
	db := setupDB(t)

	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("expected panic to propagate")
		}
		require.Equal(t, []string{"https://old.example/a.png"}, urls(t, db))
	}()

	_ = WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		require.NoError(t, replace(ctx, tx, "https://new.example/b.png"))
		panic("kaput")
	})
}

func TestWithTx_BeginError(t *testing.T) {
	db := setupDB(t)
	require.NoError(t, db.Close())

	err := WithTx(context.Background(), db, nil, func(ctx context.Context, tx DBTX) error {
		t.Fatal("fn must not run when begin fails")
		return nil
	})
	require.Error(t, err)
}
