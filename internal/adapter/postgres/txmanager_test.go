package postgres_test

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v2"

	"github.com/heartmarshall/medcatalog/internal/adapter/postgres"
)

const insertCategory = `INSERT INTO categories (id, slug, name) VALUES ($1, $2, $3)`

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock.NewPool: %v", err)
	}
	t.Cleanup(mock.Close)
	return mock
}

func execInsert(ctx context.Context, fallback postgres.Querier) error {
	_, err := postgres.QuerierFromCtx(ctx, fallback).Exec(ctx, insertCategory, "id", "implants", "Implants")
	return err
}

func TestRunInTx_Commit(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO categories`).
		WithArgs("id", "implants", "Implants").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	tm := postgres.NewTxManager(mock)
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		return execInsert(ctx, mock)
	})
	if err != nil {
		t.Fatalf("RunInTx: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRunInTx_RollbackOnError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO categories`).
		WithArgs("id", "implants", "Implants").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectRollback()

	sentinel := errors.New("business rule failed")
	tm := postgres.NewTxManager(mock)
	err := tm.RunInTx(context.Background(), func(ctx context.Context) error {
		if err := execInsert(ctx, mock); err != nil {
			t.Fatalf("insert inside tx: %v", err)
		}
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("RunInTx error = %v, want sentinel", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestRunInTx_RollbackOnPanic(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	defer func() {
		if r := recover(); r != "boom" {
			t.Fatalf("recovered %v, want re-raised panic", r)
		}
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
	}()

	_ = postgres.NewTxManager(mock).RunInTx(context.Background(), func(ctx context.Context) error {
		panic("boom")
	})
}

func TestRunInTx_BeginError(t *testing.T) {
	mock := newMock(t)
	mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

	called := false
	err := postgres.NewTxManager(mock).RunInTx(context.Background(), func(ctx context.Context) error {
		called = true
		return nil
	})
	if err == nil || called {
		t.Fatalf("err = %v, called = %v; want begin error and no callback", err, called)
	}
}

func TestQuerierFromCtx_WithoutTxReturnsFallback(t *testing.T) {
	mock := newMock(t)
	if got := postgres.QuerierFromCtx(context.Background(), mock); got != mock {
		t.Errorf("QuerierFromCtx() = %v, want fallback", got)
	}
}
