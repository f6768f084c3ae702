//
// Package dbtest provides a *gorm.DB for service tests that fake out the
// repositories. Services still open and commit transactions on the handle,
// so the stub pool answers Begin/Commit/Rollback and nothing else.
package dbtest

import (
	"context"
	"database/sql"

	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

type stubPool struct{}

func (stubPool) PrepareContext(context.Context, string) (*sql.Stmt, error) {
	return nil, sql.ErrConnDone
}

func (stubPool) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, sql.ErrConnDone
}

func (stubPool) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, sql.ErrConnDone
}

func (stubPool) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (stubPool) BeginTx(context.Context, *sql.TxOptions) (gorm.ConnPool, error) {
	return &stubTx{}, nil
}

type stubTx struct{ stubPool }

func (*stubTx) Commit() error   { return nil }
func (*stubTx) Rollback() error { return nil }

// Open returns a gorm handle whose connection pool is a no-op stub.
func Open() *gorm.DB {
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{ConnPool: stubPool{}})
	if err != nil {
		panic(err)
	}
	return db
}
