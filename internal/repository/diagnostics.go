package repository

import (
	"context"
	"sort"

	"gorm.io/gorm"
)

type DiagnosticsRepository interface {
	Initialized() bool
	Ping(ctx context.Context) error
	ListTables(ctx context.Context) ([]string, error)
}

type diagnosticsRepoImpl struct {
	db *gorm.DB
}

func NewDiagnosticsRepository(db *gorm.DB) DiagnosticsRepository {
	return &diagnosticsRepoImpl{db: db}
}

func (r *diagnosticsRepoImpl) Initialized() bool {
	return r.db != nil
}

func (r *diagnosticsRepoImpl) Ping(ctx context.Context) error {
	if r.db == nil {
		return errNotInitialized()
	}
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (r *diagnosticsRepoImpl) ListTables(ctx context.Context) ([]string, error) {
	if r.db == nil {
		return nil, errNotInitialized()
	}
	tables, err := r.db.WithContext(ctx).Migrator().GetTables()
	if err != nil {
		return nil, err
	}
	sort.Strings(tables)
	return tables, nil
}
