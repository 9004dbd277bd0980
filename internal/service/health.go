package service

import (
	"context"
	"fmt"

	"prepaid-card-backend/internal/apperr"
	"prepaid-card-backend/internal/config"
	"prepaid-card-backend/internal/dto"
	"prepaid-card-backend/internal/repository"
)

const maxListedCollections = 10

type HealthService interface {
	Diagnostics(ctx context.Context) *dto.DiagnosticsResponse
}

type healthServiceImpl struct {
	diagnosticsRepo repository.DiagnosticsRepository
	dbCfg           config.Database
}

func NewHealthService(diagnosticsRepo repository.DiagnosticsRepository, dbCfg config.Database) HealthService {
	return &healthServiceImpl{
		diagnosticsRepo: diagnosticsRepo,
		dbCfg:           dbCfg,
	}
}

// Diagnostics never fails; every problem is reported as a descriptive string.
func (s *healthServiceImpl) Diagnostics(ctx context.Context) (resp *dto.DiagnosticsResponse) {
	resp = &dto.DiagnosticsResponse{
		Backend:          "running",
		Database:         "not available",
		DatabaseURL:      setOrNot(s.dbCfg.URL),
		DatabaseName:     setOrNot(s.dbCfg.Name),
		ConnectionStatus: "not connected",
		Collections:      []string{},
	}

	defer func() {
		if r := recover(); r != nil {
			resp.Database = shortError(fmt.Errorf("%v", r))
		}
	}()

	if !s.diagnosticsRepo.Initialized() {
		resp.Database = "not initialized"
		return resp
	}

	if err := s.diagnosticsRepo.Ping(ctx); err != nil {
		resp.Database = shortError(err)
		return resp
	}
	resp.Database = "available"
	resp.ConnectionStatus = "connected"

	tables, err := s.diagnosticsRepo.ListTables(ctx)
	if err != nil {
		resp.Database = "connected but error: " + apperr.Truncate(err.Error(), 50)
		return resp
	}
	if len(tables) > maxListedCollections {
		tables = tables[:maxListedCollections]
	}
	resp.Collections = tables
	resp.Database = "connected & working"
	return resp
}

func setOrNot(value string) string {
	if value != "" {
		return "set"
	}
	return "not set"
}

func shortError(err error) string {
	return "error: " + apperr.Truncate(err.Error(), 50)
}
