package service

import (
	"context"

	"socialnet/internal/models"
	"socialnet/internal/repository"
)

type TablesService interface {
	SchemaStatus(ctx context.Context) (*models.SchemaStatus, error)
}

type tablesService struct {
	tablesRepo repository.TablesRepository
}

func NewTablesService(tablesRepo repository.TablesRepository) TablesService {
	return &tablesService{tablesRepo: tablesRepo}
}

// SchemaStatus reports which migration tables are absent from the database.
func (t *tablesService) SchemaStatus(ctx context.Context) (*models.SchemaStatus, error) {
	tables, err := t.tablesRepo.ListTables(ctx)
	if err != nil {
		return nil, err
	}

	present := make(map[string]struct{}, len(tables))
	for _, name := range tables {
		present[name] = struct{}{}
	}

	status := &models.SchemaStatus{CountTables: len(tables)}
	for _, name := range models.SchemaTables {
		if _, ok := present[name]; !ok {
			status.MissingTables = append(status.MissingTables, name)
		}
	}

	return status, nil
}
