package catalog

import (
	"database/sql"

	"go.uber.org/zap"

	"orderdesk/internal/catalog/repository"
	"orderdesk/internal/catalog/service"
	"orderdesk/internal/catalog/usecase"
)

func NewModule(db *sql.DB, logger *zap.Logger) (*Controller, *service.MenuService) {
	menuRepo := repository.NewMySQLMenuRepository(db)
	menuSvc := service.NewService(menuRepo)
	searchUC := usecase.NewSearchUseCase(menuSvc)

	return NewController(searchUC, logger), menuSvc
}
