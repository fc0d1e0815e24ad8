package product

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"stockledger/internal/cache"
	movementrepo "stockledger/internal/movement/repository"
	"stockledger/internal/product/controller"
	"stockledger/internal/product/repository"
	"stockledger/internal/product/service"
)

func NewModule(db *sqlx.DB, views *cache.Views, invalidator *cache.Invalidator, logger *zap.Logger) *controller.Controller {
	repo := repository.NewSQLRepository(db)
	movements := movementrepo.NewSQLRepository(db)
	svc := service.NewService(repo, movements, views, invalidator, logger)
	return controller.NewController(svc, logger)
}
