package movement

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"stockledger/internal/cache"
	"stockledger/internal/movement/controller"
	"stockledger/internal/movement/repository"
	"stockledger/internal/movement/service"
	productrepo "stockledger/internal/product/repository"
)

func NewModule(db *sqlx.DB, views *cache.Views, invalidator *cache.Invalidator, logger *zap.Logger) *controller.Controller {
	repo := repository.NewSQLRepository(db)
	products := productrepo.NewSQLRepository(db)
	svc := service.NewService(repo, products, views, invalidator, logger)
	return controller.NewController(svc, logger)
}
