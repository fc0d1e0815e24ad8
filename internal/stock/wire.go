package stock

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"stockledger/internal/cache"
	movementrepo "stockledger/internal/movement/repository"
	productrepo "stockledger/internal/product/repository"
	"stockledger/internal/stock/controller"
	"stockledger/internal/stock/service"
)

func NewModule(db *sqlx.DB, views *cache.Views, logger *zap.Logger) *controller.Controller {
	products := productrepo.NewSQLRepository(db)
	movements := movementrepo.NewSQLRepository(db)
	svc := service.NewService(products, movements, views, logger)
	return controller.NewController(svc, logger)
}
