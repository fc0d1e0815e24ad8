package user

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"stockledger/internal/user/controller"
	"stockledger/internal/user/repository"
	"stockledger/internal/user/service"
)

func NewModule(db *sqlx.DB, tokens service.TokenIssuer, logger *zap.Logger) *controller.Controller {
	repo := repository.NewSQLRepository(db)
	svc := service.NewService(repo, tokens, logger)
	return controller.NewController(svc, logger)
}
