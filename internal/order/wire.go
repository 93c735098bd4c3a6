package order

import (
	"database/sql"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	catalogservice "orderdesk/internal/catalog/service"
	"orderdesk/internal/config"
	"orderdesk/internal/gateway"
	"orderdesk/internal/money"
	"orderdesk/internal/notification"
	"orderdesk/internal/order/controller"
	orderrepo "orderdesk/internal/order/repository"
	"orderdesk/internal/order/service"
	"orderdesk/internal/order/usecase"
	"orderdesk/internal/ordernumber"
	storerepo "orderdesk/internal/store/repository"
)

func NewModule(
	db *sql.DB,
	catalogSvc *catalogservice.MenuService,
	publisher notification.MessagePublisher,
	cfg *config.Config,
	logger *zap.Logger,
) *controller.OrderController {
	orderRepo := orderrepo.NewMySQLOrderRepository(db)
	itemRepo := orderrepo.NewMySQLOrderItemRepository(db)
	storeConfigRepo := storerepo.NewMySQLStoreConfigRepository(db)

	persistenceSvc := service.NewOrderPersistenceService(
		db,
		orderRepo,
		itemRepo,
		logger,
		cfg.Order.PersistTxTimeout,
	)

	gatewayClient := gateway.NewClient(
		cfg.Gateway.BaseURL,
		cfg.Gateway.AccessToken,
		cfg.Gateway.RequestTimeout,
		logger,
	)

	dispatcher := notification.NewDispatcher(publisher, logger)
	numbers := ordernumber.NewGenerator(cfg.Order.NumberPrefix)
	normalizer := money.NewNormalizer(decimal.NewFromFloat(cfg.Order.MaxAmount))

	settleUC := usecase.NewSettleOrderUseCase(
		gatewayClient,
		persistenceSvc,
		catalogSvc,
		storeConfigRepo,
		dispatcher,
		numbers,
		normalizer,
		logger,
		cfg.Order.CurrencyCode,
		decimal.NewFromFloat(cfg.Order.TaxRate),
		decimal.NewFromFloat(cfg.Order.DeliveryFee),
		cfg.Order.PersistRetryBackoff,
	)

	manageUC := usecase.NewManageOrderUseCase(orderRepo, logger)

	return controller.NewOrderController(settleUC, manageUC, logger)
}
