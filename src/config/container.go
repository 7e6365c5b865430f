package config

import (
	"context"
	"database/sql"
	"fmt"
	_ "github.com/go-sql-driver/mysql"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"gitlab.com/open-soft/go-rsi-bot/src/client"
	"gitlab.com/open-soft/go-rsi-bot/src/controller"
	"gitlab.com/open-soft/go-rsi-bot/src/event_subscriber"
	"gitlab.com/open-soft/go-rsi-bot/src/repository"
	"gitlab.com/open-soft/go-rsi-bot/src/service"
	"gitlab.com/open-soft/go-rsi-bot/src/service/exchange"
	"gitlab.com/open-soft/go-rsi-bot/src/service/indicator"
	"gitlab.com/open-soft/go-rsi-bot/src/service/market"
	"gitlab.com/open-soft/go-rsi-bot/src/service/notification"
	"gitlab.com/open-soft/go-rsi-bot/src/service/strategy"
	"gitlab.com/open-soft/go-rsi-bot/src/utils"
	"go.uber.org/zap"
	"io"
	"net/http"
	"os"
	"time"
)

const snapshotCacheTTL = 10 * time.Minute

type Container struct {
	Config              Config
	Logger              *zap.SugaredLogger
	DB                  *sql.DB
	RDB                 *redis.Client
	Ctx                 *context.Context
	Kraken              *client.Kraken
	TradeLedger         *exchange.TradeLedger
	TradingEngine       *service.TradingEngine
	EventDispatcher     *service.EventDispatcher
	HealthService       *service.HealthService
	DashboardController *controller.DashboardController
	TradeController     *controller.TradeController
	BotController       *controller.BotController
	StreamController    *controller.StreamController
}

func InitServiceContainer(config Config, logger *zap.SugaredLogger) (*Container, error) {
	var ctx = context.Background()
	strategyConfig := config.Strategy

	formatter := utils.Formatter{}
	timeService := utils.TimeHelper{}

	kraken := client.Kraken{
		HttpClient:      &client.HttpClient{Timeout: 20 * time.Second},
		DSN:             config.KrakenDSN,
		ApiKey:          config.KrakenApiKey,
		ApiSecret:       config.KrakenApiSecret,
		PricePrecision:  config.KrakenPricePrecision,
		VolumePrecision: config.KrakenVolumePrecision,
		Formatter:       &formatter,
		Logger:          logger,
	}

	marketDataService := market.MarketDataService{
		Exchange:    &kraken,
		TimeService: &timeService,
		Symbol:      strategyConfig.GetSymbol(),
		Interval:    strategyConfig.KLineInterval,
		RetryPolicy: market.RetryPolicy{
			MaxAttempts: config.PriceRetryAttempts,
			Backoff:     config.PriceRetryBackoff,
		},
		Logger: logger,
	}

	var balanceService *exchange.BalanceService
	if strategyConfig.IsPaper() {
		balanceService = exchange.NewPaperBalanceService(
			&strategyConfig,
			config.PaperQuoteBalance,
			config.PaperBaseBalance,
			&formatter,
			logger,
		)
	} else {
		balanceService = &exchange.BalanceService{
			Config:    &strategyConfig,
			Account:   &kraken,
			OrderAPI:  &kraken,
			Formatter: &formatter,
			Logger:    logger,
		}
	}

	orderLedger := exchange.NewOrderLedger(&kraken, strategyConfig.GetSymbol(), strategyConfig.IsLive(), logger)
	tradeLedger := exchange.NewTradeLedger(logger)

	orderExecutor := exchange.OrderExecutor{
		Config:         &strategyConfig,
		Exchange:       &kraken,
		BalanceService: balanceService,
		OrderLedger:    orderLedger,
		TradeLedger:    tradeLedger,
		TimeService:    &timeService,
		Formatter:      &formatter,
		Logger:         logger,
	}

	eventDispatcher := service.EventDispatcher{
		Subscribers: make([]event_subscriber.SubscriberInterface, 0),
		Enabled:     true,
		Logger:      logger,
	}

	tradingEngine := service.TradingEngine{
		Config:            &strategyConfig,
		MarketDataService: &marketDataService,
		RsiCalculator:     &indicator.RsiCalculator{},
		Strategy:          &strategy.RsiTradeStrategy{Config: &strategyConfig},
		BalanceService:    balanceService,
		OrderLedger:       orderLedger,
		TradeLedger:       tradeLedger,
		RiskGuard:         &exchange.RiskGuard{},
		OrderExecutor:     &orderExecutor,
		EventDispatcher:   &eventDispatcher,
		TimeService:       &timeService,
		Formatter:         &formatter,
		Logger:            logger,
	}

	container := Container{
		Config:          config,
		Logger:          logger,
		Ctx:             &ctx,
		Kraken:          &kraken,
		TradeLedger:     tradeLedger,
		TradingEngine:   &tradingEngine,
		EventDispatcher: &eventDispatcher,
		TradeController: &controller.TradeController{},
		DashboardController: &controller.DashboardController{
			Engine:    &tradingEngine,
			Formatter: &formatter,
		},
		StreamController: &controller.StreamController{
			Engine: &tradingEngine,
			Upgrader: websocket.Upgrader{
				CheckOrigin: func(r *http.Request) bool {
					return true
				},
			},
			Logger: logger,
		},
	}

	if config.IsDatabaseEnabled() {
		if err := container.initDatabase(); err != nil {
			return nil, err
		}
	}

	if config.IsRedisEnabled() {
		container.initRedis()
	}

	if config.IsTelegramEnabled() {
		if err := container.initTelegram(); err != nil {
			return nil, err
		}
	}

	eventDispatcher.Subscribe(container.StreamController)

	container.HealthService = &service.HealthService{
		Engine:  &tradingEngine,
		DB:      container.DB,
		RDB:     container.RDB,
		Ctx:     &ctx,
		BotUuid: config.BotUuid,
	}
	container.BotController = &controller.BotController{
		HealthService: container.HealthService,
	}

	return &container, nil
}

func (c *Container) initDatabase() error {
	db, err := sql.Open("mysql", c.Config.DatabaseDSN)
	if err != nil {
		return fmt.Errorf("MySQL can't connect: %w", err)
	}

	db.SetMaxIdleConns(4)
	db.SetMaxOpenConns(4)
	db.SetConnMaxLifetime(time.Minute)

	tradeRepository := repository.TradeRepository{
		DB:      db,
		BotUuid: c.Config.BotUuid,
	}
	if err := tradeRepository.EnsureSchema(); err != nil {
		_ = db.Close()
		return fmt.Errorf("MySQL schema is not ready: %w", err)
	}

	c.DB = db
	c.TradeController.TradeRepository = &tradeRepository
	c.EventDispatcher.Subscribe(event_subscriber.TradePersistenceSubscriber{
		TradeRepository: &tradeRepository,
		Logger:          c.Logger,
	})
	c.Logger.Infof("[%s] Trades are persisted to MySQL", c.Config.BotUuid)

	return nil
}

func (c *Container) initRedis() {
	c.RDB = redis.NewClient(&redis.Options{
		Addr:     c.Config.RedisDSN,
		Password: c.Config.RedisPassword,
		DB:       0,
	})

	c.EventDispatcher.Subscribe(event_subscriber.SnapshotCacheSubscriber{
		SnapshotRepository: &repository.SnapshotRepository{
			RDB:     c.RDB,
			Ctx:     c.Ctx,
			BotUuid: c.Config.BotUuid,
			TTL:     snapshotCacheTTL,
		},
		Logger: c.Logger,
	})
	c.Logger.Infof("[%s] Dashboard snapshots are cached in Redis", c.Config.BotUuid)
}

func (c *Container) initTelegram() error {
	bot, err := tgbotapi.NewBotAPI(c.Config.TelegramBotToken)
	if err != nil {
		return fmt.Errorf("Telegram bot can't connect: %w", err)
	}

	c.EventDispatcher.Subscribe(event_subscriber.TradeNotificationSubscriber{
		Notificator: &notification.TelegramNotificator{
			Bot:        bot,
			ChatId:     c.Config.TelegramChatId,
			QuoteAsset: c.Config.Strategy.QuoteAsset,
			BaseAsset:  c.Config.Strategy.BaseAsset,
			Logger:     c.Logger,
		},
	})
	c.Logger.Infof("[%s] Trade notifications are sent to Telegram as %s", c.Config.BotUuid, bot.Self.UserName)

	return nil
}

// RecoverTrades loads executed trades from the trade log. A missing log means a fresh start.
func (c *Container) RecoverTrades() {
	file, err := os.Open(c.Config.TradeLogPath)
	if err != nil {
		c.Logger.Infof("Trade log %s is not readable, starting with empty history: %s", c.Config.TradeLogPath, err.Error())
		return
	}
	defer file.Close()

	c.RecoverTradesFrom(file)
}

func (c *Container) RecoverTradesFrom(reader io.Reader) {
	c.TradeLedger.RecoverFromPersistedLog(reader)
}

func (c *Container) Router() http.Handler {
	router := mux.NewRouter()

	router.HandleFunc("/dashboard", c.DashboardController.GetDashboardAction).Methods("GET")
	router.HandleFunc("/trading/switch/{enabled:[01]}", c.DashboardController.SwitchTradingAction).Methods("GET", "POST")
	router.HandleFunc("/order/timeout/{minutes}", c.DashboardController.UpdateOrderTimeoutAction).Methods("GET", "POST")
	router.HandleFunc("/balance/baseline/reset", c.DashboardController.ResetBaselineAction).Methods("POST")
	router.HandleFunc("/trade/list", c.TradeController.GetTradeListAction).Methods("GET")
	router.HandleFunc("/health/check", c.BotController.GetHealthCheckAction).Methods("GET")
	router.HandleFunc("/stream", c.StreamController.GetStreamAction).Methods("GET")

	return cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(router)
}

// StartHttpServer serves in the background, the caller owns Shutdown.
func (c *Container) StartHttpServer() *http.Server {
	server := &http.Server{
		Addr:              c.Config.HttpAddr,
		Handler:           c.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		c.Logger.Infof("HTTP server listening on %s", c.Config.HttpAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			c.Logger.Errorf("HTTP server failed: %s", err.Error())
		}
	}()

	return server
}

func (c *Container) Close() {
	if c.DB != nil {
		_ = c.DB.Close()
	}
	if c.RDB != nil {
		_ = c.RDB.Close()
	}
}
