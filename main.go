package main

import (
	"context"
	"fmt"
	"github.com/joho/godotenv"
	"gitlab.com/open-soft/go-rsi-bot/src/config"
	"gitlab.com/open-soft/go-rsi-bot/src/utils"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"
)

func main() {
	pwd, _ := os.Getwd()
	if _, err := os.Stat(fmt.Sprintf("%s/.env", pwd)); err == nil {
		log.Println(".env is found, loading variables...")
		err = godotenv.Load()
		if err != nil {
			log.Println(err)
		}
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(fmt.Sprintf("Configuration is invalid: %s", err.Error()))
	}

	zapLogger, err := utils.NewLogger(cfg.TradeLogPath)
	if err != nil {
		log.Fatal(fmt.Sprintf("Logger can't be initialized: %s", err.Error()))
	}
	defer zapLogger.Sync()
	logger := zapLogger.Sugar()

	container, err := config.InitServiceContainer(cfg, logger)
	if err != nil {
		logger.Fatalf("Service container can't be initialized: %s", err.Error())
	}
	defer container.Close()

	container.RecoverTrades()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	container.TradingEngine.Init(ctx)
	logger.Infof(
		"Bot [%s] is initialized in %s mode for %s",
		cfg.BotUuid,
		cfg.Strategy.Mode,
		cfg.Strategy.GetDisplaySymbol(),
	)

	server := container.StartHttpServer()

	done := make(chan struct{})
	go func() {
		defer close(done)
		container.TradingEngine.Run(ctx)
	}()

	<-ctx.Done()
	logger.Info("Shutdown signal received, stopping...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("HTTP server shutdown failed: %s", err.Error())
	}

	<-done
	logger.Info("Trading bot stopped")
}
