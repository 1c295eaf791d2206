package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"ecomart-chatbot/config"
	_ "ecomart-chatbot/docs" // Swagger docs
	"ecomart-chatbot/internal/chat"
	tgDelivery "ecomart-chatbot/internal/chat/delivery/telegram"
	"ecomart-chatbot/internal/chat/usecase"
	"ecomart-chatbot/internal/conversation"
	"ecomart-chatbot/internal/freight"
	"ecomart-chatbot/internal/httpserver"
	"ecomart-chatbot/internal/middleware"
	"ecomart-chatbot/internal/router"
	"ecomart-chatbot/pkg/llmprovider"
	"ecomart-chatbot/pkg/log"
	"ecomart-chatbot/pkg/telegram"
)

// @title       EcoMart Chatbot API
// @description Customer chat assistant that answers freight quotes and general questions.
// @version     1
// @host        localhost:8080
// @schemes     http
func main() {
	configPath := pflag.StringP("config", "c", "", "path to config.yaml (default: search ./config, . and /etc/app/)")
	pflag.Parse()

	// 1. Configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting EcoMart chatbot...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Completion gateway
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}
	llmManager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryAttempts:   cfg.LLM.RetryAttempts,
		RetryDelay:      parseDuration(cfg.LLM.RetryDelay, time.Second),
		MaxTotalTimeout: parseDuration(cfg.LLM.MaxTotalTimeout, 60*time.Second),
	}, logger)
	logger.Infof(ctx, "LLM ready: %d provider(s), default model %s", len(providers), llmManager.Model())

	// 4. Chat domain
	intentRouter := router.New(cfg.Chat.FreightKeywords, logger)

	rates := make(map[freight.Region]freight.Amount, len(cfg.Freight.Rates))
	for region, cents := range cfg.Freight.Rates {
		rates[freight.Region(region)] = freight.Amount(cents)
	}
	calculator, err := freight.NewTableCalculator(freight.Config{
		MaxQuantity: cfg.Freight.MaxQuantity,
		Rates:       rates,
	}, logger)
	if err != nil {
		logger.Error(ctx, "Failed to initialize freight calculator: ", err)
		return
	}

	store := conversation.NewStore(conversation.Config{
		MaxSessions: cfg.Conversation.MaxSessions,
		SessionTTL:  cfg.Conversation.SessionTTL,
	}, logger)

	policy, err := chat.ParsePolicy(cfg.Chat.ErrorPolicy)
	if err != nil {
		logger.Error(ctx, "Invalid error policy: ", err)
		return
	}

	chatUC := usecase.New(logger, llmManager, intentRouter, calculator, store, usecase.Config{
		ExtractionModel:    cfg.Chat.ExtractionModel,
		ChatModel:          cfg.Chat.ChatModel,
		ExtractionJSONMode: cfg.Chat.ExtractionJSONMode,
		Policy:             policy,
	})
	logger.Infof(ctx, "Chat use case ready (error policy: %s)", policy)

	// 5. Telegram channel (optional)
	var telegramHandler tgDelivery.Handler
	if cfg.Telegram.BotToken != "" {
		telegramHandler = initTelegram(ctx, logger, cfg.Telegram, chatUC)
	} else {
		logger.Warn(ctx, "Telegram skipped: TELEGRAM_BOT_TOKEN is missing")
	}

	// 6. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:         logger,
		Port:           cfg.HTTPServer.Port,
		Mode:           cfg.HTTPServer.Mode,
		Environment:    cfg.Environment.Name,
		TrustedProxies: cfg.HTTPServer.TrustedProxies,
		ChatUseCase:    chatUC,
		Middleware: middleware.Config{
			RateLimitPerMin: cfg.HTTPServer.RateLimitPerMin,
			SecureCookie:    cfg.HTTPServer.SecureCookie,
		},
		Sessions:        store,
		TelegramHandler: telegramHandler,
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 7. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

func initTelegram(ctx context.Context, logger log.Logger, cfg config.TelegramConfig, uc chat.UseCase) tgDelivery.Handler {
	bot, err := telegram.NewBot(cfg.BotToken)
	if err != nil {
		logger.Warnf(ctx, "Telegram not available: %v", err)
		return nil
	}
	logger.Infof(ctx, "Telegram bot authorized as @%s", bot.Username())

	handler := tgDelivery.New(logger, uc, bot, cfg.SecretToken)

	// Register webhook: auto-detect ngrok or fallback to manual config
	webhookURL := cfg.WebhookURL
	if webhookURL == "" && cfg.NgrokAPIURL != "" {
		ngrokURL, ngrokErr := detectNgrokURL(ctx, cfg.NgrokAPIURL)
		if ngrokErr != nil {
			logger.Warnf(ctx, "Could not detect ngrok URL: %v", ngrokErr)
		} else {
			webhookURL = ngrokURL + "/webhook/telegram"
			logger.Infof(ctx, "Auto-detected ngrok URL: %s", webhookURL)
		}
	}

	if webhookURL != "" {
		if whErr := bot.SetWebhook(webhookURL, cfg.SecretToken); whErr != nil {
			logger.Warnf(ctx, "Failed to set Telegram webhook: %v", whErr)
		} else {
			logger.Infof(ctx, "Telegram webhook registered at %s", webhookURL)
		}
	}

	return handler
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
