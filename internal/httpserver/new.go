package httpserver

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"ecomart-chatbot/internal/chat"
	tgDelivery "ecomart-chatbot/internal/chat/delivery/telegram"
	"ecomart-chatbot/internal/middleware"
	"ecomart-chatbot/pkg/log"
)

// SessionCounter reports how many conversations are held in memory.
type SessionCounter interface {
	Len() int
}

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin            *gin.Engine
	l              log.Logger
	port           int
	mode           string
	environment    string
	trustedProxies []string

	// Chat domain
	chatUC          chat.UseCase
	middlewareCfg   middleware.Config
	sessions        SessionCounter
	telegramHandler tgDelivery.Handler
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	// TrustedProxies may set the client IP through X-Forwarded-For. Empty trusts none.
	TrustedProxies []string

	// Chat domain
	ChatUseCase     chat.UseCase
	Middleware      middleware.Config
	Sessions        SessionCounter
	TelegramHandler tgDelivery.Handler // optional
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		trustedProxies:  cfg.TrustedProxies,
		chatUC:          cfg.ChatUseCase,
		middlewareCfg:   cfg.Middleware,
		sessions:        cfg.Sessions,
		telegramHandler: cfg.TelegramHandler,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	if err := srv.gin.SetTrustedProxies(srv.trustedProxies); err != nil {
		return nil, fmt.Errorf("trusted proxies: %w", err)
	}

	if err := srv.mapHandlers(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.chatUC == nil {
		return errors.New("chat use case is required")
	}
	return nil
}
