package main

import (
	"net/http"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	authapp "github.com/nlhsang/chat-account/application/auth"
	"github.com/nlhsang/chat-account/cmd/config"
	redisclient "github.com/nlhsang/chat-account/cmd/redis"
	_ "github.com/nlhsang/chat-account/docs"
	accountRepo "github.com/nlhsang/chat-account/repository/account"
	redisRepo "github.com/nlhsang/chat-account/repository/redis"
	resettokenRepo "github.com/nlhsang/chat-account/repository/resettoken"
	"github.com/nlhsang/chat-account/resettoken"
	"github.com/nlhsang/chat-account/thirdparty/mailer"
	"github.com/nlhsang/chat-account/thirdparty/rabbitmq"
	"github.com/nlhsang/chat-account/transport"
	"github.com/nlhsang/chat-account/utils/logger"
	"go.uber.org/zap"
)

// @title CHAT ACCOUNT API
// @version 1.0
// @description Account and authentication service for the chat web client
// @host localhost:8000
// @BasePath /
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Account events are best effort; the service runs without a broker.
	publisher, err := rabbitmq.NewPublisher(cfg.Rabbit.Host, cfg.Rabbit.Port, cfg.Rabbit.User, cfg.Rabbit.Password)
	if err != nil {
		logger.Warn("err connect rabbitmq, account events disabled", zap.Error(err))
		publisher = nil
	} else {
		defer func() {
			_ = publisher.Close()
		}()
	}

	// Initialize repositories
	AccountRepo := accountRepo.NewAccountRepository(db)
	RedisRepo := redisRepo.NewRepository()
	ResetTokenRepo := resettokenRepo.NewResetTokenRepository(db)

	// Initialize application layers
	ResetTokens := resettoken.NewManager(ResetTokenRepo, cfg.Auth.ResetTokenTTL)
	MailClient := mailer.NewClient(cfg.Mail)
	AuthApp := authapp.NewAuthApp(cfg, AccountRepo, RedisRepo, ResetTokens, MailClient, publisher)

	httpTransport := transport.NewTransport(cfg, AuthApp)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
