package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/linemailhq/linemail/internal/bridge"
	"github.com/linemailhq/linemail/internal/config"
	"github.com/linemailhq/linemail/internal/email"
	emailmailgun "github.com/linemailhq/linemail/internal/email/adapters/mailgun"
	emailsmtp "github.com/linemailhq/linemail/internal/email/adapters/smtp"
	"github.com/linemailhq/linemail/internal/handlers"
	"github.com/linemailhq/linemail/internal/line"
	"github.com/linemailhq/linemail/internal/logger"
	"github.com/linemailhq/linemail/internal/server"
	"github.com/linemailhq/linemail/internal/storage"
	"github.com/linemailhq/linemail/internal/storage/providers/gcs"
	"github.com/linemailhq/linemail/internal/version"
)

func runServe() {
	fx.New(
		fx.Provide(
			provideConfig,
			provideLogger,
			provideLineClient,
			provideEmailRegistry,
			provideEmailSender,
			provideStorageUploader,
			provideMailer,
			provideMessenger,
			provideServerHandler(providePingHandler),
			provideServerHandler(provideWebhookHandler),
			provideServerHandler(provideSubmissionHandler),
			provideServer,
		),
		fx.Invoke(startServer),
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log.With(slog.String("component", "fx"))}
		}),
	).Run()
}

func provideServerHandler(fn any) any {
	return fx.Annotate(
		fn,
		fx.As(new(server.Handler)),
		fx.ResultTags(`group:"server_handlers"`),
	)
}

func provideConfig() config.Config {
	return config.Load()
}

func provideLogger(cfg config.Config) *slog.Logger {
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	return logger.L
}

func provideLineClient(cfg config.Config) (*line.Client, error) {
	client, err := line.NewClient(cfg.Line.ChannelAccessToken)
	if err != nil {
		return nil, fmt.Errorf("line client: %w", err)
	}
	return client, nil
}

func provideEmailRegistry(log *slog.Logger, cfg config.Config) *email.Registry {
	reg := email.NewRegistry()
	reg.Register(emailmailgun.New(log, cfg.Email.Mailgun.Domain, cfg.Email.Mailgun.APIKey))
	reg.Register(emailsmtp.New(log, emailsmtp.Config{
		Host:     cfg.Email.SMTP.Host,
		Port:     cfg.Email.SMTP.Port,
		Username: cfg.Email.SMTP.Username,
		Password: cfg.Email.SMTP.Password,
	}))
	return reg
}

func provideEmailSender(reg *email.Registry, cfg config.Config) (email.Sender, error) {
	sender, err := reg.Get(email.ProviderName(cfg.Email.Provider))
	if err != nil {
		return nil, fmt.Errorf("email provider %q: %w", cfg.Email.Provider, err)
	}
	return sender, nil
}

func provideStorageUploader(lc fx.Lifecycle, cfg config.Config) (storage.Uploader, error) {
	provider, err := gcs.New(context.Background(), cfg.Storage.Bucket)
	if err != nil {
		return nil, fmt.Errorf("storage provider: %w", err)
	}
	lc.Append(fx.Hook{OnStop: func(context.Context) error { return provider.Close() }})
	return provider, nil
}

func provideMailer(log *slog.Logger, client *line.Client, sender email.Sender, cfg config.Config) *bridge.Mailer {
	return bridge.NewMailer(log, client, client, sender,
		cfg.Email.From, cfg.Email.To, cfg.Email.Subject)
}

func provideMessenger(log *slog.Logger, client *line.Client, uploads storage.Uploader, cfg config.Config) *bridge.Messenger {
	return bridge.NewMessenger(log, uploads, client, cfg.Line.GroupID)
}

func providePingHandler(log *slog.Logger) *handlers.PingHandler {
	return handlers.NewPingHandler(log)
}

func provideWebhookHandler(log *slog.Logger, mailer *bridge.Mailer, cfg config.Config) *handlers.WebhookHandler {
	return handlers.NewWebhookHandler(log, mailer, cfg.Line.ChannelSecret)
}

func provideSubmissionHandler(log *slog.Logger, messenger *bridge.Messenger) *handlers.SubmissionHandler {
	return handlers.NewSubmissionHandler(log, messenger)
}

type serverParams struct {
	fx.In
	Logger   *slog.Logger
	Config   config.Config
	Handlers []server.Handler `group:"server_handlers"`
}

func provideServer(params serverParams) *server.Server {
	return server.New(params.Logger, params.Config.Server.Addr, params.Handlers...)
}

func startServer(lc fx.Lifecycle, log *slog.Logger, srv *server.Server, shutdowner fx.Shutdowner) {
	fmt.Printf("Starting linemail %s\n", version.GetInfo())
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error("server failed", slog.Any("error", err))
					_ = shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := srv.Stop(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server stop: %w", err)
			}
			return nil
		},
	})
}
