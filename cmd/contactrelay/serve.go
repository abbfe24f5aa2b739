package main

import (
	"cmp"
	"context"
	"log/slog"
	"net"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/iotx/contactrelay/modules/contact"
	"github.com/iotx/contactrelay/pkg/clientip"
	"github.com/iotx/contactrelay/pkg/email"
	"github.com/iotx/contactrelay/pkg/environment"
	"github.com/iotx/contactrelay/pkg/httpserver"
	"github.com/iotx/contactrelay/pkg/logger"
	"github.com/iotx/contactrelay/pkg/ratelimit"
	"github.com/iotx/contactrelay/pkg/redis"
	"github.com/iotx/contactrelay/pkg/requestid"
	contactsvc "github.com/iotx/contactrelay/svc/contact"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the contact relay HTTP server",
	Long: `Serve GET /api/health and POST /api/contact.

Submissions are limited per client IP, validated and forwarded to
CONTACT_EMAIL through the transport selected by MAIL_TRANSPORT.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

type verifier interface {
	Verify(ctx context.Context) error
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	env := cfg.environment()

	log, err := newLogger(cfg.Log, env)
	if err != nil {
		return err
	}
	logger.SetAsDefault(log)

	mailCfg, err := cfg.mail()
	if err != nil {
		return err
	}
	if env.Verbose() && (mailCfg.Transport == "" || mailCfg.Transport == email.TransportSMTP) {
		log.Info("email configuration",
			slog.String("host", mailCfg.SMTP.Host),
			slog.Int("port", mailCfg.SMTP.Port),
			slog.Bool("secure", mailCfg.SMTP.Secure()),
			slog.String("user", mailCfg.SMTP.Username),
			slog.String("pass", "********"))
	}

	sender, err := email.NewSender(mailCfg, env)
	if err != nil {
		return err
	}
	log.Info("mail transport selected",
		logger.Transport(cmp.Or(mailCfg.Transport, email.TransportSMTP)),
		slog.String("recipient", cfg.Contact.Recipient))
	if v, ok := sender.(verifier); ok {
		go verifyTransport(ctx, v, log, env)
	}

	store, closeStore, err := rateLimitStore(ctx, cfg.Redis, log)
	if err != nil {
		return err
	}
	defer closeStore()

	limiter, err := ratelimit.NewFixedWindow(store, cfg.Contact.RateLimit, cfg.Contact.RateWindow)
	if err != nil {
		return err
	}

	svc, err := contactsvc.NewService(limiter, sender, cfg.Contact.Recipient,
		contactsvc.WithLogger(log),
		contactsvc.WithEnvironment(env))
	if err != nil {
		return err
	}

	router := contact.Router(contact.RouterOptions{
		API: contact.NewModule(svc, env,
			contact.WithBodyLimit(cfg.Web.BodyLimit),
			contact.WithLogger(log)),
		FrontendURL:      cfg.Web.FrontendURL,
		GlobalRateLimit:  cfg.Web.GlobalRateLimit,
		GlobalRateWindow: cfg.Web.GlobalRateWindow,
		Env:              env,
		ClientIP:         clientip.New(),
		Logger:           log,
	})

	srv := httpserver.NewFromConfig(cfg.HTTP,
		httpserver.WithLogger(log),
		httpserver.WithErrorLog(log),
		httpserver.WithBaseContext(environment.WithContext(context.Background(), env)),
		httpserver.WithStartHook(func(ctx context.Context, addr net.Addr) {
			log.InfoContext(ctx, "contact relay ready",
				logger.Event("relay.ready"),
				slog.String("addr", addr.String()),
				slog.String("environment", env.String()),
				slog.String("frontend", cfg.Web.FrontendURL))
		}),
	)
	return srv.Run(ctx, router)
}

// newLogger builds the process logger. Records logged with a request context
// carry its request id and client IP.
func newLogger(c logger.Config, env environment.Environment, opts ...logger.Option) (*slog.Logger, error) {
	opts = append([]logger.Option{
		logger.WithContextExtractors(requestid.LoggerExtractor(), clientip.LoggerExtractor()),
	}, opts...)
	return logger.NewFromConfig(c, env, serviceName, opts...)
}

// verifyTransport checks the mail transport once at startup. A failure is
// logged only; submissions still attempt delivery.
func verifyTransport(ctx context.Context, v verifier, log *slog.Logger, env environment.Environment) {
	err := v.Verify(ctx)
	if err == nil {
		log.InfoContext(ctx, "email transport is ready to send messages", logger.Event("email.verified"))
		return
	}
	attrs := []any{
		logger.Event("email.verify_failed"),
		logger.Error(err),
		slog.String("code", email.ErrorCode(err)),
	}
	if env.Verbose() {
		attrs = append(attrs, slog.Any("tips", email.Classify(err).Tips()))
	}
	log.ErrorContext(ctx, "email transport verification failed", attrs...)
}

func rateLimitStore(ctx context.Context, cfg redis.Config, log *slog.Logger) (ratelimit.Store, func(), error) {
	if !cfg.Enabled() {
		log.Info("rate limits kept in memory", logger.Component("ratelimit"))
		return ratelimit.NewMemoryStore(), func() {}, nil
	}

	client, err := redis.Connect(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	logRedisHealth(ctx, client, log)
	return ratelimit.NewRedisStore(client, ratelimit.WithKeyPrefix("contactrelay:ratelimit:")), func() {
		closeRedis(client, log)
	}, nil
}

// logRedisHealth pings client once so a degraded store shows up at startup.
func logRedisHealth(ctx context.Context, client goredis.UniversalClient, log *slog.Logger) {
	if err := redis.Healthcheck(client)(ctx); err != nil {
		log.WarnContext(ctx, "redis health check failed", logger.Component("ratelimit"), logger.Error(err))
		return
	}
	log.InfoContext(ctx, "rate limits shared through redis", logger.Component("ratelimit"))
}

func closeRedis(client *goredis.Client, log *slog.Logger) {
	if err := client.Close(); err != nil {
		log.Warn("closing redis client", logger.Error(err))
	}
}
