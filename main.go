package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/carson-networks/budget-agent/api"
	"github.com/carson-networks/budget-agent/internal/agent"
	"github.com/carson-networks/budget-agent/internal/completion"
	"github.com/carson-networks/budget-agent/internal/config"
	"github.com/carson-networks/budget-agent/internal/logging"
	"github.com/carson-networks/budget-agent/internal/notify"
	"github.com/carson-networks/budget-agent/internal/operator"
	"github.com/carson-networks/budget-agent/internal/service"
	"github.com/carson-networks/budget-agent/internal/storage"
)

func main() {
	envConfig, err := config.ProcessEnvironmentVariables()
	if err != nil {
		logrus.WithError(err).Fatal("config.ProcessEnvironmentVariables")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logrus.WithField("storageBackend", envConfig.StorageBackend).Info("budget-agent starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := storage.NewStorage(ctx, envConfig)
	if err != nil {
		logrus.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer func() {
		if err := store.Close(context.Background()); err != nil {
			logrus.WithError(err).Warn("storage.Close")
		}
	}()

	op := operator.NewOperatorDelegator(store, envConfig.OperatorWorkers)
	op.Start()
	defer op.Stop()

	notifier, closeNotifier := newNotifier(envConfig)
	defer closeNotifier()
	svc := service.NewService(store, op, notifier)

	inserted, err := svc.Transaction.SeedCategories(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("TransactionService.SeedCategories")
		return
	}
	logrus.WithField("inserted", inserted).Info("categories seeded")

	provider := completion.NewOpenAI(completion.OpenAIConfig{
		Endpoint:      envConfig.OpenAIEndpoint,
		Model:         envConfig.OpenAIModelID,
		APIKey:        envConfig.OpenAIAPIKey,
		RetryAttempts: envConfig.ProviderRetryAttempts,
		RetryDelay:    envConfig.ProviderRetryDelay,
	})
	dispatcher := agent.NewDispatcher(svc.Transaction, envConfig.RecentTransactionCount)
	financeAgent := agent.NewAgent(provider, dispatcher, envConfig.AgentTimeout)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		httpRest := api.Rest{
			Logger:  logger,
			Port:    envConfig.Port,
			Storage: store,
			Service: svc,
			Agent:   financeAgent,
		}
		return httpRest.Serve(gctx)
	})

	if err := g.Wait(); err != nil {
		logrus.WithError(err).Error("budget-agent stopped with error")
		return
	}
	logrus.Info("budget-agent stopped")
}

// newNotifier publishes change events over AMQP when a broker is configured.
func newNotifier(envConfig *config.Config) (notify.Notifier, func()) {
	noop := func() {}
	if envConfig.AMQPURL == "" {
		return notify.Noop{}, noop
	}

	notifier, err := notify.NewAMQPNotifier(envConfig.AMQPURL, envConfig.AMQPExchange, envConfig.AMQPRoutingKey)
	if err != nil {
		logrus.WithError(err).Warn("notify.NewAMQPNotifier, change notifications disabled")
		return notify.Noop{}, noop
	}
	return notifier, func() {
		if err := notifier.Close(); err != nil {
			logrus.WithError(err).Warn("notify.AMQPNotifier.Close")
		}
	}
}
