package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"
	"github.com/sirupsen/logrus"

	agentpkg "github.com/carson-networks/budget-agent/internal/agent"
	agenthandler "github.com/carson-networks/budget-agent/internal/handlers/v1/agent"
	"github.com/carson-networks/budget-agent/internal/handlers/v1/category"
	"github.com/carson-networks/budget-agent/internal/handlers/v1/status"
	"github.com/carson-networks/budget-agent/internal/handlers/v1/transaction"
	"github.com/carson-networks/budget-agent/internal/logging"
	"github.com/carson-networks/budget-agent/internal/service"
	"github.com/carson-networks/budget-agent/internal/storage"
)

type Rest struct {
	Logger  *logrus.Logger
	Port    string
	Storage *storage.Storage
	Service *service.Service
	Agent   *agentpkg.Agent
}

// Handler builds the mux with every route registered.
func (r *Rest) Handler() http.Handler {
	mux := http.NewServeMux()

	statusHandler := status.NewHandler(r.Storage.Categories)
	mux.HandleFunc("/status", logging.LoggingWrapper("Status", r.Logger, statusHandler.Handler))

	api := humago.New(mux, huma.DefaultConfig("Budget Agent API", "1.0.0"))
	api.UseMiddleware(logging.HumaMiddleware(r.Logger))

	agenthandler.NewProcessHandler(r.Agent).Register(api)
	agenthandler.NewStreamProcessHandler(r.Agent).Register(api)

	transactions := r.Service.Transaction
	transaction.NewCreateTransactionHandler(transactions).Register(api)
	transaction.NewListTransactionsHandler(transactions).Register(api)
	transaction.NewGetTransactionHandler(transactions).Register(api)
	transaction.NewDeleteTransactionHandler(transactions).Register(api)
	transaction.NewMonthlySummaryHandler(transactions).Register(api)
	category.NewListCategoriesHandler(transactions).Register(api)

	return mux
}

// Serve listens until ctx is cancelled, then drains in-flight requests.
func (r *Rest) Serve(ctx context.Context) error {
	server := http.Server{
		Addr:              ":" + r.Port,
		Handler:           r.Handler(),
		ReadTimeout:       time.Duration(30) * time.Second,
		WriteTimeout:      time.Duration(150) * time.Second,
		IdleTimeout:       time.Duration(10) * time.Second,
		ReadHeaderTimeout: time.Duration(10) * time.Second,
	}

	shutdownErr := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 10*time.Second)
		defer cancel()
		shutdownErr <- server.Shutdown(shutdownCtx)
	}()

	r.Logger.WithField("port", r.Port).Info("HttpServer.Serve.listening")
	err := server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		r.Logger.WithError(err).Error("HttpServer.Serve.listen error")
		return err
	}

	r.Logger.Info("HttpServer.Serve.shutting down")
	return <-shutdownErr
}
