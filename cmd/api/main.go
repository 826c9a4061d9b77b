package main

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/blkart/senlin/action"
	"github.com/blkart/senlin/cluster"
	"github.com/blkart/senlin/config"
	"github.com/blkart/senlin/dispatch"
	"github.com/blkart/senlin/internal/http/chi"
	"github.com/blkart/senlin/metrics"
	"github.com/blkart/senlin/receiver"
	"github.com/blkart/senlin/receiver/postgres"
	receiverredis "github.com/blkart/senlin/receiver/redis"
	"github.com/blkart/senlin/trust/keystone"
)

const TIMEOUT = 30 * time.Second

/* main is where the wiring of all packages happens: dependencies are
 * initialized, configured and handed to the packages carrying the business
 * logic. Imports point only downward: the API layer imports the domain
 * layer, which imports the storage layer.
 */

func main() {
	cfg, err := config.GetConfig()
	if err != nil {
		fmt.Println(err)
		return
	}
	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT,
	)
	defer stop()

	var repo receiver.Repository
	var recorder dispatch.Recorder
	var metricsHandler http.Handler

	switch cfg.Store {
	case "postgres":
		pgRepo, err := postgres.NewRepository(cfg.PostgresDSN)
		if err != nil {
			fmt.Println(err)
			return
		}
		repo = pgRepo
	default:
		redisRepo, err := receiverredis.NewRepository(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			fmt.Println(err)
			return
		}
		repo = redisRepo

		collector := metrics.NewRedisCollector(redisRepo.GetClient())
		recorder = collector
		exporter, err := metrics.NewOTelExporter(collector)
		if err != nil {
			fmt.Println(err)
			return
		}
		defer exporter.Shutdown(ctx)
		metricsHandler = exporter.ServeHTTP()
	}
	defer repo.Close(ctx)

	catalog := action.NewCatalog()
	if cfg.ActionsFile != "" {
		if err := catalog.Load(cfg.ActionsFile); err != nil {
			fmt.Println(err)
			return
		}
	}

	trusts := keystone.NewClient(cfg.AuthURL, cfg.ServiceTimeout())
	clusters := cluster.NewClient(cfg.ClusterURL, cfg.ServiceTimeout())
	engine := action.NewClient(cfg.EngineURL, cfg.ServiceTimeout())
	channels := receiver.ChannelAllocator{Endpoint: cfg.APIEndpoint}

	receiverService := receiver.NewService(repo, trusts, clusters, catalog, channels, nil)
	dispatcher := dispatch.NewDispatcher(repo, trusts, engine, recorder, nil)

	r := chi.Handlers(ctx, receiverService, dispatcher, metricsHandler)
	http.Handle("/", r)
	srv := &http.Server{
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Addr:         ":" + cfg.Port,
		Handler:      http.DefaultServeMux,
	}

	errShutdown := make(chan error, 1)
	go shutdown(srv, ctx, errShutdown)
	fmt.Printf("Listening on port %s\n", cfg.Port)
	err = srv.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		fmt.Println(err)
		return
	}
	err = <-errShutdown
	if err != nil {
		fmt.Println(err)
		return
	}
}

func shutdown(server *http.Server, ctxShutdown context.Context, errShutdown chan error) {
	<-ctxShutdown.Done()

	ctxTimeout, stop := context.WithTimeout(context.Background(), TIMEOUT)
	defer stop()

	err := server.Shutdown(ctxTimeout)
	switch err {
	case nil:
		fmt.Printf("\nShutting down server...\n")
		errShutdown <- nil
	case context.DeadlineExceeded:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	default:
		errShutdown <- fmt.Errorf("Forcing closing the server")
	}
}
