package app

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/IBM/sarama"

	"github.com/adilzhm/textbook-service/config"
	"github.com/adilzhm/textbook-service/internal/handler"
	"github.com/adilzhm/textbook-service/internal/repository"
	"github.com/adilzhm/textbook-service/internal/server"
	"github.com/adilzhm/textbook-service/internal/service"
	"github.com/adilzhm/textbook-service/migrations"
	"github.com/adilzhm/textbook-service/pkg/kafka"
	"github.com/adilzhm/textbook-service/pkg/logger"
	"github.com/adilzhm/textbook-service/pkg/postgres"
	"go.uber.org/zap"
)

func Run(cfg *config.Config) {
	log := logger.NewLogger(cfg.Log, "textbook")
	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		log.Fatal("db init", zap.Error(err))
	}

	catalogRepo, err := repository.NewCatalogRepository(db, log)
	if err != nil {
		log.Fatal("catalog repo", zap.Error(err))
	}
	requestRepo, err := repository.NewRequestRepository(db, log)
	if err != nil {
		log.Fatal("request repo", zap.Error(err))
	}

	catalogSvc := service.NewCatalogService(catalogRepo, log)
	requestSvc := service.NewRequestService(requestRepo, log)

	var producer sarama.SyncProducer
	if len(cfg.Kafka.Addrs) > 0 {
		if producer, err = kafka.NewProducer(cfg.Kafka); err != nil {
			log.Fatal("kafka.NewProducer", zap.Error(err))
		}
	}

	h := handler.New(catalogSvc, requestSvc, producer, log)
	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))
	go func() {
		if err := srv.Run(); err != nil {
			log.Error("server run", zap.Error(err))
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM, syscall.SIGINT)
	termSig := <-sig

	log.Debug("Graceful shutdown", zap.Any("signal", termSig))

	closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	if err = srv.Stop(closeCtx); err != nil {
		log.Error("srv.Stop", zap.Error(err))
	}
	if producer != nil {
		if err = producer.Close(); err != nil {
			log.Error("producer.Close", zap.Error(err))
		}
	}
	db.Close()
	log.Info("Graceful shutdown finished")
}
