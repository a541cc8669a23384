package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pnoker/dc3/src/common/api/userdbs"
	"github.com/pnoker/dc3/src/common/config"
	"github.com/pnoker/dc3/src/common/grpcx"
	"github.com/pnoker/dc3/src/common/logging"
	"github.com/pnoker/dc3/src/common/model"
	"github.com/pnoker/dc3/src/common/storage"
	"github.com/pnoker/dc3/src/common/telemetry"
	"github.com/pnoker/dc3/src/userservice/pkg/repo"
	"github.com/pnoker/dc3/src/userservice/pkg/rpc"
	"github.com/sirupsen/logrus"
)

const serviceName = "userservice"

type settings struct {
	config.Base `koanf:",squash"`
	MySQLAddr   string `koanf:"mysql_addr"`
}

var log *logrus.Logger

func init() {
	log = logging.New()
}

func main() {
	cfg := &settings{
		Base:      config.Base{Port: "8301", ServiceVersion: "1.0.0"},
		MySQLAddr: storage.DefaultMySQLAddr,
	}
	if err := config.Load(cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.EnableTracing {
		log.Info("Tracing enabled.")
		shutdown := telemetry.Setup(ctx, log, cfg.CollectorAddr, serviceName, cfg.ServiceVersion)
		defer shutdown()
	}
	if !cfg.DisableProfiler {
		go telemetry.StartProfiler(log, serviceName, cfg.ServiceVersion)
	}

	db, err := storage.OpenMySQL(cfg.MySQLAddr, log)
	if err != nil {
		log.Fatalf("failed to connect to mysql: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("failed to migrate user table: %v", err)
	}

	handler := &rpc.UserDbsService{Repo: repo.NewUserRepository(db), Log: log}

	srv := grpcx.NewServer(log)
	userdbs.RegisterUserDbsServiceServer(srv, handler)

	log.Infof("UserService listening on port %s", cfg.Port)
	if err := grpcx.Serve(ctx, srv, cfg.Port, log); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
