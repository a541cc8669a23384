package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pnoker/dc3/src/authservice/pkg/cache"
	"github.com/pnoker/dc3/src/authservice/pkg/client"
	"github.com/pnoker/dc3/src/authservice/pkg/ratelimit"
	"github.com/pnoker/dc3/src/authservice/pkg/rpc"
	"github.com/pnoker/dc3/src/authservice/pkg/service"
	"github.com/pnoker/dc3/src/authservice/pkg/token"
	"github.com/pnoker/dc3/src/common/api/userauth"
	"github.com/pnoker/dc3/src/common/api/userdbs"
	"github.com/pnoker/dc3/src/common/config"
	"github.com/pnoker/dc3/src/common/grpcx"
	"github.com/pnoker/dc3/src/common/logging"
	"github.com/pnoker/dc3/src/common/model"
	"github.com/pnoker/dc3/src/common/storage"
	"github.com/pnoker/dc3/src/common/telemetry"
	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
)

const serviceName = "authservice"

type settings struct {
	config.Base         `koanf:",squash"`
	storage.RedisConfig `koanf:",squash"`

	MySQLAddr   string        `koanf:"mysql_addr"`
	UserDbsAddr string        `koanf:"user_dbs_addr"`
	TokenSecret string        `koanf:"token_secret"`
	TokenTTL    time.Duration `koanf:"token_ttl"`
	RPCTimeout  time.Duration `koanf:"rpc_timeout"`

	GlobalRPS   float64 `koanf:"ratelimit_global_rps"`
	GlobalBurst int     `koanf:"ratelimit_global_burst"`
	PeerRPS     float64 `koanf:"ratelimit_peer_rps"`
	PeerBurst   int     `koanf:"ratelimit_peer_burst"`
}

func defaultSettings() *settings {
	return &settings{
		Base:        config.Base{Port: "8300", ServiceVersion: "1.0.0"},
		RedisConfig: storage.DefaultRedisConfig(),
		MySQLAddr:   storage.DefaultMySQLAddr,
		UserDbsAddr: "localhost:8301",
		TokenSecret: "dc3_token_secret",
		TokenTTL:    token.DefaultTTL,
		RPCTimeout:  3 * time.Second,
		GlobalRPS:   1000,
		GlobalBurst: 1000,
		PeerRPS:     5,
		PeerBurst:   10,
	}
}

var log *logrus.Logger

func init() {
	log = logging.New()
}

func main() {
	cfg := defaultSettings()
	if err := config.Load(cfg); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.EnableTracing {
		log.Info("Tracing enabled.")
		shutdown := telemetry.Setup(ctx, log, cfg.CollectorAddr, serviceName, cfg.ServiceVersion)
		defer shutdown()
	} else {
		log.Info("Tracing disabled.")
	}
	if cfg.DisableProfiler {
		log.Info("Profiling disabled.")
	} else {
		log.Info("Profiling enabled.")
		go telemetry.StartProfiler(log, serviceName, cfg.ServiceVersion)
	}

	db, err := storage.OpenMySQL(cfg.MySQLAddr, log)
	if err != nil {
		log.Fatalf("failed to connect to mysql: %v", err)
	}
	if err := db.AutoMigrate(&model.Token{}); err != nil {
		log.Fatalf("failed to migrate token table: %v", err)
	}

	var (
		store   cache.Store
		srvOpts []grpc.ServerOption
	)
	rdb, err := storage.OpenRedis(cfg.RedisConfig, log)
	if err != nil {
		log.Warnf("redis unavailable, caching in memory: %v", err)
		store = cache.NewMemoryStore()
	} else {
		defer rdb.Close()
		store = cache.NewRedisStore(rdb, log)
		limiter := ratelimit.NewLimiter(rdb,
			ratelimit.Bucket{RPS: cfg.GlobalRPS, Burst: cfg.GlobalBurst},
			ratelimit.Bucket{RPS: cfg.PeerRPS, Burst: cfg.PeerBurst}, log)
		srvOpts = append(srvOpts, grpc.ChainUnaryInterceptor(limiter.UnaryInterceptor()))
	}
	c := cache.New(store, log)

	conn := grpcx.MustDial(cfg.UserDbsAddr)
	defer conn.Close()
	users := client.NewUserDbsClient(userdbs.NewUserDbsServiceClient(conn), cfg.RPCTimeout, log)

	tokens := token.NewService(token.NewRepository(db), c, cfg.TokenSecret, cfg.TokenTTL, log)
	logic := service.NewUserAuthService(users, tokens, c, log)

	srv := grpcx.NewServer(log, srvOpts...)
	userauth.RegisterUserAuthServiceServer(srv, &rpc.UserAuthService{Logic: logic})

	if err := grpcx.Serve(ctx, srv, cfg.Port, log); err != nil {
		log.Fatalf("failed to serve: %v", err)
	}
}
