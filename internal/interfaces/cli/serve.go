package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/turtacn/TalentMatch-AI/internal/application/job"
	"github.com/turtacn/TalentMatch-AI/internal/application/recommendation"
	appresume "github.com/turtacn/TalentMatch-AI/internal/application/resume"
	"github.com/turtacn/TalentMatch-AI/internal/application/screening"
	"github.com/turtacn/TalentMatch-AI/internal/application/sourcing"
	"github.com/turtacn/TalentMatch-AI/internal/config"
	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/database/postgres"
	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/database/postgres/repositories"
	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/database/redis"
	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/monitoring/logging"
	prommetrics "github.com/turtacn/TalentMatch-AI/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/TalentMatch-AI/internal/infrastructure/storage/minio"
	"github.com/turtacn/TalentMatch-AI/internal/intelligence/oracle"
	httpserver "github.com/turtacn/TalentMatch-AI/internal/interfaces/http"
	"github.com/turtacn/TalentMatch-AI/internal/interfaces/http/handlers"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the TalentMatch-AI API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	log := logging.New(logging.Options{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		Development: cfg.Log.Development,
	})
	defer log.Sync()
	logging.SetDefault(log)

	log.Info("starting TalentMatch-AI API server",
		logging.String("version", Version),
		logging.String("commit", GitCommit),
		logging.String("addr", cfg.Server.Addr()))

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := prommetrics.New()

	pool, err := postgres.Connect(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	redisClient, err := redis.NewClient(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	defer redisClient.Close()
	cache := redis.NewCache(redisClient, cfg.Redis.KeyPrefix, cfg.Redis.CacheTTL, log)
	locks := redis.NewLockManager(redisClient, cfg.Redis.KeyPrefix, cfg.Redis.LockTTL)

	blobs, err := minio.NewStore(ctx, cfg.Minio)
	if err != nil {
		return err
	}

	var events kafka.Producer
	if cfg.Kafka.Enabled {
		events = kafka.NewProducer(cfg.Kafka, log)
	} else {
		events = kafka.NopProducer()
	}
	defer events.Close()

	oracleClient := oracle.New(cfg.Oracle, log, metrics)

	jobRepo := repositories.NewJobRepo(pool)
	resumeRepo := repositories.NewResumeRepo(pool)
	seekerRepo := repositories.NewJobSeekerRepo(pool)
	recRepo := repositories.NewRecommendationRepo(pool)

	jobSvc := job.NewService(jobRepo, cache, log)
	resumeSvc := appresume.NewService(oracleClient, resumeRepo, blobs, locks, events,
		cfg.Server.MaxUploadBytes, log)
	screeningSvc := screening.NewService(oracleClient, jobRepo, resumeRepo, seekerRepo,
		events, metrics, log)
	recSvc := recommendation.NewService(oracleClient, recRepo, resumeRepo, jobRepo,
		locks, events, metrics, log)
	sourcingSvc := sourcing.NewService(oracleClient, jobRepo, resumeRepo, seekerRepo, log)

	h := httpserver.Handlers{
		Health: handlers.NewHealthHandler(map[string]handlers.Pinger{
			"postgres": pool.Ping,
			"redis": func(ctx context.Context) error {
				return redisClient.Ping(ctx).Err()
			},
		}),
		Job:            handlers.NewJobHandler(jobSvc),
		Resume:         handlers.NewResumeHandler(resumeSvc),
		Screening:      handlers.NewScreeningHandler(screeningSvc),
		Recommendation: handlers.NewRecommendationHandler(recSvc),
		Sourcing:       handlers.NewSourcingHandler(sourcingSvc),
	}

	engine := httpserver.NewRouter(cfg, h, metrics, log)
	srv := httpserver.NewServer(cfg.Server, engine, log)
	return srv.Run(ctx, cfg.Server.ShutdownTimeout)
}
