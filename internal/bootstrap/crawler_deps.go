package bootstrap

import (
	"time"

	outcache "crawler_server/adapter/out/cache"
	"crawler_server/adapter/out/persistence"
	"crawler_server/adapter/out/snapshot"
	"crawler_server/adapter/out/source"
	"crawler_server/config"
	"crawler_server/core/port/in"
	"crawler_server/core/port/out"
	"crawler_server/core/service/campaign"
	"crawler_server/core/service/ingest"
	"crawler_server/infra/database"
	"crawler_server/pkg/cache"
	"crawler_server/pkg/httputil"
	"crawler_server/pkg/logger"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
)

type Dependencies struct {
	Config *config.Config
	DB     *pgxpool.Pool
	SQLDB  *sqlx.DB
	Redis  *redis.Client

	// Outbound adapters
	Cache          out.Cache
	CampaignRepo   out.CampaignRepository
	SnapshotWriter out.SnapshotWriter
	Sources        []out.Source
	Enricher       out.DetailEnricher
	RunLock        *outcache.RunLock

	// Services
	IngestService   in.IngestService
	CampaignService in.CampaignService
}

func NewDependencies(cfg *config.Config) (*Dependencies, func(), error) {
	deps := &Dependencies{Config: cfg}
	var cleanups []func()

	// Database (pgxpool for health checks)
	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	deps.DB = db
	cleanups = append(cleanups, func() { db.Close() })

	// Database (sqlx for the repository adapter)
	sqlDB, err := database.NewSQLx(cfg.DatabaseURL)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	deps.SQLDB = sqlDB
	cleanups = append(cleanups, func() { sqlDB.Close() })

	// Redis - 없어도 동작은 하되 키 캐시와 런 락이 비활성화됨
	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		logger.WithError(err).Warn("Redis connection failed, key cache disabled")
	} else {
		deps.Redis = redisClient
		cleanups = append(cleanups, func() { redisClient.Close() })
		deps.Cache = cache.NewRedisCache(redisClient)
	}

	// Campaign repository, wrapped with the fingerprint key cache when Redis
	// is available
	deps.CampaignRepo = persistence.NewCampaignRepository(sqlDB)
	if deps.Cache != nil {
		keyCacheTTL := time.Duration(cfg.KeyCacheTTLHour) * time.Hour
		deps.CampaignRepo = outcache.NewCachedCampaignRepository(deps.CampaignRepo, deps.Cache, keyCacheTTL)
		deps.RunLock = outcache.NewRunLock(deps.Cache, cfg.RunLockTTL)
	} else {
		deps.RunLock = outcache.NewLocalRunLock(cfg.RunLockTTL)
	}

	// Snapshot writer
	writer, err := snapshot.NewFileWriter(cfg.SnapshotDir)
	if err != nil {
		logger.WithError(err).Warn("snapshot dir unavailable, snapshots disabled")
	} else {
		deps.SnapshotWriter = writer
	}

	// Source adapters and detail enricher
	deps.Sources = source.BuildSources(cfg.EnabledSources, httputil.ListingClient())
	deps.Enricher = source.NewPageEnricher(httputil.DetailClient())

	// Ingest service (merge engine)
	deps.IngestService = ingest.NewService(
		deps.Sources,
		deps.CampaignRepo,
		deps.Enricher,
		deps.SnapshotWriter,
		ingest.Config{EnrichWorkers: cfg.EnrichWorkers},
	)

	// Read-side service
	deps.CampaignService = campaign.NewService(deps.CampaignRepo)

	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	return deps, cleanup, nil
}
