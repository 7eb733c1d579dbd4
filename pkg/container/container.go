package container

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog/log"

	"clinic-backend/internal/config"
	infraCache "clinic-backend/internal/infrastructure/cache"
	"clinic-backend/internal/infrastructure/database"
	"clinic-backend/internal/infrastructure/queue"
	"clinic-backend/pkg/cache"

	appointmentHandler "clinic-backend/internal/domains/appointment/handler"
	appointmentRepo "clinic-backend/internal/domains/appointment/repository"
	appointmentService "clinic-backend/internal/domains/appointment/service"
	doctorHandler "clinic-backend/internal/domains/doctor/handler"
	doctorRepo "clinic-backend/internal/domains/doctor/repository"
	doctorService "clinic-backend/internal/domains/doctor/service"
	patientHandler "clinic-backend/internal/domains/patient/handler"
	patientRepo "clinic-backend/internal/domains/patient/repository"
	patientService "clinic-backend/internal/domains/patient/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container holds the dependency graph shared by cmd/api and cmd/worker.
type Container struct {
	// Infrastructure
	Config      *config.Config
	DB          *database.PostgresDB
	Redis       *infraCache.RedisClient
	Cache       cache.Cache
	AsynqClient *asynq.Client

	// Repositories
	DoctorRepo           doctorRepo.RepositoryInterface
	PatientRepo          patientRepo.RepositoryInterface
	AppointmentRepo      appointmentRepo.RepositoryInterface
	AppointmentEventRepo appointmentRepo.EventRepositoryInterface

	// Services
	DoctorService      doctorService.ServiceInterface
	PatientService     patientService.ServiceInterface
	AppointmentService appointmentService.ServiceInterface

	// Handlers
	DoctorHandler      *doctorHandler.DoctorHandler
	PatientHandler     *patientHandler.PatientHandler
	AppointmentHandler *appointmentHandler.AppointmentHandler
}

// NewContainer builds the graph in dependency order:
// config, infrastructure, repositories, services, handlers.
func NewContainer() (*Container, error) {
	log.Info().Msg("Initializing container...")

	c := &Container{}

	// ========================================
	// STEP 1: LOAD CONFIGURATION
	// ========================================
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = cfg

	// ========================================
	// STEP 2: INITIALIZE DATABASE
	// ========================================
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load database config: %w", err)
	}

	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	c.DB = db

	// ========================================
	// STEP 3: INITIALIZE REDIS + CACHE
	// ========================================
	redisClient := infraCache.NewRedisClient(infraCache.RedisOptions{
		Addr:     cfg.Redis.Host,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})
	if err := redisClient.Connect(ctx); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	c.Redis = redisClient
	c.Cache = infraCache.NewRedisCache(redisClient.Client, cfg.Redis.KeyPrefix)

	// ========================================
	// STEP 4: QUEUE CLIENT
	// ========================================
	if cfg.Queue.Enabled {
		c.AsynqClient = asynq.NewClient(c.RedisConnOpt())
	}

	// ========================================
	// STEP 5-7: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	log.Info().Str("environment", cfg.App.Environment).Msg("Container initialized")
	return c, nil
}

// RedisConnOpt returns the asynq connection settings for the configured Redis
func (c *Container) RedisConnOpt() asynq.RedisClientOpt {
	opts := c.Redis.Options()
	return asynq.RedisClientOpt{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
		PoolSize: opts.PoolSize,
	}
}

func (c *Container) initRepositories() {
	pool := c.DB.Pool
	ttl := c.Config.Redis.CacheTTL

	c.DoctorRepo = doctorRepo.NewPostgresRepository(pool, c.Cache, ttl)
	c.PatientRepo = patientRepo.NewPostgresRepository(pool, c.Cache, ttl)
	c.AppointmentRepo = appointmentRepo.NewPostgresRepository(pool)
	c.AppointmentEventRepo = appointmentRepo.NewEventRepository(pool)
}

func (c *Container) initServices() {
	var publisher appointmentService.EventPublisher = queue.NoopPublisher{}
	if c.AsynqClient != nil {
		publisher = queue.NewAsynqPublisher(c.AsynqClient)
	}

	c.DoctorService = doctorService.NewDoctorService(c.DoctorRepo)
	c.PatientService = patientService.NewPatientService(c.PatientRepo)
	c.AppointmentService = appointmentService.NewAppointmentService(
		c.AppointmentRepo,
		c.DoctorRepo,
		c.PatientRepo,
		publisher,
		c.AppointmentEventRepo,
	)
}

func (c *Container) initHandlers() {
	c.DoctorHandler = doctorHandler.NewDoctorHandler(c.DoctorService)
	c.PatientHandler = patientHandler.NewPatientHandler(c.PatientService)
	c.AppointmentHandler = appointmentHandler.NewAppointmentHandler(c.AppointmentService)
}

// HealthCheck pings Postgres and Redis
func (c *Container) HealthCheck(ctx context.Context) map[string]error {
	return map[string]error{
		"database": c.DB.HealthCheck(ctx),
		"redis":    c.Redis.HealthCheck(ctx),
	}
}

// Cleanup closes every open connection
func (c *Container) Cleanup() {
	if c.AsynqClient != nil {
		if err := c.AsynqClient.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close asynq client")
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close redis")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Info().Msg("Container cleaned up")
}
