package queue

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"

	"clinic-backend/internal/config"
	"clinic-backend/internal/shared"
	"clinic-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	queueCfg  config.QueueConfig
}

func NewScheduler(redis asynq.RedisConnOpt, queueCfg config.QueueConfig) *Scheduler {
	scheduler := asynq.NewScheduler(
		redis,
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{
		scheduler: scheduler,
		queueCfg:  queueCfg,
	}
}

func (s *Scheduler) RegisterJobs() error {
	return s.registerCleanupAppointmentEventsJob()
}

// ================================================
// Cleanup Appointment Events (daily by default)
// ================================================
func (s *Scheduler) registerCleanupAppointmentEventsJob() error {
	payload, err := json.Marshal(shared.CleanupAppointmentLogPayload{
		RetentionDays: s.queueCfg.EventRetentionDays,
	})
	if err != nil {
		return err
	}

	task := asynq.NewTask(shared.TypeCleanupAppointmentLog, payload)

	_, err = s.scheduler.Register(
		s.queueCfg.CleanupCron,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(2),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register CleanupAppointmentEvents job", err)
		return err
	}

	logger.Info("Registered CleanupAppointmentEvents", map[string]interface{}{
		"cron":           s.queueCfg.CleanupCron,
		"retention_days": s.queueCfg.EventRetentionDays,
	})
	return nil
}

func (s *Scheduler) Start() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
