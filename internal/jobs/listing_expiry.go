// File: internal/jobs/listing_expiry.go
package jobs

import (
	"context"
	"fmt"
	"time"

	"habitalink_backend/internal/config"
	"habitalink_backend/internal/platform/database"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ListingExpiryJob periodically expires active listings whose lifespan has
// run out. It operates through raw SQL on the table name the startup probe
// resolved, since the expires_at column is added by the probe rather than by
// the canonical migration.
type ListingExpiryJob struct {
	db            *gorm.DB
	compat        *database.Compat
	logger        *zap.Logger
	cfg           *config.Config
	cronScheduler *cron.Cron
}

// NewListingExpiryJob creates a new ListingExpiryJob.
func NewListingExpiryJob(
	db *gorm.DB,
	compat *database.Compat,
	logger *zap.Logger,
	cfg *config.Config,
) *ListingExpiryJob {
	scheduler := cron.New(cron.WithLogger(NewCronLogger(logger.Named("cron"))))

	return &ListingExpiryJob{
		db:            db,
		compat:        compat,
		logger:        logger.Named("ListingExpiryJob"),
		cfg:           cfg,
		cronScheduler: scheduler,
	}
}

// SetupAndStart schedules and starts the cron job. When the schema probe did
// not resolve an expiry column the job stays unscheduled, which is degraded
// behavior rather than an error.
func (j *ListingExpiryJob) SetupAndStart() error {
	if j.compat == nil || !j.compat.ExpiryAvailable {
		j.logger.Warn("Expiry column unavailable in the live schema. Job will not run.")
		return nil
	}

	jobSpec := j.cfg.ListingExpiryJobSchedule
	if jobSpec == "" {
		j.logger.Warn("Listing expiry job schedule not defined (LISTING_EXPIRY_JOB_SCHEDULE). Job will not run.")
		return nil
	}

	jobID, err := j.cronScheduler.AddFunc(jobSpec, j.runJob)
	if err != nil {
		j.logger.Error("Failed to schedule listing expiry job", zap.String("spec", jobSpec), zap.Error(err))
		return err
	}

	j.logger.Info("Listing expiry job scheduled", zap.String("spec", jobSpec), zap.Any("jobID", jobID))
	j.cronScheduler.Start()
	return nil
}

// runJob backfills missing expiry dates, then flips overdue active listings
// to expired.
func (j *ListingExpiryJob) runJob() {
	j.logger.Info("Starting listing expiry job run...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	table := j.compat.ListingTable

	backfill := fmt.Sprintf(
		"UPDATE %s SET expires_at = created_at + make_interval(days => ?) WHERE expires_at IS NULL", table)
	if err := j.db.WithContext(ctx).Exec(backfill, j.cfg.DefaultListingLifespanDays).Error; err != nil {
		j.logger.Error("Listing expiry backfill failed", zap.Error(err))
		return
	}

	expire := fmt.Sprintf(
		"UPDATE %s SET status = 'expired' WHERE status = 'active' AND expires_at <= ?", table)
	result := j.db.WithContext(ctx).Exec(expire, time.Now().UTC())
	if result.Error != nil {
		j.logger.Error("Listing expiry job run failed", zap.Error(result.Error))
		return
	}
	j.logger.Info("Listing expiry job run completed", zap.Int64("listings_expired", result.RowsAffected))
}

// Stop gracefully stops the cron scheduler.
func (j *ListingExpiryJob) Stop() {
	if j.cronScheduler != nil {
		j.logger.Info("Stopping listing expiry job scheduler...")
		stopCtx := j.cronScheduler.Stop()
		select {
		case <-stopCtx.Done():
			j.logger.Info("Listing expiry job scheduler stopped gracefully.")
		case <-time.After(10 * time.Second):
			j.logger.Warn("Listing expiry job scheduler stop timed out.")
		}
	}
}

// --- Cron Logger Adapter ---

// cronLogger adapts zap.Logger to cron.Logger interface.
type cronLogger struct {
	zl *zap.Logger
}

// NewCronLogger creates a new cronLogger.
func NewCronLogger(zl *zap.Logger) cron.Logger {
	return &cronLogger{zl: zl}
}

// Info logs routine messages from cron.
func (cl *cronLogger) Info(msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	cl.zl.Info(msg, fields...)
}

// Error logs error messages from cron.
func (cl *cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := cl.parseKeysAndValues(keysAndValues...)
	fields = append(fields, zap.Error(err))
	cl.zl.Error(msg, fields...)
}

func (cl *cronLogger) parseKeysAndValues(keysAndValues ...interface{}) []zap.Field {
	var fields []zap.Field
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 < len(keysAndValues) {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), keysAndValues[i+1]))
		} else {
			fields = append(fields, zap.Any(fmt.Sprintf("%v", keysAndValues[i]), "MISSING_VALUE"))
		}
	}
	return fields
}
