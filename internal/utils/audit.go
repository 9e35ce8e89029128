package utils

import (
	"context"
	"sync"
	"time"

	"github.com/sportall/app-recruit/internal/config"
	"github.com/sportall/app-recruit/internal/logging"
	"github.com/sportall/app-recruit/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// AuditWorker manages asynchronous audit logging
type AuditWorker struct {
	auditChan chan models.AuditLog
	workers   int
	wg        sync.WaitGroup
	cancel    context.CancelFunc
}

var (
	auditWorker *AuditWorker
	auditOnce   sync.Once
)

// InitAuditWorker initializes the audit worker pool
func InitAuditWorker(workers, bufferSize int) {
	auditOnce.Do(func() {
		_, cancel := context.WithCancel(context.Background())
		auditWorker = &AuditWorker{
			auditChan: make(chan models.AuditLog, bufferSize),
			workers:   workers,
			cancel:    cancel,
		}
		auditWorker.start()
	})
}

func (aw *AuditWorker) start() {
	aw.wg.Add(aw.workers)
	for i := 0; i < aw.workers; i++ {
		go func() {
			defer aw.wg.Done()
			aw.processAuditLogs()
		}()
	}

	logging.Logger.Info("audit worker started",
		zap.Int("workers", aw.workers),
		zap.Int("buffer_size", cap(aw.auditChan)))
}

// processAuditLogs drains the channel in batches
func (aw *AuditWorker) processAuditLogs() {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	var batch []models.AuditLog
	const batchSize = 100

	for {
		select {
		case entry, ok := <-aw.auditChan:
			if !ok {
				if len(batch) > 0 {
					aw.flushBatch(batch)
				}
				return
			}
			batch = append(batch, entry)
			if len(batch) >= batchSize {
				aw.flushBatch(batch)
				batch = batch[:0]
			}
		case <-ticker.C:
			if len(batch) > 0 {
				aw.flushBatch(batch)
				batch = batch[:0]
			}
		}
	}
}

// flushBatch writes a batch of audit logs with a single bulk insert
func (aw *AuditWorker) flushBatch(batch []models.AuditLog) {
	logger := logging.Logger.With(
		zap.Int("batch_size", len(batch)),
		zap.String("operation", "audit_batch_insert"),
	)

	var operations []mongo.WriteModel
	for _, entry := range batch {
		operations = append(operations, mongo.NewInsertOneModel().SetDocument(entry))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	opts := options.BulkWrite().SetOrdered(false)
	if _, err := config.MongoDB.Collection(config.AppConfig.AuditLogCollection).BulkWrite(ctx, operations, opts); err != nil {
		logger.Error("failed to insert audit log batch", zap.Error(err))
	}
}

// Stop stops the audit worker and flushes any buffered entries
func (aw *AuditWorker) Stop() {
	if aw != nil {
		aw.cancel()
		close(aw.auditChan)
		aw.wg.Wait()
	}
}

// GetAuditWorker returns the global audit worker instance
func GetAuditWorker() *AuditWorker {
	return auditWorker
}

// LogAuditEvent records an administrative action, asynchronously when the
// worker is running
func LogAuditEvent(ctx context.Context, actorID primitive.ObjectID, action, entityType, entityID string, details map[string]interface{}) error {
	if !config.AppConfig.AuditLogsEnabled {
		return nil
	}

	entry := models.AuditLog{
		ActorID:    actorID,
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Details:    details,
		Timestamp:  time.Now(),
	}

	if auditWorker == nil {
		return logAuditEventSync(ctx, entry)
	}

	select {
	case auditWorker.auditChan <- entry:
		return nil
	default:
		// Channel full, don't block the request path
		logging.Logger.Warn("audit channel full, falling back to synchronous logging",
			zap.String("action", action))
		return logAuditEventSync(ctx, entry)
	}
}

func logAuditEventSync(ctx context.Context, entry models.AuditLog) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := config.MongoDB.Collection(config.AppConfig.AuditLogCollection).InsertOne(ctx, entry)
	if err != nil {
		logging.Logger.Error("failed to insert audit log",
			zap.String("action", entry.Action),
			zap.Error(err))
	}
	return err
}
