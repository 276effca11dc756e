// package repositories provides persistence layer implementations for all model types.
//
// Each repository implements models.Repository[T] for a specific entity type on top of gorm.
package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/scaffold/internal/models"
	"github.com/desertthunder/scaffold/internal/shared"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const slowQueryThreshold = 200 * time.Millisecond

// Open wraps an existing SQLite connection in a [gorm.DB].
//
// The schema is owned by the embedded SQL migrations, so gorm never migrates tables itself.
// Query logs go to logger; SQL traces are only emitted when logger is at debug level.
func Open(db *sql.DB, logger *log.Logger) (*gorm.DB, error) {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	level := gormlogger.Warn
	if logger.GetLevel() <= log.DebugLevel {
		level = gormlogger.Info
	}

	gdb, err := gorm.Open(sqlite.Dialector{Conn: db}, &gorm.Config{
		Logger: gormlogger.New(gormWriter{logger: shared.WithLogger(logger, "component", "gorm")}, gormlogger.Config{
			SlowThreshold:             slowQueryThreshold,
			LogLevel:                  level,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm: %w", err)
	}

	return gdb, nil
}

// gormWriter adapts a [log.Logger] to gorm's logger.Writer.
type gormWriter struct {
	logger *log.Logger
}

func (w gormWriter) Printf(format string, args ...any) {
	w.logger.Debugf(format, args...)
}

// requirePersisted rejects entities the storage engine hasn't assigned an id to yet.
func requirePersisted(kind string, e models.Entity) (int64, error) {
	id := e.Base().GetID()
	if id == nil {
		return 0, fmt.Errorf("%w: cannot modify unsaved %s", shared.ErrNotPersisted, kind)
	}
	return *id, nil
}

// requireNew rejects entities that already carry an id.
func requireNew(kind string, e models.Entity) error {
	if id := e.Base().GetID(); id != nil {
		return fmt.Errorf("%w: %s %d", shared.ErrAlreadyPersisted, kind, *id)
	}
	return nil
}

// notFound converts gorm's record-not-found error into [shared.ErrNotFound].
func notFound(err error, kind string, id int64) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s %d", shared.ErrNotFound, kind, id)
	}
	return fmt.Errorf("failed to query %s: %w", kind, err)
}

// affected reports a missing row when a write touched nothing.
func affected(result *gorm.DB, action, kind string, id int64) error {
	if result.Error != nil {
		return fmt.Errorf("failed to %s %s: %w", action, kind, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: %s %d", shared.ErrNotFound, kind, id)
	}
	return nil
}
