// Package gormrepo implements repository.Set on PostgreSQL through gorm.
package gormrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/utils"

	"github.com/nikitaxru/rapor/repository"
)

const uniqueViolation = "23505"

// Open connects to PostgreSQL. PreferSimpleProtocol keeps it usable behind PgBouncer.
func Open(dsn string, logger *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: NewGormLogger(logger),
	})
	if err != nil {
		return nil, errors.Wrap(err, "connect database")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "database pool")
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(60 * time.Second)
	sqlDB.SetConnMaxLifetime(10 * time.Minute)
	return db, nil
}

func NewSet(db *gorm.DB) repository.Set {
	return repository.Set{
		Students:   &studentRepository{db: db},
		Teachers:   &teacherRepository{db: db},
		Classes:    &classRepository{db: db},
		Grades:     &gradeRepository{db: db},
		Attendance: &attendanceRepository{db: db},
	}
}

// translate maps gorm and postgres errors onto the repository taxonomy.
func translate(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.NotFound(op)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		msg := pgErr.Detail
		if msg == "" {
			msg = pgErr.Message
		}
		return repository.Duplicate(op, msg)
	}
	return repository.Wrap(op, err)
}

// GormLogger sends gorm traces to zap; queries slower than SlowThreshold are warnings.
type GormLogger struct {
	logger        *zap.Logger
	SlowThreshold time.Duration
	LogLevel      gormLogger.LogLevel
}

func NewGormLogger(logger *zap.Logger) gormLogger.Interface {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormLogger{
		logger:        logger.Named("gorm"),
		SlowThreshold: 200 * time.Millisecond,
		LogLevel:      gormLogger.Warn,
	}
}

func (l *GormLogger) LogMode(level gormLogger.LogLevel) gormLogger.Interface {
	cp := *l
	cp.LogLevel = level
	return &cp
}

func (l *GormLogger) Info(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Info {
		l.logger.Sugar().Infof(msg, data...)
	}
}

func (l *GormLogger) Warn(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Warn {
		l.logger.Sugar().Warnf(msg, data...)
	}
}

func (l *GormLogger) Error(ctx context.Context, msg string, data ...interface{}) {
	if l.LogLevel >= gormLogger.Error {
		l.logger.Sugar().Errorf(msg, data...)
	}
}

func (l *GormLogger) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	if l.LogLevel <= gormLogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	sql, rows := fc()
	fields := []zap.Field{
		zap.String("caller", utils.FileWithLineNum()),
		zap.Duration("elapsed", elapsed),
		zap.Int64("rows", rows),
		zap.String("sql", sql),
	}
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound) && l.LogLevel >= gormLogger.Error:
		l.logger.Error("query failed", append(fields, zap.Error(err))...)
	case elapsed > l.SlowThreshold && l.LogLevel >= gormLogger.Warn:
		l.logger.Warn("slow query", fields...)
	case l.LogLevel >= gormLogger.Info:
		l.logger.Debug("query", fields...)
	}
}
