package gormrepo

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/nikitaxru/rapor/repository"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate("students.get", nil))

	err := translate("students.get", gorm.ErrRecordNotFound)
	assert.True(t, errors.Is(err, repository.ErrNotFound))

	pgErr := &pgconn.PgError{
		Code:    uniqueViolation,
		Message: "duplicate key value violates unique constraint \"students_student_id_key\"",
		Detail:  "Key (student_id)=(S001) already exists.",
	}
	err = translate("students.create", errors.Wrap(pgErr, "insert"))
	assert.True(t, errors.Is(err, repository.ErrDuplicate))
	assert.Equal(t, "Key (student_id)=(S001) already exists.", err.Error())

	err = translate("students.create", &pgconn.PgError{Code: uniqueViolation, Message: "duplicate key"})
	assert.Equal(t, "duplicate key", err.Error())

	boom := errors.New("connection reset")
	err = translate("grades.list", boom)
	var re *repository.Error
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "grades.list", re.Op)
	assert.True(t, errors.Is(err, boom))
	assert.Equal(t, "grades.list: connection reset", err.Error())
}

func TestGormLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewGormLogger(zap.New(core)).(*GormLogger)
	l.SlowThreshold = 500 * time.Millisecond

	sql := func() (string, int64) { return "SELECT 1", 1 }
	l.Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)
	l.Trace(context.Background(), time.Now(), sql, errors.New("boom"))
	l.Trace(context.Background(), time.Now(), sql, gorm.ErrRecordNotFound)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "slow query", entries[0].Message)
	assert.Equal(t, "query failed", entries[1].Message)

	silent := l.LogMode(gormLogger.Silent)
	silent.Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)
	assert.Len(t, logs.All(), 2)
}
