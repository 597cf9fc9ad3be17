package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel) (*GormZapLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zap.DebugLevel)
	l := NewGormZapLogger(zap.New(core))
	l.LogLevel = level
	return l, logs
}

func traceFunc(sql string) func() (string, int64) {
	return func() (string, int64) { return sql, 1 }
}

func TestTraceLogsFailedStatement(t *testing.T) {
	l, logs := newObservedGormLogger(gormlogger.Warn)

	l.Trace(context.Background(), time.Now(), traceFunc("INSERT INTO participants"), errors.New("constraint failed"))

	entries := logs.FilterMessage("Query failed").All()
	if len(entries) != 1 {
		t.Fatalf("failed-statement entries = %d, want 1", len(entries))
	}
	if entries[0].Level != zap.ErrorLevel {
		t.Errorf("level = %v, want Error", entries[0].Level)
	}
}

func TestTraceIgnoresRecordNotFound(t *testing.T) {
	l, logs := newObservedGormLogger(gormlogger.Warn)

	l.Trace(context.Background(), time.Now(), traceFunc("SELECT * FROM participants"), gorm.ErrRecordNotFound)

	if n := logs.Len(); n != 0 {
		t.Errorf("entries = %d, want 0 for record-not-found", n)
	}
}

func TestTraceWarnsOnSlowQuery(t *testing.T) {
	l, logs := newObservedGormLogger(gormlogger.Warn)

	begin := time.Now().Add(-2 * slowQueryThreshold)
	l.Trace(context.Background(), begin, traceFunc("SELECT * FROM trial_responses"), nil)

	entries := logs.FilterMessage("Slow query").All()
	if len(entries) != 1 {
		t.Fatalf("slow-query entries = %d, want 1", len(entries))
	}
	if entries[0].Level != zap.WarnLevel {
		t.Errorf("level = %v, want Warn", entries[0].Level)
	}
}

func TestTraceDropsRoutineQueries(t *testing.T) {
	l, logs := newObservedGormLogger(gormlogger.Warn)

	l.Trace(context.Background(), time.Now(), traceFunc("SELECT 1"), nil)

	if n := logs.Len(); n != 0 {
		t.Errorf("entries = %d, want 0 for a fast successful query", n)
	}
}

func TestTraceSilent(t *testing.T) {
	l, logs := newObservedGormLogger(gormlogger.Silent)

	l.Trace(context.Background(), time.Now(), traceFunc("INSERT"), errors.New("boom"))

	if n := logs.Len(); n != 0 {
		t.Errorf("entries = %d, want 0 at Silent", n)
	}
}
