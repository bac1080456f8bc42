package service

import (
	"context"
	"testing"

	"caisse/config"
	"caisse/database"
	"caisse/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newTestLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}

// newTestDB 内存 sqlite，已建表并写入 admin/admin123
func newTestDB(t *testing.T) (*gorm.DB, *Credentials) {
	t.Helper()
	log, _ := newTestLogger()
	db, err := database.Open(config.DatabaseConfig{
		Driver:       database.DriverSQLite,
		DSN:          "file::memory:?_pragma=foreign_keys(1)",
		MaxOpenConns: 1,
		LogLevel:     "silent",
	}, log)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	creds := NewCredentials(bcrypt.MinCost)
	seed := database.AdminSeed{Username: "admin", Password: "admin123"}
	require.NoError(t, database.Bootstrap(context.Background(), db, creds, seed, log))
	return db, creds
}

func amount(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strPtr(s string) *string {
	return &s
}

func entryInput(code, date, typ, value, currency string) LedgerInput {
	return LedgerInput{Code: code, Date: date, Type: typ, Amount: amount(value), Currency: currency}
}

func newEntryLedger(db *gorm.DB) *EntryLedger {
	log, _ := newTestLogger()
	return NewEntryLedger(db, EntryKind(models.GetOfferingTypes()), log)
}

func newExitLedger(db *gorm.DB, lenient bool) (*ExitLedger, *test.Hook) {
	log, hook := newTestLogger()
	kind := ExitKind(models.GetOfferingTypes(), []string{models.OtherExpenseType}, lenient)
	return NewExitLedger(db, kind, log), hook
}
