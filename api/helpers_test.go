package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"caisse/config"
	"caisse/database"
	"caisse/models"
	"caisse/service"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type testEnv struct {
	db      *gorm.DB
	creds   *service.Credentials
	hook    *test.Hook
	entries *service.EntryLedger
	exits   *service.ExitLedger
}

// newTestEnv 内存 sqlite，已写入 admin/admin123
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	log, hook := test.NewNullLogger()
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

	creds := service.NewCredentials(bcrypt.MinCost)
	seed := database.AdminSeed{Username: "admin", Password: "admin123"}
	require.NoError(t, database.Bootstrap(context.Background(), db, creds, seed, log))

	types := models.GetOfferingTypes()
	return &testEnv{
		db:      db,
		creds:   creds,
		hook:    hook,
		entries: service.NewEntryLedger(db, service.EntryKind(types), log),
		exits:   service.NewExitLedger(db, service.ExitKind(types, []string{models.OtherExpenseType}, false), log),
	}
}

// setupMockDB gorm(mysql) + sqlmock，用于模拟数据库故障
func setupMockDB(t *testing.T) (sqlmock.Sqlmock, *gorm.DB) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	return mock, gormDB
}

func setUserIDMiddleware(userID uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", userID)
		c.Next()
	}
}

func doJSON(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, v interface{}) envelope {
	t.Helper()
	resp := decode(t, w)
	require.NoError(t, json.Unmarshal(resp.Data, v))
	return resp
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
