package service

import (
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// 错误类别，handler 据此映射 HTTP 状态码
var (
	ErrValidation         = errors.New("validation failure")
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrForbidden          = errors.New("forbidden")
	ErrStore              = errors.New("store failure")
)

// Failure 带面向用户提示的业务错误
type Failure struct {
	Kind    error
	Message string
	Err     error
}

func (f *Failure) Error() string {
	if f.Err != nil {
		return f.Message + ": " + f.Err.Error()
	}
	return f.Message
}

// Unwrap 同时暴露类别与底层错误
func (f *Failure) Unwrap() []error {
	if f.Err != nil {
		return []error{f.Kind, f.Err}
	}
	return []error{f.Kind}
}

func validation(msg string) error {
	return &Failure{Kind: ErrValidation, Message: msg}
}

func notFound(msg string) error {
	return &Failure{Kind: ErrNotFound, Message: msg}
}

func conflict(msg string, err error) error {
	return &Failure{Kind: ErrConflict, Message: msg, Err: err}
}

func storeFailure(op string, err error) error {
	return &Failure{Kind: ErrStore, Message: op, Err: err}
}

// MessageOf 返回可直接展示给用户的提示
func MessageOf(err error) string {
	var f *Failure
	if errors.As(err, &f) {
		return f.Message
	}
	return ""
}

// IsDuplicateKey 判断是否为唯一约束冲突，覆盖 mysql / postgres / sqlite
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Name() == "unique_violation"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// IsForeignKeyViolation 判断是否引用了不存在的记录
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1452
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code.Name() == "foreign_key_violation"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		return liteErr.Code() == sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY
	}

	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
