package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerFields 收入与支出共用的字段
type LedgerFields struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Code      string    `json:"code" gorm:"size:50;not null;uniqueIndex"`
	Date      Date      `json:"date" gorm:"type:date;not null;index"`
	Type      string    `json:"type" gorm:"size:255;not null"`
	Amount    Money     `json:"amount" gorm:"type:decimal(15,2);not null"`
	Currency  string    `json:"currency" gorm:"size:10;not null"`
	Witness   string    `json:"witness" gorm:"size:255"`
	Comments  string    `json:"comments" gorm:"type:text"`
	UserID    *uint     `json:"user_id" gorm:"index"`
	CreatedAt time.Time `json:"created_at"`
}

// DateLayout 记录日期格式
const DateLayout = "2006-01-02"

// Date 不带时间的日期，JSON 中为 "2006-01-02"
type Date struct {
	time.Time
}

// NewDate 截断到 UTC 零点
func NewDate(t time.Time) Date {
	return Date{time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// ParseDate 解析 YYYY-MM-DD
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return Date{}, err
	}
	return NewDate(t), nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(DateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(DateLayout) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return fmt.Errorf("date must be YYYY-MM-DD: %w", err)
	}
	*d = parsed
	return nil
}

// Value 以 YYYY-MM-DD 文本写入，各方言的 DATE 列均可接受
func (d Date) Value() (driver.Value, error) {
	return d.Format(DateLayout), nil
}

// Scan 兼容驱动返回 time.Time 或文本
func (d *Date) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v)
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("cannot scan %T into Date", value)
	}
}

func (d *Date) scanString(s string) error {
	// sqlite 可能返回带时间部分的文本
	if len(s) > len(DateLayout) {
		s = s[:len(DateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// GormDataType 列类型
func (Date) GormDataType() string {
	return "date"
}

// Money 金额，两位小数
type Money struct {
	decimal.Decimal
}

// NewMoney 由 decimal 构造
func NewMoney(d decimal.Decimal) Money {
	return Money{d}
}

// MustMoney 仅用于常量与测试
func MustMoney(s string) Money {
	return Money{decimal.RequireFromString(s)}
}

// MarshalJSON 输出两位小数的数字，如 50.00
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.StringFixed(2)), nil
}
