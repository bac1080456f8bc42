package service

import (
	"context"
	"fmt"
	"sort"

	"caisse/models"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// modernc 驱动注册名为 sqlite
	sqlx.BindDriver("sqlite", sqlx.QUESTION)
}

// CurrencySummary 单一币种的收支汇总，不做汇率换算
type CurrencySummary struct {
	Currency     string       `json:"currency"`
	TotalEntries models.Money `json:"total_entries"`
	TotalExits   models.Money `json:"total_exits"`
	Balance      models.Money `json:"balance"`
	EntryCount   int64        `json:"entry_count"`
	ExitCount    int64        `json:"exit_count"`
}

type currencyTotal struct {
	Currency string          `db:"currency"`
	Total    decimal.Decimal `db:"total"`
	Count    int64           `db:"n"`
}

// Reporter 汇总统计，直接在连接池上执行聚合查询
type Reporter struct {
	db *sqlx.DB
}

// NewReporter 复用 gorm 的连接池
func NewReporter(gdb *gorm.DB) (*Reporter, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	return &Reporter{db: sqlx.NewDb(sqlDB, gdb.Dialector.Name())}, nil
}

// Summary 按币种汇总，结果按币种排序
func (r *Reporter) Summary(ctx context.Context) ([]CurrencySummary, error) {
	entries, err := r.totals(ctx, models.Entry{}.TableName())
	if err != nil {
		return nil, storeFailure("summary entries", err)
	}
	exits, err := r.totals(ctx, models.Exit{}.TableName())
	if err != nil {
		return nil, storeFailure("summary exits", err)
	}

	byCurrency := make(map[string]*CurrencySummary)
	get := func(currency string) *CurrencySummary {
		s, ok := byCurrency[currency]
		if !ok {
			s = &CurrencySummary{Currency: currency}
			byCurrency[currency] = s
		}
		return s
	}
	for _, t := range entries {
		s := get(t.Currency)
		s.TotalEntries = models.NewMoney(t.Total.Round(2))
		s.EntryCount = t.Count
	}
	for _, t := range exits {
		s := get(t.Currency)
		s.TotalExits = models.NewMoney(t.Total.Round(2))
		s.ExitCount = t.Count
	}

	result := make([]CurrencySummary, 0, len(byCurrency))
	for _, s := range byCurrency {
		s.Balance = models.NewMoney(s.TotalEntries.Sub(s.TotalExits.Decimal))
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Currency < result[j].Currency
	})
	return result, nil
}

func (r *Reporter) totals(ctx context.Context, table string) ([]currencyTotal, error) {
	query := fmt.Sprintf("SELECT currency, SUM(amount) AS total, COUNT(*) AS n FROM %s GROUP BY currency", table)
	var rows []currencyTotal
	if err := r.db.SelectContext(ctx, &rows, r.db.Rebind(query)); err != nil {
		return nil, err
	}
	return rows, nil
}
