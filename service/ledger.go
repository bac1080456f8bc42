package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"caisse/models"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	maxCodeLength     = 50
	maxCurrencyLength = 10
)

// decimal(15,2) 的整数部分上限
var maxAmount = decimal.New(1, 13)

// LedgerKind 描述一类收支记录的校验规则与提示语
type LedgerKind struct {
	Name             string
	AllowedTypes     []string
	CommentsRequired bool
	// Deprecated: 非法类型只告警不拒绝
	LenientTypes bool

	MissingMessage     string
	InvalidTypeMessage string
	NotFoundMessage    string
	DuplicateMessage   string
}

// EntryKind 收入：类型必须属于奉献类型
func EntryKind(offeringTypes []string) LedgerKind {
	return LedgerKind{
		Name:               "entry",
		AllowedTypes:       append([]string(nil), offeringTypes...),
		MissingMessage:     "Code, date, type d'offrande, montant et devise sont requis.",
		InvalidTypeMessage: "Type d'offrande invalide.",
		NotFoundMessage:    "Entrée non trouvée.",
		DuplicateMessage:   "Une entrée avec ce code existe déjà.",
	}
}

// ExitKind 支出：奉献类型加额外类型，备注必填
func ExitKind(offeringTypes, extraTypes []string, lenient bool) LedgerKind {
	allowed := append([]string(nil), offeringTypes...)
	for _, t := range extraTypes {
		if !contains(allowed, t) {
			allowed = append(allowed, t)
		}
	}
	return LedgerKind{
		Name:               "exit",
		AllowedTypes:       allowed,
		CommentsRequired:   true,
		LenientTypes:       lenient,
		MissingMessage:     "Code, date, type de transaction, montant, devise et commentaires sont requis.",
		InvalidTypeMessage: "Type de transaction invalide.",
		NotFoundMessage:    "Sortie non trouvée.",
		DuplicateMessage:   "Une sortie avec ce code existe déjà.",
	}
}

// LedgerInput 新建记录的请求体
type LedgerInput struct {
	Code     string           `json:"code"`
	Date     string           `json:"date"`
	Type     string           `json:"type"`
	Amount   *decimal.Decimal `json:"amount"`
	Currency string           `json:"currency"`
	Witness  string           `json:"witness"`
	Comments string           `json:"comments"`
	UserID   *uint            `json:"user_id"`
}

// LedgerPatch 修改记录的请求体，nil 字段保持原值
// code 与 user_id 不可修改
type LedgerPatch struct {
	Date     *string          `json:"date"`
	Type     *string          `json:"type"`
	Amount   *decimal.Decimal `json:"amount"`
	Currency *string          `json:"currency"`
	Witness  *string          `json:"witness"`
	Comments *string          `json:"comments"`
}

// LedgerRecord 收入与支出模型的公共约束
type LedgerRecord[T any] interface {
	*T
	Fields() *models.LedgerFields
}

// Ledger 收支记录存储，收入与支出共用同一套逻辑
type Ledger[T any, P LedgerRecord[T]] struct {
	db   *gorm.DB
	kind LedgerKind
	log  logrus.FieldLogger
}

// EntryLedger 收入记录
type EntryLedger = Ledger[models.Entry, *models.Entry]

// ExitLedger 支出记录
type ExitLedger = Ledger[models.Exit, *models.Exit]

// NewLedger 创建记录存储
func NewLedger[T any, P LedgerRecord[T]](db *gorm.DB, kind LedgerKind, log logrus.FieldLogger) *Ledger[T, P] {
	return &Ledger[T, P]{db: db, kind: kind, log: log}
}

// NewEntryLedger 创建收入记录存储
func NewEntryLedger(db *gorm.DB, kind LedgerKind, log logrus.FieldLogger) *EntryLedger {
	return NewLedger[models.Entry, *models.Entry](db, kind, log)
}

// NewExitLedger 创建支出记录存储
func NewExitLedger(db *gorm.DB, kind LedgerKind, log logrus.FieldLogger) *ExitLedger {
	return NewLedger[models.Exit, *models.Exit](db, kind, log)
}

// Kind 返回校验规则
func (l *Ledger[T, P]) Kind() LedgerKind {
	return l.kind
}

// Create 校验后写入，重复 code 返回冲突
func (l *Ledger[T, P]) Create(ctx context.Context, in LedgerInput) (*T, error) {
	fields, err := l.build(in.Code, in.Date, in.Type, in.Amount, in.Currency, in.Witness, in.Comments)
	if err != nil {
		return nil, err
	}
	fields.UserID = in.UserID

	rec := new(T)
	*P(rec).Fields() = fields
	if err := l.db.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, l.writeErr("create", err)
	}
	return rec, nil
}

// List 按日期倒序，同日按 id 倒序
func (l *Ledger[T, P]) List(ctx context.Context) ([]T, error) {
	return l.ListBetween(ctx, models.Date{}, models.Date{})
}

// ListBetween 闭区间过滤，零值表示不限
func (l *Ledger[T, P]) ListBetween(ctx context.Context, from, to models.Date) ([]T, error) {
	q := l.db.WithContext(ctx)
	if !from.IsZero() {
		q = q.Where(clause.Gte{Column: clause.Column{Name: "date"}, Value: from})
	}
	if !to.IsZero() {
		q = q.Where(clause.Lte{Column: clause.Column{Name: "date"}, Value: to})
	}

	records := make([]T, 0)
	err := q.Order(clause.OrderByColumn{Column: clause.Column{Name: "date"}, Desc: true}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: true}).
		Find(&records).Error
	if err != nil {
		return nil, storeFailure("list "+l.kind.Name, err)
	}
	return records, nil
}

// Get 按 id 查询
func (l *Ledger[T, P]) Get(ctx context.Context, id uint) (*T, error) {
	rec := new(T)
	if err := l.db.WithContext(ctx).First(rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFound(l.kind.NotFoundMessage)
		}
		return nil, storeFailure("get "+l.kind.Name, err)
	}
	return rec, nil
}

// Update 合并修改后按新建规则重新校验，读与写在同一事务内
func (l *Ledger[T, P]) Update(ctx context.Context, id uint, patch LedgerPatch) (*T, error) {
	rec := new(T)
	err := l.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(rec, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFound(l.kind.NotFoundMessage)
			}
			return storeFailure("get "+l.kind.Name, err)
		}

		current := P(rec).Fields()
		date := current.Date.String()
		typ := current.Type
		amount := current.Amount.Decimal
		currency := current.Currency
		witness := current.Witness
		comments := current.Comments
		if patch.Date != nil {
			date = *patch.Date
		}
		if patch.Type != nil {
			typ = *patch.Type
		}
		if patch.Amount != nil {
			amount = *patch.Amount
		}
		if patch.Currency != nil {
			currency = *patch.Currency
		}
		if patch.Witness != nil {
			witness = *patch.Witness
		}
		if patch.Comments != nil {
			comments = *patch.Comments
		}

		fields, err := l.build(current.Code, date, typ, &amount, currency, witness, comments)
		if err != nil {
			return err
		}
		current.Date = fields.Date
		current.Type = fields.Type
		current.Amount = fields.Amount
		current.Currency = fields.Currency
		current.Witness = fields.Witness
		current.Comments = fields.Comments

		err = tx.Model(rec).
			Select("date", "type", "amount", "currency", "witness", "comments").
			Updates(rec).Error
		if err != nil {
			return l.writeErr("update", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Delete 物理删除，记录不存在返回 NotFound
func (l *Ledger[T, P]) Delete(ctx context.Context, id uint) error {
	res := l.db.WithContext(ctx).Delete(new(T), id)
	if res.Error != nil {
		return storeFailure("delete "+l.kind.Name, res.Error)
	}
	if res.RowsAffected == 0 {
		return notFound(l.kind.NotFoundMessage)
	}
	return nil
}

func (l *Ledger[T, P]) build(code, date, typ string, amount *decimal.Decimal, currency, witness, comments string) (models.LedgerFields, error) {
	code = strings.TrimSpace(code)
	date = strings.TrimSpace(date)
	typ = strings.TrimSpace(typ)
	currency = strings.TrimSpace(currency)
	witness = strings.TrimSpace(witness)
	comments = strings.TrimSpace(comments)

	if code == "" || date == "" || typ == "" || amount == nil || currency == "" {
		return models.LedgerFields{}, validation(l.kind.MissingMessage)
	}
	if l.kind.CommentsRequired && comments == "" {
		return models.LedgerFields{}, validation(l.kind.MissingMessage)
	}
	if utf8.RuneCountInString(code) > maxCodeLength {
		return models.LedgerFields{}, validation(fmt.Sprintf("Le code ne doit pas dépasser %d caractères.", maxCodeLength))
	}
	if utf8.RuneCountInString(currency) > maxCurrencyLength {
		return models.LedgerFields{}, validation(fmt.Sprintf("La devise ne doit pas dépasser %d caractères.", maxCurrencyLength))
	}

	day, err := models.ParseDate(date)
	if err != nil {
		return models.LedgerFields{}, validation("Date invalide, format attendu AAAA-MM-JJ.")
	}

	if amount.IsNegative() {
		return models.LedgerFields{}, validation("Le montant doit être positif ou nul.")
	}
	if !amount.Equal(amount.Round(2)) {
		return models.LedgerFields{}, validation("Le montant ne peut pas avoir plus de deux décimales.")
	}
	if amount.GreaterThanOrEqual(maxAmount) {
		return models.LedgerFields{}, validation("Le montant est trop élevé.")
	}

	if !contains(l.kind.AllowedTypes, typ) {
		if !l.kind.LenientTypes {
			return models.LedgerFields{}, validation(l.kind.InvalidTypeMessage)
		}
		l.log.WithFields(logrus.Fields{"kind": l.kind.Name, "type": typ}).
			Warn("类型不在允许列表中，按兼容模式写入")
	}

	return models.LedgerFields{
		Code:     code,
		Date:     day,
		Type:     typ,
		Amount:   models.NewMoney(*amount),
		Currency: currency,
		Witness:  witness,
		Comments: comments,
	}, nil
}

func (l *Ledger[T, P]) writeErr(op string, err error) error {
	switch {
	case IsDuplicateKey(err):
		return conflict(l.kind.DuplicateMessage, err)
	case IsForeignKeyViolation(err):
		return validation("Utilisateur inconnu.")
	default:
		return storeFailure(op+" "+l.kind.Name, err)
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
