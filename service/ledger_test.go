package service

import (
	"context"
	"testing"

	"caisse/models"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryLedger_CreateAndList(t *testing.T) {
	db, _ := newTestDB(t)
	ledger := newEntryLedger(db)
	ctx := context.Background()

	older, err := ledger.Create(ctx, entryInput("E-1", "2024-01-04", models.OfferingOrdinary, "10", "XAF"))
	require.NoError(t, err)
	first, err := ledger.Create(ctx, entryInput("E-2", "2024-01-05", models.OfferingTithe, "20.5", "XAF"))
	require.NoError(t, err)
	second, err := ledger.Create(ctx, entryInput("E-100", "2024-01-05", models.OfferingTithe, "50.00", "USD"))
	require.NoError(t, err)

	assert.NotZero(t, second.ID)
	assert.False(t, second.CreatedAt.IsZero())
	assert.Equal(t, "2024-01-05", second.Date.String())
	assert.Equal(t, "50.00", second.Amount.StringFixed(2))

	list, err := ledger.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	// 日期倒序，同日 id 倒序
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
	assert.Equal(t, older.ID, list[2].ID)
	assert.Equal(t, "E-100", list[0].Code)
}

func TestEntryLedger_ListEmpty(t *testing.T) {
	db, _ := newTestDB(t)
	list, err := newEntryLedger(db).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestEntryLedger_CreateValidation(t *testing.T) {
	db, _ := newTestDB(t)
	ledger := newEntryLedger(db)
	ctx := context.Background()

	cases := []struct {
		name string
		in   LedgerInput
		msg  string
	}{
		{"missing code", entryInput("", "2024-01-05", models.OfferingTithe, "1", "XAF"), "Code, date, type d'offrande, montant et devise sont requis."},
		{"missing amount", LedgerInput{Code: "E-1", Date: "2024-01-05", Type: models.OfferingTithe, Currency: "XAF"}, "Code, date, type d'offrande, montant et devise sont requis."},
		{"missing currency", entryInput("E-1", "2024-01-05", models.OfferingTithe, "1", " "), "Code, date, type d'offrande, montant et devise sont requis."},
		{"invalid type", entryInput("E-1", "2024-01-05", "Loyer", "1", "XAF"), "Type d'offrande invalide."},
		{"other expense is exit only", entryInput("E-1", "2024-01-05", models.OtherExpenseType, "1", "XAF"), "Type d'offrande invalide."},
		{"bad date", entryInput("E-1", "05/01/2024", models.OfferingTithe, "1", "XAF"), "Date invalide, format attendu AAAA-MM-JJ."},
		{"negative amount", entryInput("E-1", "2024-01-05", models.OfferingTithe, "-1", "XAF"), "Le montant doit être positif ou nul."},
		{"three decimals", entryInput("E-1", "2024-01-05", models.OfferingTithe, "1.005", "XAF"), "Le montant ne peut pas avoir plus de deux décimales."},
		{"too large", entryInput("E-1", "2024-01-05", models.OfferingTithe, "10000000000000", "XAF"), "Le montant est trop élevé."},
		{"long currency", entryInput("E-1", "2024-01-05", models.OfferingTithe, "1", "FRANCS-CFA-X"), "La devise ne doit pas dépasser 10 caractères."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ledger.Create(ctx, tc.in)
			require.ErrorIs(t, err, ErrValidation)
			assert.Equal(t, tc.msg, MessageOf(err))
		})
	}

	var count int64
	db.Model(&models.Entry{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestEntryLedger_ZeroAmountAllowed(t *testing.T) {
	db, _ := newTestDB(t)
	rec, err := newEntryLedger(db).Create(context.Background(), entryInput("E-0", "2024-01-05", models.OfferingTithe, "0", "XAF"))
	require.NoError(t, err)
	assert.True(t, rec.Amount.IsZero())
}

func TestEntryLedger_DuplicateCode(t *testing.T) {
	db, _ := newTestDB(t)
	ledger := newEntryLedger(db)
	ctx := context.Background()

	_, err := ledger.Create(ctx, entryInput("E-1", "2024-01-05", models.OfferingTithe, "1", "XAF"))
	require.NoError(t, err)
	_, err = ledger.Create(ctx, entryInput("E-1", "2024-01-06", models.OfferingOrdinary, "2", "XAF"))
	require.ErrorIs(t, err, ErrConflict)

	list, err := ledger.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestEntryLedger_Owner(t *testing.T) {
	db, _ := newTestDB(t)
	ledger := newEntryLedger(db)
	ctx := context.Background()

	in := entryInput("E-1", "2024-01-05", models.OfferingTithe, "1", "XAF")
	owner := uint(1)
	in.UserID = &owner
	rec, err := ledger.Create(ctx, in)
	require.NoError(t, err)
	require.NotNil(t, rec.UserID)
	assert.Equal(t, uint(1), *rec.UserID)

	// 不存在的用户
	in = entryInput("E-2", "2024-01-05", models.OfferingTithe, "1", "XAF")
	ghost := uint(999)
	in.UserID = &ghost
	_, err = ledger.Create(ctx, in)
	require.ErrorIs(t, err, ErrValidation)
}

func TestExitLedger_Rules(t *testing.T) {
	db, _ := newTestDB(t)
	ledger, _ := newExitLedger(db, false)
	ctx := context.Background()

	// 备注必填
	in := entryInput("S-1", "2024-01-05", models.OtherExpenseType, "15.75", "XAF")
	_, err := ledger.Create(ctx, in)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Code, date, type de transaction, montant, devise et commentaires sont requis.", MessageOf(err))

	in.Comments = "Achat de chaises"
	rec, err := ledger.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "Achat de chaises", rec.Comments)

	// 奉献类型同样允许
	in = entryInput("S-2", "2024-01-05", models.OfferingBuilding, "1", "XAF")
	in.Comments = "Travaux"
	_, err = ledger.Create(ctx, in)
	require.NoError(t, err)

	in = entryInput("S-3", "2024-01-05", "Loyer", "1", "XAF")
	in.Comments = "Mars"
	_, err = ledger.Create(ctx, in)
	require.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, "Type de transaction invalide.", MessageOf(err))
}

func TestExitLedger_LenientTypes(t *testing.T) {
	db, _ := newTestDB(t)
	ledger, hook := newExitLedger(db, true)

	in := entryInput("S-1", "2024-01-05", "Loyer", "100", "XAF")
	in.Comments = "Mars"
	rec, err := ledger.Create(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "Loyer", rec.Type)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
}

func TestLedger_Get(t *testing.T) {
	db, _ := newTestDB(t)
	ledger := newEntryLedger(db)
	ctx := context.Background()

	created, err := ledger.Create(ctx, entryInput("E-1", "2024-01-05", models.OfferingTithe, "12.5", "XAF"))
	require.NoError(t, err)

	got, err := ledger.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "E-1", got.Code)
	assert.Equal(t, "12.50", got.Amount.StringFixed(2))

	_, err = ledger.Get(ctx, created.ID+1)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Entrée non trouvée.", MessageOf(err))
}

func TestLedger_Update(t *testing.T) {
	db, _ := newTestDB(t)
	ledger := newEntryLedger(db)
	ctx := context.Background()

	created, err := ledger.Create(ctx, entryInput("E-1", "2024-01-05", models.OfferingTithe, "10", "XAF"))
	require.NoError(t, err)

	updated, err := ledger.Update(ctx, created.ID, LedgerPatch{
		Amount:  amount("25.40"),
		Witness: strPtr("Pasteur"),
	})
	require.NoError(t, err)
	assert.Equal(t, "E-1", updated.Code)
	assert.Equal(t, "25.40", updated.Amount.StringFixed(2))
	assert.Equal(t, "Pasteur", updated.Witness)
	assert.Equal(t, models.OfferingTithe, updated.Type)

	got, err := ledger.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "25.40", got.Amount.StringFixed(2))
	assert.Equal(t, "Pasteur", got.Witness)
	assert.Equal(t, "2024-01-05", got.Date.String())

	// 非法类型不落库
	_, err = ledger.Update(ctx, created.ID, LedgerPatch{Type: strPtr("Loyer")})
	require.ErrorIs(t, err, ErrValidation)
	got, err = ledger.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OfferingTithe, got.Type)

	_, err = ledger.Update(ctx, created.ID+1, LedgerPatch{Amount: amount("1")})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestExitLedger_UpdateKeepsCommentsRequired(t *testing.T) {
	db, _ := newTestDB(t)
	ledger, _ := newExitLedger(db, false)
	ctx := context.Background()

	in := entryInput("S-1", "2024-01-05", models.OtherExpenseType, "5", "XAF")
	in.Comments = "Eau"
	created, err := ledger.Create(ctx, in)
	require.NoError(t, err)

	_, err = ledger.Update(ctx, created.ID, LedgerPatch{Comments: strPtr("  ")})
	require.ErrorIs(t, err, ErrValidation)
}

func TestLedger_DeleteTwice(t *testing.T) {
	db, _ := newTestDB(t)
	ledger := newEntryLedger(db)
	ctx := context.Background()

	created, err := ledger.Create(ctx, entryInput("E-1", "2024-01-05", models.OfferingTithe, "10", "XAF"))
	require.NoError(t, err)

	require.NoError(t, ledger.Delete(ctx, created.ID))
	err = ledger.Delete(ctx, created.ID)
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "Entrée non trouvée.", MessageOf(err))
}

func TestLedger_ListBetween(t *testing.T) {
	db, _ := newTestDB(t)
	ledger := newEntryLedger(db)
	ctx := context.Background()

	for i, date := range []string{"2024-01-01", "2024-02-01", "2024-03-01"} {
		_, err := ledger.Create(ctx, entryInput("E-"+string(rune('A'+i)), date, models.OfferingTithe, "1", "XAF"))
		require.NoError(t, err)
	}

	from, _ := models.ParseDate("2024-01-15")
	to, _ := models.ParseDate("2024-03-01")
	list, err := ledger.ListBetween(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "2024-03-01", list[0].Date.String())
	assert.Equal(t, "2024-02-01", list[1].Date.String())
}

func TestExitKind_DedupesExtraTypes(t *testing.T) {
	kind := ExitKind([]string{"A", "B"}, []string{"B", "C"}, false)
	assert.Equal(t, []string{"A", "B", "C"}, kind.AllowedTypes)
	assert.True(t, kind.CommentsRequired)
}
