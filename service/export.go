package service

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"

	"caisse/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// 工作表名称
const (
	EntrySheet = "Entrées"
	ExitSheet  = "Sorties"
)

var workbookHeaders = []string{"ID", "Code", "Date", "Type", "Montant", "Devise", "Témoin", "Commentaires", "Utilisateur", "Créé le"}

var thinBorder = []excelize.Border{
	{Type: "left", Color: "000000", Style: 1},
	{Type: "top", Color: "000000", Style: 1},
	{Type: "bottom", Color: "000000", Style: 1},
	{Type: "right", Color: "000000", Style: 1},
}

type workbookStyles struct {
	header  int
	data    int
	summary int
}

// Exporter 按日期区间汇出收支记录
type Exporter struct {
	entries *EntryLedger
	exits   *ExitLedger
}

// NewExporter 创建导出器
func NewExporter(entries *EntryLedger, exits *ExitLedger) *Exporter {
	return &Exporter{entries: entries, exits: exits}
}

// Workbook 区间为闭区间，零值日期表示不限
func (e *Exporter) Workbook(ctx context.Context, from, to models.Date) ([]byte, error) {
	if !from.IsZero() && !to.IsZero() && to.Before(from.Time) {
		return nil, validation("La date de fin précède la date de début.")
	}
	entries, err := e.entries.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	exits, err := e.exits.ListBetween(ctx, from, to)
	if err != nil {
		return nil, err
	}
	data, err := BuildWorkbook(entries, exits)
	if err != nil {
		return nil, storeFailure("build workbook", err)
	}
	return data, nil
}

// BuildWorkbook 生成包含收入与支出两个工作表的 xlsx
func BuildWorkbook(entries []models.Entry, exits []models.Exit) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newWorkbookStyles(f)
	if err != nil {
		return nil, err
	}

	entryRows := make([]models.LedgerFields, 0, len(entries))
	for _, e := range entries {
		entryRows = append(entryRows, e.LedgerFields)
	}
	exitRows := make([]models.LedgerFields, 0, len(exits))
	for _, e := range exits {
		exitRows = append(exitRows, e.LedgerFields)
	}

	if err := f.SetSheetName("Sheet1", EntrySheet); err != nil {
		return nil, err
	}
	if err := writeLedgerSheet(f, EntrySheet, entryRows, styles); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(ExitSheet); err != nil {
		return nil, err
	}
	if err := writeLedgerSheet(f, ExitSheet, exitRows, styles); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("生成 Excel 失败: %w", err)
	}
	return buf.Bytes(), nil
}

func newWorkbookStyles(f *excelize.File) (workbookStyles, error) {
	var s workbookStyles
	var err error

	s.header, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	if err != nil {
		return s, err
	}

	s.data, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	if err != nil {
		return s, err
	}

	s.summary, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    thinBorder,
	})
	return s, err
}

func writeLedgerSheet(f *excelize.File, sheet string, rows []models.LedgerFields, styles workbookStyles) error {
	widths := []float64{8, 14, 12, 28, 14, 8, 20, 40, 12, 20}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, col, col, w); err != nil {
			return err
		}
	}

	lastCol, _ := excelize.ColumnNumberToName(len(workbookHeaders))
	for i, header := range workbookHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}
	if err := f.SetCellStyle(sheet, "A1", lastCol+"1", styles.header); err != nil {
		return err
	}

	totals := make(map[string]decimal.Decimal)
	for i, r := range rows {
		row := i + 2
		owner := ""
		if r.UserID != nil {
			owner = strconv.FormatUint(uint64(*r.UserID), 10)
		}
		values := []interface{}{
			r.ID,
			r.Code,
			r.Date.String(),
			r.Type,
			r.Amount.InexactFloat64(),
			r.Currency,
			r.Witness,
			r.Comments,
			owner,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		start, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(sheet, start, &values); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, start, fmt.Sprintf("%s%d", lastCol, row), styles.data); err != nil {
			return err
		}
		totals[r.Currency] = totals[r.Currency].Add(r.Amount.Decimal)
	}

	// 每个币种一行合计
	currencies := make([]string, 0, len(totals))
	for c := range totals {
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)

	row := len(rows) + 2
	if len(currencies) == 0 {
		currencies = append(currencies, "")
	}
	for _, currency := range currencies {
		first := fmt.Sprintf("A%d", row)
		values := []interface{}{"Total", "", "", fmt.Sprintf("%d enregistrement(s)", len(rows)), totals[currency].InexactFloat64(), currency}
		if err := f.SetSheetRow(sheet, first, &values); err != nil {
			return err
		}
		if err := f.MergeCell(sheet, first, fmt.Sprintf("C%d", row)); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, first, fmt.Sprintf("%s%d", lastCol, row), styles.summary); err != nil {
			return err
		}
		row++
	}
	return nil
}
