package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"maintdesk/internal/common"
	"maintdesk/internal/models"

	"github.com/xuri/excelize/v2"
)

// Workbook layout shared by export and import
const (
	ContractsSheet = "contracts"
	AssetsSheet    = "assets"
	DetailsSheet   = "details"
)

var contractHeaders = []string{
	"contract_key", "customer_name", "project_title", "start_date", "end_date", "contract_amount", "notes",
}

var assetHeaders = []string{
	"contract_key", "category", "item", "product", "qty", "inspection_cycle",
	"main_engineer_name", "main_engineer_phone", "main_engineer_email",
	"sub_engineer_name", "sub_engineer_phone", "sub_engineer_email",
	"sales_name", "sales_phone", "sales_email", "notes",
}

// asset_no is the 1-based position of the asset among its contract's rows on the assets sheet
var detailHeaders = []string{
	"contract_key", "asset_no", "name", "spec", "serial_number", "qty", "notes",
}

type ExcelService interface {
	Export(ctx context.Context, w io.Writer) error
	Import(ctx context.Context, actor string, r io.Reader) (*models.ImportResult, error)
}

type excelService struct {
	contractSvc ContractService
}

func NewExcelService(contractSvc ContractService) ExcelService {
	return &excelService{contractSvc: contractSvc}
}

func (s *excelService) Export(ctx context.Context, w io.Writer) error {
	contracts, err := s.contractSvc.ListWithAssets(ctx)
	if err != nil {
		return err
	}
	f, err := BuildWorkbook(contracts)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

// Import creates every parsed contract through the composite writer. A
// contract that fails validation or storage is reported and the rest continue.
func (s *excelService) Import(ctx context.Context, actor string, r io.Reader) (*models.ImportResult, error) {
	contracts, result, err := ParseWorkbook(r)
	if err != nil {
		return nil, err
	}
	for i, c := range contracts {
		if err := s.contractSvc.Create(ctx, actor, c); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("contract %d (%s): %v", i+1, c.CustomerName, err))
			continue
		}
		result.Contracts++
		result.Assets += len(c.Assets)
	}
	log.Printf("Excel import by %s: contracts=%d assets=%d skipped_assets=%d errors=%d",
		actor, result.Contracts, result.Assets, result.SkippedAssets, len(result.Errors))
	return result, nil
}

// BuildWorkbook lays contracts, assets and asset details out on three sheets
// joined by contract_key and asset_no
func BuildWorkbook(contracts []*models.Contract) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", ContractsSheet); err != nil {
		return nil, err
	}
	for _, sheet := range []string{AssetsSheet, DetailsSheet} {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	for sheet, headers := range map[string][]string{ContractsSheet: contractHeaders, AssetsSheet: assetHeaders, DetailsSheet: detailHeaders} {
		if err := writeRow(f, sheet, 1, toCells(headers)); err != nil {
			return nil, err
		}
		if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
			return nil, err
		}
	}

	assetRow, detailRow := 2, 2
	for i, c := range contracts {
		key := strconv.FormatInt(c.ID, 10)
		if c.ID == 0 {
			key = strconv.Itoa(i + 1)
		}
		var amount any
		if c.ContractAmount != nil {
			amount = *c.ContractAmount
		}
		row := []any{key, c.CustomerName, c.ProjectTitle, c.StartDate.Format(common.DateLayout), formatDate(c.EndDate), amount, common.SafeString(c.Notes)}
		if err := writeRow(f, ContractsSheet, i+2, row); err != nil {
			return nil, err
		}

		for n, a := range c.Assets {
			row := []any{key, a.Category, a.Item, common.SafeString(a.Product), a.Qty, a.InspectionCycle,
				common.SafeString(a.MainEngineer.Name), common.SafeString(a.MainEngineer.Phone), common.SafeString(a.MainEngineer.Email),
				common.SafeString(a.SubEngineer.Name), common.SafeString(a.SubEngineer.Phone), common.SafeString(a.SubEngineer.Email),
				common.SafeString(a.Sales.Name), common.SafeString(a.Sales.Phone), common.SafeString(a.Sales.Email),
				common.SafeString(a.Notes)}
			if err := writeRow(f, AssetsSheet, assetRow, row); err != nil {
				return nil, err
			}
			assetRow++

			for _, d := range a.Details {
				row := []any{key, n + 1, d.Name, common.SafeString(d.Spec), common.SafeString(d.SerialNumber), d.Qty, common.SafeString(d.Notes)}
				if err := writeRow(f, DetailsSheet, detailRow, row); err != nil {
					return nil, err
				}
				detailRow++
			}
		}
	}
	f.SetActiveSheet(0)
	return f, nil
}

func toCells(values []string) []any {
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	return cells
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(common.DateLayout)
}

// sheetRow reads cells by header name
type sheetRow struct {
	index map[string]int
	cells []string
}

func (r sheetRow) get(name string) string {
	i, ok := r.index[name]
	if !ok || i >= len(r.cells) {
		return ""
	}
	return strings.TrimSpace(r.cells[i])
}

func (r sheetRow) optional(name string) *string {
	return common.StringPtr(r.get(name))
}

func (r sheetRow) empty() bool {
	for _, c := range r.cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

func readSheet(f *excelize.File, sheet string, required []string) ([]sheetRow, error) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, invalid("sheet %q is missing", sheet)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	index := make(map[string]int)
	for i, h := range rows[0] {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, h := range required {
		if _, ok := index[h]; !ok {
			return nil, invalid("sheet %q lacks column %q", sheet, h)
		}
	}
	out := make([]sheetRow, 0, len(rows)-1)
	for _, cells := range rows[1:] {
		r := sheetRow{index: index, cells: cells}
		if !r.empty() {
			out = append(out, r)
		}
	}
	return out, nil
}

// ParseWorkbook reads the workbook layout back into contracts. Assets whose
// contract_key matches no contract row are counted as skipped, and so are
// details pointing at a missing asset. The details sheet is optional.
func ParseWorkbook(r io.Reader) ([]*models.Contract, *models.ImportResult, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, invalid("not a readable xlsx file: %v", err)
	}
	defer f.Close()

	result := &models.ImportResult{}
	contractRows, err := readSheet(f, ContractsSheet, []string{"contract_key", "customer_name", "project_title", "start_date"})
	if err != nil {
		return nil, nil, err
	}

	var contracts []*models.Contract
	byKey := make(map[string]*models.Contract)
	for i, row := range contractRows {
		line := i + 2
		key := row.get("contract_key")
		if key == "" {
			result.Errors = append(result.Errors, fmt.Sprintf("%s row %d: contract_key is required", ContractsSheet, line))
			continue
		}
		if _, dup := byKey[key]; dup {
			result.Errors = append(result.Errors, fmt.Sprintf("%s row %d: duplicate contract_key %q", ContractsSheet, line, key))
			continue
		}
		c, err := contractFromRow(row)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s row %d: %v", ContractsSheet, line, err))
			continue
		}
		byKey[key] = c
		contracts = append(contracts, c)
	}

	assetRows, err := readSheet(f, AssetsSheet, []string{"contract_key", "category", "item"})
	if err != nil {
		return nil, nil, err
	}
	// positions keeps a nil slot for malformed rows so asset_no stays aligned
	positions := make(map[string][]*models.Asset)
	for i, row := range assetRows {
		key := row.get("contract_key")
		c, ok := byKey[key]
		if !ok {
			result.SkippedAssets++
			continue
		}
		a, err := assetFromRow(row)
		positions[key] = append(positions[key], a)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s row %d: %v", AssetsSheet, i+2, err))
			result.SkippedAssets++
			continue
		}
		c.Assets = append(c.Assets, a)
	}

	if idx, err := f.GetSheetIndex(DetailsSheet); err != nil || idx < 0 {
		return contracts, result, nil
	}
	detailRows, err := readSheet(f, DetailsSheet, []string{"contract_key", "asset_no", "name"})
	if err != nil {
		return nil, nil, err
	}
	for i, row := range detailRows {
		line := i + 2
		n, err := strconv.Atoi(row.get("asset_no"))
		assets := positions[row.get("contract_key")]
		if err != nil || n < 1 || n > len(assets) || assets[n-1] == nil {
			result.SkippedDetails++
			continue
		}
		d, err := detailFromRow(row)
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("%s row %d: %v", DetailsSheet, line, err))
			result.SkippedDetails++
			continue
		}
		assets[n-1].Details = append(assets[n-1].Details, d)
	}
	return contracts, result, nil
}

func detailFromRow(row sheetRow) (*models.AssetDetail, error) {
	d := &models.AssetDetail{
		Name:         row.get("name"),
		Spec:         row.optional("spec"),
		SerialNumber: row.optional("serial_number"),
		Qty:          1,
		Notes:        row.optional("notes"),
	}
	if raw := row.get("qty"); raw != "" {
		qty, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid qty %q", raw)
		}
		d.Qty = qty
	}
	return d, nil
}

func contractFromRow(row sheetRow) (*models.Contract, error) {
	start, err := common.ParseDate(row.get("start_date"), "start_date")
	if err != nil {
		return nil, err
	}
	end, err := common.ParseOptionalDate(row.optional("end_date"), "end_date")
	if err != nil {
		return nil, err
	}
	c := &models.Contract{
		CustomerName: row.get("customer_name"),
		ProjectTitle: row.get("project_title"),
		StartDate:    start,
		EndDate:      end,
		Notes:        row.optional("notes"),
	}
	if raw := strings.ReplaceAll(row.get("contract_amount"), ",", ""); raw != "" {
		amount, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid contract_amount %q", raw)
		}
		v := int64(amount)
		c.ContractAmount = &v
	}
	return c, nil
}

func assetFromRow(row sheetRow) (*models.Asset, error) {
	a := &models.Asset{
		Category:        row.get("category"),
		Item:            row.get("item"),
		Product:         row.optional("product"),
		Qty:             1,
		InspectionCycle: row.get("inspection_cycle"),
		MainEngineer:    models.Contact{Name: row.optional("main_engineer_name"), Phone: row.optional("main_engineer_phone"), Email: row.optional("main_engineer_email")},
		SubEngineer:     models.Contact{Name: row.optional("sub_engineer_name"), Phone: row.optional("sub_engineer_phone"), Email: row.optional("sub_engineer_email")},
		Sales:           models.Contact{Name: row.optional("sales_name"), Phone: row.optional("sales_phone"), Email: row.optional("sales_email")},
		Notes:           row.optional("notes"),
	}
	if raw := row.get("qty"); raw != "" {
		qty, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid qty %q", raw)
		}
		a.Qty = qty
	}
	return a, nil
}
