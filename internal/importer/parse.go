// Package importer 从 CSV 文件导入商品目录。
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidCSV 文件格式错误
var ErrInvalidCSV = errors.New("invalid csv")

// 必需列
var requiredColumns = []string{"id", "name", "brand", "category", "department", "cost", "retail_price", "sku", "distribution_center_id"}

// Row 一行商品数据
type Row struct {
	Line                 int
	ProductID            int64
	Name                 string
	Brand                string
	Category             string
	Department           string
	Cost                 decimal.Decimal
	RetailPrice          decimal.Decimal
	SKU                  string
	DistributionCenterID int64
}

// RowIssue 被跳过的行
type RowIssue struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ParseResult 解析结果
type ParseResult struct {
	Rows    []Row
	Skipped []RowIssue
}

// Parse 解析 CSV；缺少必填值的行被跳过，表头缺列时返回错误
func Parse(r io.Reader) (*ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: file is empty", ErrInvalidCSV)
		}
		return nil, fmt.Errorf("%w: read header: %v", ErrInvalidCSV, err)
	}
	index := make(map[string]int, len(header))
	for i, column := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(column, "\ufeff")))
		index[name] = i
	}
	for _, column := range requiredColumns {
		if _, ok := index[column]; !ok {
			return nil, fmt.Errorf("%w: header missing column %q", ErrInvalidCSV, column)
		}
	}

	result := &ParseResult{Rows: make([]Row, 0)}
	line := 1
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrInvalidCSV, line, err)
		}
		get := func(column string) string {
			i := index[column]
			if i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}

		row, reason := buildRow(line, get)
		if reason != "" {
			result.Skipped = append(result.Skipped, RowIssue{Line: line, Reason: reason})
			continue
		}
		result.Rows = append(result.Rows, row)
	}
	return result, nil
}

func buildRow(line int, get func(string) string) (Row, string) {
	for _, column := range []string{"id", "name", "brand", "category", "department"} {
		if get(column) == "" {
			return Row{}, "missing " + column
		}
	}
	productID, err := strconv.ParseInt(get("id"), 10, 64)
	if err != nil || productID <= 0 {
		return Row{}, "invalid id"
	}
	row := Row{
		Line:       line,
		ProductID:  productID,
		Name:       get("name"),
		Brand:      get("brand"),
		Category:   get("category"),
		Department: get("department"),
		SKU:        strings.ToUpper(get("sku")),
	}
	if row.SKU == "" {
		return Row{}, "missing sku"
	}
	if row.Cost, err = parseAmount(get("cost")); err != nil {
		return Row{}, "invalid cost"
	}
	if row.RetailPrice, err = parseAmount(get("retail_price")); err != nil {
		return Row{}, "invalid retail_price"
	}
	if raw := get("distribution_center_id"); raw != "" {
		if row.DistributionCenterID, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return Row{}, "invalid distribution_center_id"
		}
	}
	return row, ""
}

func parseAmount(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, err
	}
	if amount.IsNegative() {
		return decimal.Zero, errors.New("negative amount")
	}
	return amount.Round(2), nil
}
