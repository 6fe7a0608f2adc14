package utils

import (
	"bytes"
	"encoding/csv"
	"errors"
	"io"
	"math"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

var ErrUnsupportedSheet = errors.New("unsupported file type; use .csv or .xlsx")

// SheetExt returns the lower-cased extension when it is a readable sheet.
func SheetExt(filename string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv", ".xlsx", ".xlsm":
		return ext, true
	}
	return ext, false
}

// ReadRows returns every row of a CSV file or of the first sheet of a workbook.
func ReadRows(content []byte, ext string) ([][]string, error) {
	switch ext {
	case ".csv":
		r := csv.NewReader(bytes.NewReader(content))
		r.FieldsPerRecord = -1
		r.TrimLeadingSpace = true
		return r.ReadAll()
	case ".xlsx", ".xlsm":
		f, err := excelize.OpenReader(bytes.NewReader(content))
		if err != nil {
			return nil, err
		}
		defer f.Close()
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return [][]string{}, nil
		}
		rs, err := f.Rows(sheets[0])
		if err != nil {
			return nil, err
		}
		defer rs.Close()
		rows := [][]string{}
		for rs.Next() {
			r, err := rs.Columns()
			if err != nil {
				return nil, err
			}
			rows = append(rows, r)
		}
		return rows, nil
	default:
		return nil, ErrUnsupportedSheet
	}
}

// WriteSheet streams a single-sheet workbook with a header row.
func WriteSheet(w io.Writer, sheet string, header []string, rows [][]any) error {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return err
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := r
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return f.Write(w)
}

// DetectHeaderRow picks, among the first five rows, the one whose cells are
// mostly alphabetic. Ties go to the row with more filled cells, so a one-cell
// title above the real header loses. Falls back to 0.
func DetectHeaderRow(rows [][]string) int {
	headerIdx := -1
	best, bestWidth := -1.0, 0
	for i, r := range rows {
		if i > 4 {
			break
		}
		nonEmpty, alpha := 0, 0
		for _, v := range r {
			t := strings.TrimSpace(v)
			if t == "" {
				continue
			}
			nonEmpty++
			if hasLetter(t) {
				alpha++
			}
		}
		if nonEmpty == 0 {
			continue
		}
		score := float64(alpha) / float64(nonEmpty)
		if score >= 0.5 && (score > best || (score == best && nonEmpty > bestWidth)) {
			best, bestWidth = score, nonEmpty
			headerIdx = i
		}
	}
	if headerIdx == -1 {
		return 0
	}
	return headerIdx
}

func hasLetter(s string) bool {
	for _, ch := range s {
		if (ch >= 'A' && ch <= 'Z') || (ch >= 'a' && ch <= 'z') {
			return true
		}
	}
	return false
}

// NormalizeHeaders trims header cells and names blank ones ColN.
func NormalizeHeaders(rows [][]string, headerIdx int) []string {
	if headerIdx < 0 || headerIdx >= len(rows) {
		return nil
	}
	raw := rows[headerIdx]
	headers := make([]string, len(raw))
	for i, v := range raw {
		t := strings.TrimSpace(v)
		if t == "" {
			t = "Col" + strconv.Itoa(i)
		}
		headers[i] = t
	}
	return headers
}

// PickColumn returns the index of the first header matching a keyword,
// exact (case-insensitive) matches first, then substrings. -1 if none.
func PickColumn(headers []string, keywords []string) int {
	for _, k := range keywords {
		for i, h := range headers {
			if strings.EqualFold(h, k) {
				return i
			}
		}
	}
	for _, k := range keywords {
		lk := strings.ToLower(k)
		for i, h := range headers {
			if strings.Contains(strings.ToLower(h), lk) {
				return i
			}
		}
	}
	return -1
}

// Cell returns the trimmed value at col, or "" when out of range.
func Cell(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[col])
}

// ToNumeric reads an amount cell such as "₹1,200.50" or "45 /kg", keeping
// only digits, the decimal point and a minus sign. Accounting negatives like
// "(250)" come back negative. NaN means the cell holds no number.
func ToNumeric(s string) float64 {
	s = strings.TrimSpace(s)
	neg := len(s) > 2 && s[0] == '(' && s[len(s)-1] == ')'
	kept := strings.Map(func(r rune) rune {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			return r
		}
		return -1
	}, s)
	if kept == "" {
		return math.NaN()
	}
	f, err := strconv.ParseFloat(kept, 64)
	if err != nil {
		return math.NaN()
	}
	if neg {
		f = -f
	}
	return f
}

func IsBlankRow(r []string) bool {
	for _, v := range r {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// totalLabel matches a cell that is nothing but a summary label, e.g.
// "Total", "Sub-Total:", "GRAND TOTAL (A+B)" or "Total Amount".
var totalLabel = regexp.MustCompile(`^(grand\s*|sub\s*-?\s*)?total(\s+(amount|value|cost))?\s*:?\s*(\(.*\))?$`)

// IsTotalLabel reports whether the whole cell is a summary label. A bare
// "total" may carry one typo, as in "Totl". Descriptions that merely start
// with the word, like "Total station hire", are not labels.
func IsTotalLabel(s string) bool {
	t := strings.ToLower(strings.TrimSpace(s))
	if t == "" {
		return false
	}
	return totalLabel.MatchString(t) || withinOneEdit(t, "total")
}

// withinOneEdit reports whether a and b differ by at most one inserted,
// deleted or substituted rune.
func withinOneEdit(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}
	if len(rb)-len(ra) > 1 {
		return false
	}
	i := 0
	for i < len(ra) && ra[i] == rb[i] {
		i++
	}
	if len(ra) == len(rb) {
		return i >= len(ra)-1 || string(ra[i+1:]) == string(rb[i+1:])
	}
	return string(ra[i:]) == string(rb[i+1:])
}
