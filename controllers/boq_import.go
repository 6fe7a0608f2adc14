package controllers

import (
	"errors"
	"math"
	"strings"

	"github.com/google/uuid"
	"tatvadirect/backend/models"
	"tatvadirect/backend/utils"
)

var errNoDescriptionColumn = errors.New("could not detect a description column")

var (
	descriptionKeywords = []string{"description", "particulars", "item", "material", "name"}
	quantityKeywords    = []string{"quantity", "qty"}
	unitKeywords        = []string{"unit", "uom"}
	rateKeywords        = []string{"rate", "unit price", "price"}
	amountKeywords      = []string{"amount", "value"}
	categoryKeywords    = []string{"category", "type"}
)

// parseBOQRows turns sheet rows into BOQ items: the header row is detected,
// columns are picked by keyword, blank rows and summary rows are dropped. Unknown
// units fall back to "nos"; unknown categories are left empty.
func parseBOQRows(rows [][]string) ([]models.BOQItem, error) {
	if len(rows) == 0 {
		return nil, errNoDescriptionColumn
	}
	headerIdx := utils.DetectHeaderRow(rows)
	headers := utils.NormalizeHeaders(rows, headerIdx)
	descCol := utils.PickColumn(headers, descriptionKeywords)
	if descCol < 0 {
		return nil, errNoDescriptionColumn
	}
	qtyCol := utils.PickColumn(headers, quantityKeywords)
	unitCol := utils.PickColumn(headers, unitKeywords)
	rateCol := utils.PickColumn(headers, rateKeywords)
	amountCol := utils.PickColumn(headers, amountKeywords)
	catCol := utils.PickColumn(headers, categoryKeywords)

	items := []models.BOQItem{}
	for _, r := range rows[headerIdx+1:] {
		if utils.IsBlankRow(r) {
			continue
		}
		desc := utils.Cell(r, descCol)
		if desc == "" || isSummaryRow(r, desc, qtyCol) {
			continue
		}
		unit := strings.ToLower(utils.Cell(r, unitCol))
		if !models.IsUnit(unit) {
			unit = "nos"
		}
		category := strings.ToLower(utils.Cell(r, catCol))
		if !models.IsCategory(category) {
			category = ""
		}
		items = append(items, models.BOQItem{
			ID:          uuid.NewString(),
			Description: desc,
			Quantity:    nonNegative(utils.ToNumeric(utils.Cell(r, qtyCol))),
			Unit:        unit,
			Rate:        nonNegative(utils.ToNumeric(utils.Cell(r, rateCol))),
			Amount:      nonNegative(utils.ToNumeric(utils.Cell(r, amountCol))),
			Category:    category,
		})
	}
	return items, nil
}

// isSummaryRow reports a "Total" or "Grand Total" line: the description is a
// total label and the row carries no quantity. The sum itself may sit in the
// rate or amount column.
func isSummaryRow(r []string, desc string, qtyCol int) bool {
	return utils.IsTotalLabel(desc) && math.IsNaN(utils.ToNumeric(utils.Cell(r, qtyCol)))
}

func nonNegative(f float64) float64 {
	if math.IsNaN(f) || f < 0 {
		return 0
	}
	return f
}
