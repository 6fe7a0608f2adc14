package controllers

import (
	"bytes"
	"log"
	"math"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"tatvadirect/backend/config"
	"tatvadirect/backend/middlewares"
	"tatvadirect/backend/models"
	"tatvadirect/backend/utils"
)

const xlsxMime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var catalogHeader = []string{"Name", "Category", "Price", "Unit", "Stock", "Description"}

func ListSupplierProducts(store Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := middlewares.CurrentUser(c)
		ctx, cancel := dbCtx(c)
		defer cancel()
		products, err := store.ListProductsBySupplier(ctx, u.ID)
		if err != nil {
			internalError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

func CreateProduct(store Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ProductCreateRequest
		if !bindJSON(c, &req) {
			return
		}
		u := middlewares.CurrentUser(c)
		p := &models.Product{
			Supplier:         u.ID,
			Name:             strings.TrimSpace(req.Name),
			Description:      strings.TrimSpace(req.Description),
			Category:         req.Category,
			Price:            *req.Price,
			Unit:             req.Unit,
			Stock:            *req.Stock,
			MinOrderQuantity: req.MinOrderQuantity,
			Specifications:   req.Specifications,
			Images:           req.Images,
			Tags:             req.Tags,
			IsActive:         true,
		}
		if p.MinOrderQuantity == 0 {
			p.MinOrderQuantity = 1
		}
		ctx, cancel := dbCtx(c)
		defer cancel()
		if err := store.CreateProduct(ctx, p); err != nil {
			respondStoreError(c, err, "Product not found")
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Product added successfully", "product": p})
	}
}

func UpdateProduct(store Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ProductUpdateRequest
		if !bindJSON(c, &req) {
			return
		}
		u := middlewares.CurrentUser(c)
		ctx, cancel := dbCtx(c)
		defer cancel()
		p, err := store.GetSupplierProduct(ctx, u.ID, c.Param("id"))
		if err != nil {
			respondStoreError(c, err, "Product not found")
			return
		}
		req.Apply(p)
		if err := store.UpdateProduct(ctx, p); err != nil {
			respondStoreError(c, err, "Product not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "product": p})
	}
}

func DeleteProduct(store Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := middlewares.CurrentUser(c)
		ctx, cancel := dbCtx(c)
		defer cancel()
		if err := store.DeleteProduct(ctx, u.ID, c.Param("id")); err != nil {
			respondStoreError(c, err, "Product not found")
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
	}
}

// ExportProducts downloads the caller's catalog as a workbook.
func ExportProducts(store Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := middlewares.CurrentUser(c)
		ctx, cancel := dbCtx(c)
		defer cancel()
		products, err := store.ListProductsBySupplier(ctx, u.ID)
		if err != nil {
			internalError(c, err)
			return
		}
		rows := make([][]any, 0, len(products))
		for _, p := range products {
			rows = append(rows, []any{p.Name, p.Category, p.Price, p.Unit, p.Stock, p.Description})
		}
		var buf bytes.Buffer
		if err := utils.WriteSheet(&buf, "Products", catalogHeader, rows); err != nil {
			internalError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="products.xlsx"`)
		c.Data(http.StatusOK, xlsxMime, buf.Bytes())
	}
}

// ImportProducts creates one product per valid sheet row. Rows without a
// name, with an unknown category or unit, or without a price are skipped.
func ImportProducts(cfg config.Config, store Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		up, err := readUpload(c, cfg.MaxUploadBytes)
		if err != nil {
			respondUploadError(c, err)
			return
		}
		ext, ok := utils.SheetExt(up.Name)
		if !ok {
			respondError(c, http.StatusBadRequest, utils.ErrUnsupportedSheet.Error())
			return
		}
		rows, err := utils.ReadRows(up.Content, ext)
		if err != nil {
			respondError(c, http.StatusBadRequest, "Could not read spreadsheet")
			return
		}
		products := parseCatalogRows(rows)

		u := middlewares.CurrentUser(c)
		ctx, cancel := dbCtx(c)
		defer cancel()
		created := 0
		for i := range products {
			p := &products[i]
			p.Supplier = u.ID
			if err := store.CreateProduct(ctx, p); err != nil {
				// Rows stored before the failure stay; report how far the import got.
				log.Printf("%s %s: import stopped after %d products: %v", c.Request.Method, c.Request.URL.Path, created, err)
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"status":        "error",
					"message":       "Import failed partway",
					"created_count": created,
					"skipped_count": countDataRows(rows) - len(products),
				})
				return
			}
			created++
		}
		skipped := countDataRows(rows) - created
		c.JSON(http.StatusOK, gin.H{
			"message":       "Products imported successfully",
			"created_count": created,
			"skipped_count": skipped,
		})
	}
}

// parseCatalogRows keeps rows that would pass product validation; the rest are
// counted as skipped by the caller.
func parseCatalogRows(rows [][]string) []models.Product {
	if len(rows) == 0 {
		return nil
	}
	headerIdx := utils.DetectHeaderRow(rows)
	headers := utils.NormalizeHeaders(rows, headerIdx)
	nameCol := utils.PickColumn(headers, []string{"name", "product", "item"})
	catCol := utils.PickColumn(headers, []string{"category", "type"})
	priceCol := utils.PickColumn(headers, []string{"price", "rate", "cost"})
	unitCol := utils.PickColumn(headers, []string{"unit", "uom"})
	stockCol := utils.PickColumn(headers, []string{"stock", "quantity", "qty"})
	descCol := utils.PickColumn(headers, []string{"description", "details"})

	out := []models.Product{}
	for _, r := range rows[headerIdx+1:] {
		if utils.IsBlankRow(r) {
			continue
		}
		name := utils.Cell(r, nameCol)
		category := strings.ToLower(utils.Cell(r, catCol))
		unit := strings.ToLower(utils.Cell(r, unitCol))
		price := utils.ToNumeric(utils.Cell(r, priceCol))
		desc := utils.Cell(r, descCol)
		if name == "" || utf8.RuneCountInString(name) > models.MaxNameLength ||
			utf8.RuneCountInString(desc) > models.MaxDescriptionLength {
			continue
		}
		if !models.IsCategory(category) || !models.IsUnit(unit) || math.IsNaN(price) || price < 0 {
			continue
		}
		stock := utils.ToNumeric(utils.Cell(r, stockCol))
		if math.IsNaN(stock) || stock < 0 {
			stock = 0
		}
		out = append(out, models.Product{
			Name:             name,
			Description:      desc,
			Category:         category,
			Price:            utils.Round2(price),
			Unit:             unit,
			Stock:            stock,
			MinOrderQuantity: 1,
			IsActive:         true,
		})
	}
	return out
}

func countDataRows(rows [][]string) int {
	if len(rows) == 0 {
		return 0
	}
	n := 0
	for _, r := range rows[utils.DetectHeaderRow(rows)+1:] {
		if !utils.IsBlankRow(r) {
			n++
		}
	}
	return n
}
