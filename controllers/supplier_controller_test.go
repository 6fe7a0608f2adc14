package controllers_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"tatvadirect/backend/controllers/testutils"
	"tatvadirect/backend/models"
	"tatvadirect/backend/utils"
)

func createProduct(t *testing.T, r http.Handler, token string, body map[string]any) map[string]any {
	t.Helper()
	w := testutils.DoJSON(t, r, http.MethodPost, "/api/supplier/products", token, body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return testutils.Decode(t, w)["product"].(map[string]any)
}

func steelProduct() map[string]any {
	return map[string]any{
		"name":     "TMT Bar 12mm",
		"category": "steel",
		"price":    45,
		"unit":     "kg",
		"stock":    5000,
	}
}

func TestSupplierProductLifecycle(t *testing.T) {
	r, store, cfg := newRouter(t)
	s := testutils.SeedUser(t, store, "steel@example.com", models.UserTypeSupplier)
	tok := testutils.Token(t, cfg, s.ID)

	p := createProduct(t, r, tok, steelProduct())
	require.Equal(t, s.ID, p["supplier"])
	require.Equal(t, float64(1), p["minOrderQuantity"])
	id := p["id"].(string)

	w := testutils.DoJSON(t, r, http.MethodGet, "/api/supplier/products", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, testutils.Decode(t, w)["products"], 1)

	w = testutils.DoJSON(t, r, http.MethodPut, "/api/supplier/products/"+id, tok, map[string]any{"price": 47.5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := testutils.Decode(t, w)["product"].(map[string]any)
	require.Equal(t, 47.5, updated["price"])
	require.Equal(t, "TMT Bar 12mm", updated["name"])

	w = testutils.DoJSON(t, r, http.MethodDelete, "/api/supplier/products/"+id, tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "Product deleted successfully", testutils.Decode(t, w)["message"])

	w = testutils.DoJSON(t, r, http.MethodGet, "/api/supplier/products", tok, nil)
	require.Len(t, testutils.Decode(t, w)["products"], 0)
}

func TestCreateProductValidation(t *testing.T) {
	r, store, cfg := newRouter(t)
	s := testutils.SeedUser(t, store, "steel@example.com", models.UserTypeSupplier)

	body := steelProduct()
	body["category"] = "timber"
	delete(body, "price")
	w := testutils.DoJSON(t, r, http.MethodPost, "/api/supplier/products", testutils.Token(t, cfg, s.ID), body)
	require.Equal(t, http.StatusBadRequest, w.Code)
	errs := testutils.Decode(t, w)["errors"].([]any)
	require.Contains(t, errs, "price is required")
	require.Len(t, errs, 2)
}

func TestSupplierCannotTouchAnotherSuppliersProduct(t *testing.T) {
	r, store, cfg := newRouter(t)
	owner := testutils.SeedUser(t, store, "owner@example.com", models.UserTypeSupplier)
	other := testutils.SeedUser(t, store, "other@example.com", models.UserTypeSupplier)
	p := createProduct(t, r, testutils.Token(t, cfg, owner.ID), steelProduct())
	id := p["id"].(string)
	otherTok := testutils.Token(t, cfg, other.ID)

	w := testutils.DoJSON(t, r, http.MethodPut, "/api/supplier/products/"+id, otherTok, map[string]any{"price": 1})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Product not found", testutils.Decode(t, w)["message"])

	w = testutils.DoJSON(t, r, http.MethodDelete, "/api/supplier/products/"+id, otherTok, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "Product not found", testutils.Decode(t, w)["message"])

	w = testutils.DoJSON(t, r, http.MethodDelete, "/api/supplier/products/missing", otherTok, nil)
	require.Equal(t, http.StatusNotFound, w.Code)

	w = testutils.DoJSON(t, r, http.MethodGet, "/api/supplier/products", testutils.Token(t, cfg, owner.ID), nil)
	products := testutils.Decode(t, w)["products"].([]any)
	require.Len(t, products, 1)
	require.Equal(t, float64(45), products[0].(map[string]any)["price"])
}

func TestSupplierRoutesRejectBuyers(t *testing.T) {
	r, store, cfg := newRouter(t)
	b := testutils.SeedUser(t, store, "buyer@example.com", models.UserTypeServiceProvider)

	w := testutils.DoJSON(t, r, http.MethodGet, "/api/supplier/products", testutils.Token(t, cfg, b.ID), nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestImportProductsFromCSV(t *testing.T) {
	r, store, cfg := newRouter(t)
	s := testutils.SeedUser(t, store, "steel@example.com", models.UserTypeSupplier)
	tok := testutils.Token(t, cfg, s.ID)

	csv := "Name,Category,Price,Unit,Stock,Description\n" +
		"TMT Bar 12mm,Steel,\"₹45.00\",KG,5000,Fe500D\n" +
		"OPC 53,cement,280,bag,,\n" +
		"Teak Plank,timber,900,nos,10,unknown category\n" +
		",,,,,\n"
	w := testutils.DoUpload(t, r, "/api/supplier/products/import", tok, "catalog.csv", []byte(csv), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := testutils.Decode(t, w)
	require.Equal(t, float64(2), body["created_count"])
	require.Equal(t, float64(1), body["skipped_count"])

	w = testutils.DoJSON(t, r, http.MethodGet, "/api/supplier/products", tok, nil)
	products := testutils.Decode(t, w)["products"].([]any)
	require.Len(t, products, 2)
}

func TestImportProductsSkipsOverlongRows(t *testing.T) {
	r, store, cfg := newRouter(t)
	s := testutils.SeedUser(t, store, "steel@example.com", models.UserTypeSupplier)
	tok := testutils.Token(t, cfg, s.ID)

	longName := strings.Repeat("n", models.MaxNameLength+1)
	longDesc := strings.Repeat("d", models.MaxDescriptionLength+1)
	fullName := strings.Repeat("सी", models.MaxNameLength/2)
	csv := "Name,Category,Price,Unit,Stock,Description\n" +
		longName + ",steel,45,kg,10,\n" +
		"Binding wire,steel,80,kg,10," + longDesc + "\n" +
		fullName + ",cement,280,bag,5,\n"
	w := testutils.DoUpload(t, r, "/api/supplier/products/import", tok, "catalog.csv", []byte(csv), nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := testutils.Decode(t, w)
	require.Equal(t, float64(1), body["created_count"])
	require.Equal(t, float64(2), body["skipped_count"])

	w = testutils.DoJSON(t, r, http.MethodGet, "/api/supplier/products", tok, nil)
	products := testutils.Decode(t, w)["products"].([]any)
	require.Len(t, products, 1)
	require.Equal(t, fullName, products[0].(map[string]any)["name"])
}

func TestImportProductsReportsPartialFailure(t *testing.T) {
	r, store, cfg := newRouter(t)
	s := testutils.SeedUser(t, store, "steel@example.com", models.UserTypeSupplier)
	tok := testutils.Token(t, cfg, s.ID)
	store.ProductErr = func(p *models.Product) error {
		if p.Name == "OPC 53" {
			return errors.New("connection reset")
		}
		return nil
	}

	csv := "Name,Category,Price,Unit,Stock,Description\n" +
		"TMT Bar 12mm,steel,45,kg,5000,\n" +
		"Teak Plank,timber,900,nos,10,\n" +
		"OPC 53,cement,280,bag,,\n" +
		"Fine sand,aggregates,55,cft,,\n"
	w := testutils.DoUpload(t, r, "/api/supplier/products/import", tok, "catalog.csv", []byte(csv), nil)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	body := testutils.Decode(t, w)
	require.Equal(t, "error", body["status"])
	require.Equal(t, float64(1), body["created_count"])
	require.Equal(t, float64(1), body["skipped_count"])

	store.ProductErr = nil
	w = testutils.DoJSON(t, r, http.MethodGet, "/api/supplier/products", tok, nil)
	require.Len(t, testutils.Decode(t, w)["products"].([]any), 1)
}

func TestImportProductsRejectsUnknownFileType(t *testing.T) {
	r, store, cfg := newRouter(t)
	s := testutils.SeedUser(t, store, "steel@example.com", models.UserTypeSupplier)

	w := testutils.DoUpload(t, r, "/api/supplier/products/import", testutils.Token(t, cfg, s.ID), "catalog.pdf", []byte("%PDF"), nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestExportProducts(t *testing.T) {
	r, store, cfg := newRouter(t)
	s := testutils.SeedUser(t, store, "steel@example.com", models.UserTypeSupplier)
	tok := testutils.Token(t, cfg, s.ID)
	createProduct(t, r, tok, steelProduct())

	w := testutils.DoJSON(t, r, http.MethodGet, "/api/supplier/products/export", tok, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Header().Get("Content-Disposition"), "products.xlsx")

	rows, err := utils.ReadRows(w.Body.Bytes(), ".xlsx")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.Equal(t, []string{"Name", "Category", "Price", "Unit", "Stock", "Description"}, rows[0])
	require.Equal(t, "TMT Bar 12mm", rows[1][0])
	require.Equal(t, "45", rows[1][2])
}
