package controllers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"tatvadirect/backend/config"
	"tatvadirect/backend/controllers"
	"tatvadirect/backend/controllers/testutils"
	"tatvadirect/backend/models"
)

func adminToken(t *testing.T, r *gin.Engine, cfg config.Config) (string, string) {
	t.Helper()
	w := testutils.DoJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": cfg.AdminEmail, "password": cfg.AdminPassword,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := testutils.Decode(t, w)
	return body["token"].(string), body["user"].(map[string]any)["id"].(string)
}

func TestAdminRoutesRequireAdmin(t *testing.T) {
	r, store, cfg := newRouter(t)
	u := testutils.SeedUser(t, store, "buyer@example.com", models.UserTypeServiceProvider)
	tok := testutils.Token(t, cfg, u.ID)

	for _, path := range []string{"/api/admin/dashboard", "/api/admin/users", "/api/admin/transactions", "/api/admin/users/" + u.ID} {
		w := testutils.DoJSON(t, r, http.MethodGet, path, tok, nil)
		require.Equal(t, http.StatusForbidden, w.Code, path)
		require.Equal(t, "Access denied. Admin privileges required.", testutils.Decode(t, w)["message"])
	}
}

func TestAdminDashboard(t *testing.T) {
	r, store, cfg := newRouter(t)
	buyer := testutils.SeedUser(t, store, "buyer@example.com", models.UserTypeServiceProvider)
	seller := testutils.SeedUser(t, store, "seller@example.com", models.UserTypeSupplier)
	buyerTok, sellerTok := testutils.Token(t, cfg, buyer.ID), testutils.Token(t, cfg, seller.ID)
	productID := createProduct(t, r, sellerTok, steelProduct())["id"].(string)

	w := testutils.DoJSON(t, r, http.MethodPost, "/api/orders", buyerTok, map[string]any{
		"supplier": seller.ID,
		"items":    []map[string]any{{"product": productID, "quantity": 10}},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	orderNumber := testutils.Decode(t, w)["order"].(map[string]any)["orderNumber"]

	tok, _ := adminToken(t, r, cfg)
	w = testutils.DoJSON(t, r, http.MethodGet, "/api/admin/dashboard", tok, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := testutils.Decode(t, w)

	stats := body["stats"].(map[string]any)
	require.Equal(t, float64(3), stats["totalUsers"])
	require.Equal(t, float64(1), stats["serviceProviders"])
	require.Equal(t, float64(1), stats["suppliers"])
	require.Equal(t, float64(1), stats["totalTransactions"])
	require.Equal(t, float64(0), stats["totalRevenue"])
	require.Equal(t, float64(1), stats["activeOrders"])
	require.Equal(t, float64(45*5000), stats["totalInventoryValue"])

	txs := body["transactions"].([]any)
	require.Len(t, txs, 1)
	tx := txs[0].(map[string]any)
	require.Equal(t, orderNumber, tx["id"])
	require.Equal(t, "order", tx["type"])
	require.Equal(t, "buyer@example.com Co", tx["serviceProvider"])
	require.Equal(t, "seller@example.com Co", tx["supplier"])

	require.Len(t, body["supplierData"], 1)
	require.Len(t, body["serviceProviderData"], 1)
	require.NotContains(t, w.Body.String(), "$2a$")
}

func TestBuildAdminReport(t *testing.T) {
	now := time.Now().UTC()
	users := []models.User{
		{ID: "s1", Name: "Steel Co", UserType: models.UserTypeSupplier, IsActive: true},
		{ID: "b1", Name: "Asha", Company: "Asha Builders", UserType: models.UserTypeServiceProvider},
		{ID: "x1", Name: "Loose"},
	}
	products := []models.Product{
		{ID: "p1", Supplier: "s1", Category: "steel", Price: 10, Stock: 3},
		{ID: "p2", Supplier: "s1", Category: "steel", Price: 5, Stock: 2},
		{ID: "p3", Supplier: "s1", Category: "cement", Price: 1, Stock: 1},
	}
	boqs := []models.BOQ{
		{ID: "q1", ServiceProvider: "b1", Status: models.BOQStatusCompleted, TotalValue: 100},
		{ID: "q2", ServiceProvider: "b1", Status: models.BOQStatusDraft, TotalValue: 50},
	}
	orders := []models.Order{
		{ID: "o1", OrderNumber: "ORD2024010001", ServiceProvider: "b1", Supplier: "s1", Status: models.OrderStatusDelivered, TotalAmount: 300, CreatedAt: now.Add(-2 * time.Hour)},
		{ID: "o2", OrderNumber: "ORD2024010002", ServiceProvider: "b1", Supplier: "s1", Status: models.OrderStatusCancelled, TotalAmount: 20, CreatedAt: now},
		{ID: "o3", OrderNumber: "ORD2024010003", ServiceProvider: "gone", Supplier: "gone-too", Status: models.OrderStatusPending, TotalAmount: 7, CreatedAt: now.Add(-time.Hour)},
	}

	r := controllers.BuildAdminReport(users, products, boqs, orders)

	require.Equal(t, controllers.AdminStats{
		TotalUsers:          3,
		ServiceProviders:    1,
		Suppliers:           1,
		TotalTransactions:   3,
		TotalRevenue:        300,
		ActiveBOQs:          1,
		TotalProducts:       3,
		TotalInventoryValue: 41,
		ActiveOrders:        2,
	}, r.Stats)

	require.Equal(t, []string{"ORD2024010002", "ORD2024010003", "ORD2024010001"},
		[]string{r.Transactions[0].ID, r.Transactions[1].ID, r.Transactions[2].ID})
	require.Equal(t, "Unknown Service Provider", r.Transactions[1].ServiceProvider)
	require.Equal(t, "Unknown Supplier", r.Transactions[1].Supplier)
	require.Equal(t, "Asha Builders", r.Transactions[0].ServiceProvider)
	require.Equal(t, "Steel Co", r.Transactions[0].Supplier)

	require.Len(t, r.SupplierData, 1)
	s := r.SupplierData[0]
	require.Equal(t, 3, s.TotalProducts)
	require.Equal(t, float64(41), s.TotalInventoryValue)
	require.Equal(t, float64(300), s.TotalRevenue)
	require.Equal(t, 1, s.ActiveOrders)
	require.Equal(t, []string{"steel", "cement"}, s.Categories)

	require.Len(t, r.ServiceProviderData, 1)
	b := r.ServiceProviderData[0]
	require.Equal(t, 2, b.TotalBOQs)
	require.Equal(t, float64(150), b.TotalBOQValue)
	require.Equal(t, float64(300), b.TotalSpent)
	require.Equal(t, 1, b.ActivePOs)
	require.Equal(t, 1, b.ActiveBOQs)

	summaries := controllers.SummarizeUsers(users)
	require.Equal(t, "Individual", summaries[0].Company)
	require.Equal(t, "active", summaries[0].Status)
	require.Equal(t, "inactive", summaries[1].Status)
	require.Equal(t, "general", summaries[2].UserType)
}

func TestBuildAdminReportEmpty(t *testing.T) {
	r := controllers.BuildAdminReport(nil, nil, nil, nil)
	require.Equal(t, controllers.AdminStats{}, r.Stats)
	require.NotNil(t, r.Transactions)
	require.NotNil(t, r.SupplierData)
	require.NotNil(t, r.Orders)
}

func TestAdminDeactivatesUser(t *testing.T) {
	r, store, cfg := newRouter(t)
	u := testutils.SeedUser(t, store, "buyer@example.com", models.UserTypeServiceProvider)
	userTok := testutils.Token(t, cfg, u.ID)
	tok, _ := adminToken(t, r, cfg)

	w := testutils.DoJSON(t, r, http.MethodPut, "/api/admin/users/"+u.ID+"/status", tok, map[string]any{"status": "inactive"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	require.Equal(t, false, testutils.Decode(t, w)["user"].(map[string]any)["isActive"])

	w = testutils.DoJSON(t, r, http.MethodGet, "/api/profile", userTok, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "Account is deactivated", testutils.Decode(t, w)["message"])

	w = testutils.DoJSON(t, r, http.MethodGet, "/api/admin/users", tok, nil)
	users := testutils.Decode(t, w)["users"].([]any)
	require.Len(t, users, 2)

	w = testutils.DoJSON(t, r, http.MethodPut, "/api/admin/users/"+u.ID+"/status", tok, map[string]any{"status": "active"})
	require.Equal(t, http.StatusOK, w.Code)
	w = testutils.DoJSON(t, r, http.MethodGet, "/api/profile", userTok, nil)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestAdminUserStatusEdgeCases(t *testing.T) {
	r, _, cfg := newRouter(t)
	tok, adminID := adminToken(t, r, cfg)

	w := testutils.DoJSON(t, r, http.MethodPut, "/api/admin/users/"+adminID+"/status", tok, map[string]any{"status": "inactive"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "You cannot deactivate your own account", testutils.Decode(t, w)["message"])

	w = testutils.DoJSON(t, r, http.MethodPut, "/api/admin/users/missing/status", tok, map[string]any{"status": "inactive"})
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Equal(t, "User not found", testutils.Decode(t, w)["message"])

	w = testutils.DoJSON(t, r, http.MethodPut, "/api/admin/users/missing/status", tok, map[string]any{"status": "banned"})
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = testutils.DoJSON(t, r, http.MethodGet, "/api/admin/users/missing", tok, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
