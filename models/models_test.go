package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBOQTotalsAndCompletion(t *testing.T) {
	b := &BOQ{Items: []BOQItem{
		{Quantity: 10, Rate: 45},
		{Quantity: 2, Rate: 100, Amount: 150, NormalizedProduct: "Cement OPC 53"},
		{Quantity: 3},
	}}
	b.RecalculateTotal()
	require.Equal(t, float64(450+150), b.TotalValue)
	require.Equal(t, 3, b.ItemCount())
	require.Equal(t, 33, b.CompletionPercentage())

	empty := &BOQ{TotalValue: 99}
	empty.RecalculateTotal()
	require.Zero(t, empty.TotalValue)
	require.Zero(t, empty.CompletionPercentage())
}

func TestBOQSetStatus(t *testing.T) {
	b := &BOQ{Status: BOQStatusDraft}
	b.SetStatus(BOQStatusNormalized, "u1", "")
	require.Equal(t, BOQStatusNormalized, b.Status)
	require.NotNil(t, b.NormalizedAt)
	require.Nil(t, b.CompletedAt)

	b.SetStatus(BOQStatusCompleted, "u1", "done")
	require.NotNil(t, b.CompletedAt)
	require.Len(t, b.ProcessingLog, 2)
	require.Equal(t, "status:completed", b.ProcessingLog[1].Action)
	require.Equal(t, "done", b.ProcessingLog[1].Details)

	require.True(t, IsBOQStatus(BOQStatusVendorSelection))
	require.False(t, IsBOQStatus("archived"))
}

func TestOrderStatusHistory(t *testing.T) {
	o := &Order{Items: []OrderItem{{TotalPrice: 450}, {TotalPrice: 50}}}
	o.RecalculateTotal()
	require.Equal(t, float64(500), o.TotalAmount)

	o.AddStatusHistory(OrderStatusPending, "buyer", "Order placed")
	require.Nil(t, o.ActualDeliveryDate)
	o.AddStatusHistory(OrderStatusDelivered, "seller", "")
	require.Equal(t, OrderStatusDelivered, o.Status)
	require.NotNil(t, o.ActualDeliveryDate)
	first := *o.ActualDeliveryDate

	o.AddStatusHistory(OrderStatusDelivered, "seller", "again")
	require.Equal(t, first, *o.ActualDeliveryDate)
	require.Len(t, o.StatusHistory, 3)
	require.Equal(t, "seller", o.StatusHistory[1].UpdatedBy)
}

func TestOrderParties(t *testing.T) {
	o := &Order{ServiceProvider: "b", Supplier: "s"}
	require.True(t, o.IsParty("b"))
	require.True(t, o.IsParty("s"))
	require.False(t, o.IsParty("x"))
}

func TestDeliveryStatus(t *testing.T) {
	now := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	past, future := now.Add(-time.Hour), now.Add(time.Hour)
	require.Equal(t, "on-time", (&Order{}).DeliveryStatus(now))
	require.Equal(t, "on-time", (&Order{ExpectedDeliveryDate: &future}).DeliveryStatus(now))
	require.Equal(t, "overdue", (&Order{ExpectedDeliveryDate: &past}).DeliveryStatus(now))
	require.Equal(t, "delivered", (&Order{ExpectedDeliveryDate: &past, ActualDeliveryDate: &now}).DeliveryStatus(now))
}

func TestOrderNumbers(t *testing.T) {
	at := time.Date(2024, 3, 31, 23, 0, 0, 0, time.UTC)
	require.Equal(t, "ORD2024030007", FormatOrderNumber(at, 7))
	require.Equal(t, "ORD20240312345", FormatOrderNumber(at, 12345))

	start, end := MonthBounds(at)
	require.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), start)
	require.Equal(t, time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestProfileViewIsRoleShaped(t *testing.T) {
	buyer := &User{ID: "b", UserType: UserTypeServiceProvider, Company: "Skyline", Profile: UserProfile{GSTIN: "29AB"}}
	v := buyer.ProfileView()
	require.Equal(t, "29AB", v["gstin"])
	require.Equal(t, []Project{}, v["projects"])
	require.NotContains(t, v, "mainGstin")
	require.Equal(t, "Skyline", v["companyName"])

	seller := &User{ID: "s", UserType: UserTypeSupplier, Profile: UserProfile{BusinessType: "Distributor"}}
	v = seller.ProfileView()
	require.Equal(t, "Distributor", v["businessType"])
	require.Equal(t, []Branch{}, v["branches"])
	require.NotContains(t, v, "projects")
}

func TestProfileUpdateApply(t *testing.T) {
	u := &User{Email: "a@example.com", UserType: UserTypeSupplier, Password: "hash", Company: "Old"}
	company, phone := "New Co", "98450"
	ProfileUpdateRequest{CompanyName: &company, Phone: &phone, Branches: []Branch{{Name: "Pune"}}}.Apply(u)
	require.Equal(t, "New Co", u.Company)
	require.Equal(t, "98450", u.Phone)
	require.Len(t, u.Profile.Branches, 1)
	require.Equal(t, "a@example.com", u.Email)
	require.Equal(t, UserTypeSupplier, u.UserType)
	require.Equal(t, "hash", u.Password)
}

func TestProductUpdateApply(t *testing.T) {
	p := &Product{Name: "Bars", Price: 45, Stock: 10, IsActive: true}
	price, inactive := 50.0, false
	ProductUpdateRequest{Price: &price, IsActive: &inactive}.Apply(p)
	require.Equal(t, "Bars", p.Name)
	require.Equal(t, 50.0, p.Price)
	require.False(t, p.IsActive)
	require.Equal(t, 500.0, p.StockValue())
}

func TestUserHelpers(t *testing.T) {
	u := &User{Name: "Asha", Email: "boss@example.com"}
	require.Equal(t, "Asha", u.DisplayName())
	require.True(t, u.IsAdmin("boss@example.com"))
	require.False(t, u.IsAdmin(""))
	u.UserType = UserTypeAdmin
	require.True(t, u.IsAdmin(""))

	require.True(t, IsCategory("steel"))
	require.False(t, IsUnit("crate"))
}
