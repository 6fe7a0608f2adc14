package models

const (
	UserTypeServiceProvider = "service_provider"
	UserTypeSupplier        = "supplier"
	UserTypeAdmin           = "admin"
)

// Categories and units are shared by products and BOQ items.
var (
	Categories = []string{"steel", "cement", "aggregates", "masonry", "electrical", "plumbing", "hardware", "other"}
	Units      = []string{"kg", "ton", "bag", "cft", "nos", "sqft", "meter", "liter"}
)

// Name and description limits, counted in characters.
const (
	MaxNameLength        = 100
	MaxDescriptionLength = 500
)

const (
	BOQStatusDraft           = "draft"
	BOQStatusProcessing      = "processing"
	BOQStatusNormalized      = "normalized"
	BOQStatusVendorSelection = "vendor_selection"
	BOQStatusCompleted       = "completed"
	BOQStatusCancelled       = "cancelled"
)

const (
	OrderStatusPending    = "pending"
	OrderStatusConfirmed  = "confirmed"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
	OrderStatusReturned   = "returned"
)

const (
	PaymentPending  = "pending"
	PaymentPartial  = "partial"
	PaymentPaid     = "paid"
	PaymentRefunded = "refunded"
)

func IsCategory(s string) bool { return contains(Categories, s) }

func IsUnit(s string) bool { return contains(Units, s) }

func contains(set []string, s string) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
