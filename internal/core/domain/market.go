package domain

import "time"

// ProductStatus is the moderation/visibility state of a listing.
type ProductStatus string

const (
	ProductPending  ProductStatus = "PENDING"
	ProductApproved ProductStatus = "APPROVED"
	ProductRejected ProductStatus = "REJECTED"
	ProductInactive ProductStatus = "INACTIVE"
)

// Category of listing.
const (
	CategoryBattery         = "BATTERY"
	CategoryElectricScooter = "ELECTRIC_SCOOTER"
)

// ContactStatus tracks a customer enquiry from the shop's side.
type ContactStatus string

const (
	ContactPending   ContactStatus = "PENDING"
	ContactContacted ContactStatus = "CONTACTED"
	ContactClosed    ContactStatus = "CLOSED"
)

// Wallet transaction types.
const (
	TxDeposit         = "DEPOSIT"
	TxPurchasePackage = "PURCHASE_PACKAGE"
)

// Specs holds the optional technical sheet of a battery or scooter.
type Specs struct {
	BatteryCapacityWh float64 `json:"batteryCapacityWh,omitempty"`
	MotorPowerW       float64 `json:"motorPowerW,omitempty"`
	RangeKm           float64 `json:"rangeKm,omitempty"`
	TopSpeedKmh       float64 `json:"topSpeedKmh,omitempty"`
	WeightKg          float64 `json:"weightKg,omitempty"`
}

// Product is a listing (a "post" from the shop's point of view).
type Product struct {
	ID             string        `json:"_id"`
	ShopID         string        `json:"shopId"`
	Title          string        `json:"title"`
	Description    string        `json:"description,omitempty"`
	Price          float64       `json:"price"`
	Stock          int           `json:"stock"`
	Category       string        `json:"category"`
	Brand          string        `json:"brand,omitempty"`
	Images         []string      `json:"images,omitempty"`
	Specs          *Specs        `json:"specs,omitempty"`
	Status         ProductStatus `json:"status"`
	RejectedReason string        `json:"rejectedReason,omitempty"`
	CreatedAt      time.Time     `json:"createdAt"`
}

// ProductInput is the create/update payload of a listing.
type ProductInput struct {
	Title       string   `json:"title"       validate:"required"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"       validate:"gt=0"`
	Stock       int      `json:"stock"       validate:"gte=0"`
	Category    string   `json:"category"    validate:"required,oneof=BATTERY ELECTRIC_SCOOTER"`
	Brand       string   `json:"brand,omitempty"`
	Images      []string `json:"images,omitempty"`
	Specs       *Specs   `json:"specs,omitempty"`
}

// Package is a posting plan sold to shops, or a shop's purchase of one.
type Package struct {
	ID             string     `json:"_id"`
	Name           string     `json:"name,omitempty"`
	PackageName    string     `json:"packageName,omitempty"`
	PackageType    string     `json:"packageType,omitempty"`
	Description    string     `json:"description,omitempty"`
	Price          float64    `json:"price"`
	DurationDays   int        `json:"duration,omitempty"`
	FreePosts      int        `json:"freePosts,omitempty"`
	UsedPosts      int        `json:"usedPosts,omitempty"`
	RemainingPosts int        `json:"remainingPosts,omitempty"`
	Status         string     `json:"status,omitempty"`
	ExpiresAt      *time.Time `json:"expiresAt,omitempty"`
}

// Transaction is a wallet ledger entry.
type Transaction struct {
	ID          string    `json:"_id"`
	Type        string    `json:"type"`
	Amount      float64   `json:"amount"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Wallet is a shop's balance and history.
type Wallet struct {
	Balance      float64       `json:"balance"`
	Transactions []Transaction `json:"transactions"`
}

// Contact is a customer's enquiry about a product.
type Contact struct {
	ID            string        `json:"_id"`
	ProductID     string        `json:"productId"`
	ShopID        string        `json:"shopId,omitempty"`
	CustomerName  string        `json:"customerName"`
	CustomerPhone string        `json:"customerPhone"`
	CustomerEmail string        `json:"customerEmail"`
	Message       string        `json:"message,omitempty"`
	Status        ContactStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
}

// ContactInput is the enquiry form sent by a customer.
type ContactInput struct {
	ProductID     string `json:"productId"     validate:"required"`
	CustomerName  string `json:"customerName"  validate:"required"`
	CustomerPhone string `json:"customerPhone" validate:"required"`
	CustomerEmail string `json:"customerEmail" validate:"required,email"`
	Message       string `json:"message,omitempty"`
}

// ProfileUpdate carries the editable customer profile fields.
type ProfileUpdate struct {
	FullName    string  `json:"fullName,omitempty"`
	PhoneNumber string  `json:"phoneNumber,omitempty"`
	Address     string  `json:"address,omitempty"`
	DateOfBirth *string `json:"dateOfBirth"`
}

// Stats is the admin dashboard aggregate.
type Stats struct {
	TotalUsers     int     `json:"totalUsers"`
	TotalShops     int     `json:"totalShops"`
	TotalCustomers int     `json:"totalCustomers"`
	TotalProducts  int     `json:"totalProducts"`
	TotalRevenue   float64 `json:"totalRevenue"`
}

// PackageRevenue is one row of the revenue breakdown.
type PackageRevenue struct {
	PackageName string  `json:"packageName"`
	Count       int     `json:"count"`
	Revenue     float64 `json:"revenue"`
}

// Revenue is the admin revenue report.
type Revenue struct {
	TotalRevenue float64          `json:"totalRevenue"`
	PackageStats []PackageRevenue `json:"packageStats"`
	Transactions []Transaction    `json:"transactions"`
}
