package ports

import (
	"context"

	"github.com/voltmarket/market-client/internal/core/domain"
)

// ProductPage is one page of a filtered product listing.
type ProductPage struct {
	Products []domain.Product
	Total    int
	Page     int
	Pages    int
}

// ProductPatch is a partial listing update sent by its shop. A non-empty
// Status only toggles visibility; any content change sends the listing back
// to moderation.
type ProductPatch struct {
	Title       *string               `json:"title"`
	Description *string               `json:"description"`
	Price       *float64              `json:"price"       validate:"omitempty,gt=0"`
	Stock       *int                  `json:"stock"       validate:"omitempty,gte=0"`
	Category    *string               `json:"category"    validate:"omitempty,oneof=BATTERY ELECTRIC_SCOOTER"`
	Brand       *string               `json:"brand"`
	Images      []string              `json:"images"`
	Specs       *domain.Specs         `json:"specs"`
	Status      *domain.ProductStatus `json:"status"      validate:"omitempty,oneof=APPROVED INACTIVE"`
}

// Marketplace is the data layer of the development backend.
type Marketplace interface {
	Register(ctx context.Context, email, password string, role domain.Role) (*domain.User, error)
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
	User(ctx context.Context, id string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id string, in domain.ProfileUpdate) (*domain.User, error)
	Users(ctx context.Context) ([]domain.User, error)
	SetBanned(ctx context.Context, id string, banned bool) (*domain.User, error)

	Wallet(ctx context.Context, shopID string) (domain.Wallet, error)
	Deposit(ctx context.Context, shopID string, amount float64) (domain.Wallet, error)
	Packages(ctx context.Context) ([]domain.Package, error)
	ShopPackages(ctx context.Context, shopID string) ([]domain.Package, error)
	PurchasePackage(ctx context.Context, shopID, packageID string) (domain.Package, domain.Wallet, error)

	CreateProduct(ctx context.Context, shopID string, in domain.ProductInput) (domain.Product, error)
	UpdateProduct(ctx context.Context, shopID, id string, patch ProductPatch) (domain.Product, error)
	DeleteProduct(ctx context.Context, shopID, id string) error
	ShopProducts(ctx context.Context, shopID string) ([]domain.Product, error)
	Product(ctx context.Context, id string) (domain.Product, error)
	Products(ctx context.Context, f domain.Filters) (ProductPage, error)
	ReviewProduct(ctx context.Context, id string, status domain.ProductStatus, reason string) (domain.Product, error)

	CreateContact(ctx context.Context, in domain.ContactInput) (domain.Contact, error)
	HasContacted(ctx context.Context, productID, email string) (bool, error)
	ShopContacts(ctx context.Context, shopID string, status domain.ContactStatus) ([]domain.Contact, error)
	UpdateContactStatus(ctx context.Context, shopID, id string, status domain.ContactStatus) (domain.Contact, error)

	Stats(ctx context.Context) (domain.Stats, error)
	Revenue(ctx context.Context) (domain.Revenue, error)
}
