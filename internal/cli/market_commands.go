package cli

import (
	"context"
	"flag"
	"strings"

	"github.com/voltmarket/market-client/internal/core/domain"
)

// Shop

func (a *App) wallet(ctx context.Context, args []string) error {
	if err := a.parse(a.flags("wallet"), args); err != nil {
		return err
	}
	return a.printBody(a.client.Shop().Wallet(ctx))
}

func (a *App) deposit(ctx context.Context, args []string) error {
	fs := a.flags("deposit")
	amount := fs.Float64("amount", 0, "amount to add")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	return a.printBody(a.client.Shop().Deposit(ctx, *amount))
}

func (a *App) packages(ctx context.Context, args []string) error {
	if err := a.parse(a.flags("packages"), args); err != nil {
		return err
	}
	return a.printBody(a.client.Shop().AvailablePackages(ctx))
}

func (a *App) myPackages(ctx context.Context, args []string) error {
	if err := a.parse(a.flags("my-packages"), args); err != nil {
		return err
	}
	return a.printBody(a.client.Shop().MyPackages(ctx))
}

func (a *App) buy(ctx context.Context, args []string) error {
	fs := a.flags("buy")
	id := fs.String("id", "", "package id")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if err := a.require(fs, map[string]string{"id": *id}); err != nil {
		return err
	}
	return a.printBody(a.client.Shop().PurchasePackage(ctx, *id))
}

func (a *App) myPosts(ctx context.Context, args []string) error {
	if err := a.parse(a.flags("my-posts"), args); err != nil {
		return err
	}
	return a.printBody(a.client.Shop().MyPosts(ctx))
}

// productFlags binds the listing form onto fs. The returned func finishes
// the input after parsing.
func productFlags(fs *flag.FlagSet, in *domain.ProductInput) func() {
	fs.StringVar(&in.Title, "title", "", "listing title")
	fs.StringVar(&in.Description, "desc", "", "description")
	fs.Float64Var(&in.Price, "price", 0, "price")
	fs.IntVar(&in.Stock, "stock", 0, "units in stock")
	fs.StringVar(&in.Category, "category", domain.CategoryBattery, "BATTERY or ELECTRIC_SCOOTER")
	fs.StringVar(&in.Brand, "brand", "", "brand")
	images := fs.String("images", "", "comma-separated image URLs")
	return func() {
		in.Category = strings.ToUpper(in.Category)
		in.Images = splitList(*images)
	}
}

func (a *App) postCreate(ctx context.Context, args []string) error {
	fs := a.flags("post-create")
	var in domain.ProductInput
	finish := productFlags(fs, &in)
	if err := a.parse(fs, args); err != nil {
		return err
	}
	finish()
	if err := a.validate.Struct(in); err != nil {
		return err
	}
	return a.printBody(a.client.Shop().CreatePost(ctx, in))
}

func (a *App) postUpdate(ctx context.Context, args []string) error {
	fs := a.flags("post-update")
	id := fs.String("id", "", "listing id")
	var in domain.ProductInput
	finish := productFlags(fs, &in)
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if err := a.require(fs, map[string]string{"id": *id}); err != nil {
		return err
	}
	finish()
	if err := a.validate.Struct(in); err != nil {
		return err
	}
	return a.printBody(a.client.Shop().UpdatePost(ctx, *id, in))
}

func (a *App) postStatus(ctx context.Context, args []string) error {
	fs := a.flags("post-status")
	id := fs.String("id", "", "listing id")
	status := fs.String("status", "", "APPROVED (visible) or INACTIVE (hidden)")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if err := a.require(fs, map[string]string{"id": *id, "status": *status}); err != nil {
		return err
	}
	return a.printBody(a.client.Shop().UpdateProductStatus(ctx, *id, domain.ProductStatus(strings.ToUpper(*status))))
}

func (a *App) postDelete(ctx context.Context, args []string) error {
	fs := a.flags("post-delete")
	id := fs.String("id", "", "listing id")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if err := a.require(fs, map[string]string{"id": *id}); err != nil {
		return err
	}
	return a.printBody(a.client.Shop().DeletePost(ctx, *id))
}

func (a *App) contacts(ctx context.Context, args []string) error {
	fs := a.flags("contacts")
	var f domain.Filters
	filterFlags(fs, &f)
	if err := a.parse(fs, args); err != nil {
		return err
	}
	return a.printBody(a.client.Shop().Contacts(ctx, f))
}

func (a *App) contactStatus(ctx context.Context, args []string) error {
	fs := a.flags("contact-status")
	id := fs.String("id", "", "enquiry id")
	status := fs.String("status", "", "PENDING, CONTACTED or CLOSED")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if err := a.require(fs, map[string]string{"id": *id, "status": *status}); err != nil {
		return err
	}
	return a.printBody(a.client.Shop().UpdateContactStatus(ctx, *id, domain.ContactStatus(strings.ToUpper(*status))))
}

// Admin

func (a *App) adminStats(ctx context.Context, args []string) error {
	if err := a.parse(a.flags("admin-stats"), args); err != nil {
		return err
	}
	return a.printBody(a.client.Admin().Stats(ctx))
}

func (a *App) adminUsers(ctx context.Context, args []string) error {
	if err := a.parse(a.flags("admin-users"), args); err != nil {
		return err
	}
	return a.printBody(a.client.Admin().Users(ctx))
}

func (a *App) adminBan(ctx context.Context, args []string) error {
	fs := a.flags("admin-ban")
	id := fs.String("id", "", "user id")
	unban := fs.Bool("unban", false, "lift the ban instead")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if err := a.require(fs, map[string]string{"id": *id}); err != nil {
		return err
	}
	return a.printBody(a.client.Admin().BanUser(ctx, *id, !*unban))
}

func (a *App) adminProducts(ctx context.Context, args []string) error {
	fs := a.flags("admin-products")
	var f domain.Filters
	filterFlags(fs, &f)
	if err := a.parse(fs, args); err != nil {
		return err
	}
	return a.printBody(a.client.Admin().Products(ctx, f))
}

func (a *App) adminApprove(ctx context.Context, args []string) error {
	fs := a.flags("admin-approve")
	id := fs.String("id", "", "listing id")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if err := a.require(fs, map[string]string{"id": *id}); err != nil {
		return err
	}
	return a.printBody(a.client.Admin().ApproveProduct(ctx, *id))
}

func (a *App) adminReject(ctx context.Context, args []string) error {
	fs := a.flags("admin-reject")
	id := fs.String("id", "", "listing id")
	reason := fs.String("reason", "", "shown to the shop")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if err := a.require(fs, map[string]string{"id": *id, "reason": *reason}); err != nil {
		return err
	}
	return a.printBody(a.client.Admin().RejectProduct(ctx, *id, *reason))
}

func (a *App) adminRevenue(ctx context.Context, args []string) error {
	if err := a.parse(a.flags("admin-revenue"), args); err != nil {
		return err
	}
	return a.printBody(a.client.Admin().Revenue(ctx))
}

// Customer

func (a *App) products(ctx context.Context, args []string) error {
	fs := a.flags("products")
	var f domain.Filters
	filterFlags(fs, &f)
	if err := a.parse(fs, args); err != nil {
		return err
	}
	return a.printBody(a.client.Customer().Products(ctx, f))
}

func (a *App) product(ctx context.Context, args []string) error {
	fs := a.flags("product")
	id := fs.String("id", "", "listing id")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if err := a.require(fs, map[string]string{"id": *id}); err != nil {
		return err
	}
	return a.printBody(a.client.Customer().Product(ctx, *id))
}

func (a *App) contactCheck(ctx context.Context, args []string) error {
	fs := a.flags("contact-check")
	id := fs.String("id", "", "listing id")
	email := fs.String("email", "", "customer email")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if err := a.require(fs, map[string]string{"id": *id, "email": *email}); err != nil {
		return err
	}
	return a.printBody(a.client.Customer().CheckContact(ctx, *id, *email))
}

func (a *App) contact(ctx context.Context, args []string) error {
	fs := a.flags("contact")
	var in domain.ContactInput
	fs.StringVar(&in.ProductID, "id", "", "listing id")
	fs.StringVar(&in.CustomerName, "name", "", "your name")
	fs.StringVar(&in.CustomerPhone, "phone", "", "your phone number")
	fs.StringVar(&in.CustomerEmail, "email", "", "your email")
	fs.StringVar(&in.Message, "message", "", "message to the shop")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if err := a.validate.Struct(in); err != nil {
		return err
	}
	return a.printBody(a.client.Customer().ContactShop(ctx, in.ProductID, in))
}
