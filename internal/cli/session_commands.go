package cli

import (
	"context"
	"flag"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/voltmarket/market-client/internal/core/domain"
	"github.com/voltmarket/market-client/internal/core/ports"
)

func (a *App) register() map[string]command {
	return map[string]command{
		"route":          {"print the landing screen for the stored session", a.route},
		"login":          {"sign in and store the session", a.login},
		"register":       {"create an account and store the session", a.signup},
		"logout":         {"sign out and clear the stored session", a.logout},
		"whoami":         {"show the stored session", a.whoami},
		"profile":        {"fetch the profile and refresh the stored user", a.profile},
		"profile-update": {"edit the profile", a.profileUpdate},

		"wallet":         {"show the shop wallet", a.wallet},
		"deposit":        {"add funds to the shop wallet", a.deposit},
		"packages":       {"list posting packages for sale", a.packages},
		"my-packages":    {"list the shop's purchased packages", a.myPackages},
		"buy":            {"purchase a posting package", a.buy},
		"my-posts":       {"list the shop's listings", a.myPosts},
		"post-create":    {"create a listing", a.postCreate},
		"post-update":    {"edit a listing", a.postUpdate},
		"post-status":    {"show or hide an approved listing", a.postStatus},
		"post-delete":    {"delete a listing", a.postDelete},
		"contacts":       {"list customer enquiries", a.contacts},
		"contact-status": {"update an enquiry's status", a.contactStatus},

		"admin-stats":    {"show dashboard totals", a.adminStats},
		"admin-users":    {"list users", a.adminUsers},
		"admin-ban":      {"ban or unban a user", a.adminBan},
		"admin-products": {"list listings for moderation", a.adminProducts},
		"admin-approve":  {"approve a listing", a.adminApprove},
		"admin-reject":   {"reject a listing", a.adminReject},
		"admin-revenue":  {"show package revenue", a.adminRevenue},

		"products":      {"browse approved listings", a.products},
		"product":       {"show one listing", a.product},
		"contact-check": {"check whether an enquiry was already sent", a.contactCheck},
		"contact":       {"send an enquiry to a shop", a.contact},
	}
}

func (a *App) route(ctx context.Context, args []string) error {
	fs := a.flags("route")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	return a.printJSON(map[string]domain.Route{"route": a.boot.InitialRoute(ctx)})
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := a.flags("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	if err := a.parse(fs, args); err != nil {
		return err
	}

	sess, err := a.auth.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	return a.printSession(sess)
}

func (a *App) signup(ctx context.Context, args []string) error {
	fs := a.flags("register")
	var in ports.RegisterInput
	fs.StringVar(&in.Email, "email", "", "account email")
	fs.StringVar(&in.Password, "password", "", "account password")
	fs.StringVar(&in.ConfirmPassword, "confirm", "", "password confirmation")
	role := fs.String("role", string(domain.RoleCustomer), "SHOP or CUSTOMER")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	in.RoleName = domain.Role(strings.ToUpper(*role))

	sess, err := a.auth.Register(ctx, in)
	if err != nil {
		return err
	}
	return a.printSession(sess)
}

func (a *App) logout(ctx context.Context, args []string) error {
	fs := a.flags("logout")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	return a.printJSON(map[string]domain.Route{"route": domain.RouteLogin})
}

type whoamiOutput struct {
	Authenticated bool         `json:"authenticated"`
	User          *domain.User `json:"user,omitempty"`
	Route         domain.Route `json:"route"`
	ExpiresAt     *time.Time   `json:"expiresAt,omitempty"`
	Expired       bool         `json:"expired,omitempty"`
}

func (a *App) whoami(ctx context.Context, args []string) error {
	fs := a.flags("whoami")
	if err := a.parse(fs, args); err != nil {
		return err
	}

	sess, err := a.auth.Current(ctx)
	if err != nil {
		return err
	}
	out := whoamiOutput{Route: domain.RouteForSession(sess)}
	if !sess.IsZero() {
		out.Authenticated = true
		out.User = sess.User
		if exp, ok := tokenExpiry(sess.Token); ok {
			out.ExpiresAt = &exp
			out.Expired = time.Now().After(exp)
		}
	}
	return a.printJSON(out)
}

// tokenExpiry reads the exp claim without verifying the signature; the
// client never holds the signing key. Opaque tokens report false.
func tokenExpiry(token string) (time.Time, bool) {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (a *App) profile(ctx context.Context, args []string) error {
	fs := a.flags("profile")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	user, err := a.auth.SyncProfile(ctx)
	if err != nil {
		return err
	}
	return a.printJSON(map[string]*domain.User{"user": user})
}

func (a *App) profileUpdate(ctx context.Context, args []string) error {
	fs := a.flags("profile-update")
	var in domain.ProfileUpdate
	fs.StringVar(&in.FullName, "name", "", "full name")
	fs.StringVar(&in.PhoneNumber, "phone", "", "phone number")
	fs.StringVar(&in.Address, "address", "", "address")
	dob := fs.String("dob", "", "date of birth (YYYY-MM-DD)")
	if err := a.parse(fs, args); err != nil {
		return err
	}
	if flagSet(fs, "dob") {
		in.DateOfBirth = dob
	}

	user, err := a.auth.UpdateProfile(ctx, in)
	if err != nil {
		return err
	}
	return a.printJSON(map[string]*domain.User{"user": user})
}

func (a *App) printSession(sess domain.Session) error {
	return a.printJSON(struct {
		User  *domain.User `json:"user"`
		Route domain.Route `json:"route"`
	}{sess.User, domain.RouteForSession(sess)})
}

// flagSet reports whether name was given explicitly on the command line.
func flagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}
