// Package memstore is the in-memory data layer of the development backend.
// Everything lives in maps guarded by one RWMutex and is lost on restart.
package memstore

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/voltmarket/market-client/internal/core/domain"
	"github.com/voltmarket/market-client/internal/core/ports"
)

const (
	defaultPageSize = 20
	packageActive   = "ACTIVE"
	packageExpired  = "EXPIRED"
)

type account struct {
	user         domain.User
	passwordHash []byte
	createdAt    time.Time
}

type purchase struct {
	domain.Package
	shopID string
}

// Options tunes a Store.
type Options struct {
	// AdminEmail and AdminPassword seed one administrator when both are set.
	AdminEmail    string
	AdminPassword string
	// BcryptCost defaults to bcrypt.DefaultCost.
	BcryptCost int
	// Now replaces the clock in tests.
	Now func() time.Time
}

// Store implements ports.Marketplace.
type Store struct {
	mu sync.RWMutex

	cost int
	now  func() time.Time

	accounts  map[string]*account
	byEmail   map[string]string
	wallets   map[string]*domain.Wallet
	catalogue []domain.Package
	purchases []*purchase
	products  map[string]*domain.Product
	contacts  map[string]*domain.Contact
	revenue   []domain.Transaction
}

var _ ports.Marketplace = (*Store)(nil)

func New(opts Options) (*Store, error) {
	s := &Store{
		cost:     opts.BcryptCost,
		now:      opts.Now,
		accounts: make(map[string]*account),
		byEmail:  make(map[string]string),
		wallets:  make(map[string]*domain.Wallet),
		products: make(map[string]*domain.Product),
		contacts: make(map[string]*domain.Contact),
	}
	if s.cost == 0 {
		s.cost = bcrypt.DefaultCost
	}
	if s.now == nil {
		s.now = time.Now
	}
	s.catalogue = defaultCatalogue()

	if opts.AdminEmail != "" && opts.AdminPassword != "" {
		if _, err := s.Register(context.Background(), opts.AdminEmail, opts.AdminPassword, domain.RoleAdmin); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func defaultCatalogue() []domain.Package {
	return []domain.Package{
		{ID: "pkg-basic", Name: "Basic", PackageType: "BASIC", Description: "5 posts for 30 days", Price: 50000, DurationDays: 30, FreePosts: 5},
		{ID: "pkg-standard", Name: "Standard", PackageType: "STANDARD", Description: "20 posts for 30 days", Price: 150000, DurationDays: 30, FreePosts: 20},
		{ID: "pkg-premium", Name: "Premium", PackageType: "PREMIUM", Description: "60 posts for 90 days", Price: 400000, DurationDays: 90, FreePosts: 60},
	}
}

func newID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
}

// ── Accounts ────────────────────────────────────────────────────────────────

func (s *Store) Register(_ context.Context, email, password string, role domain.Role) (*domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" || !role.Valid() {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byEmail[email]; exists {
		return nil, domain.ErrUserExists
	}
	acc := &account{
		user:         domain.User{ID: newID(), Email: email, RoleName: role},
		passwordHash: hash,
		createdAt:    s.now().UTC(),
	}
	s.accounts[acc.user.ID] = acc
	s.byEmail[email] = acc.user.ID
	if role == domain.RoleShop {
		s.wallets[acc.user.ID] = &domain.Wallet{Transactions: []domain.Transaction{}}
	}

	u := acc.user
	return &u, nil
}

func (s *Store) Authenticate(_ context.Context, email, password string) (*domain.User, error) {
	s.mu.RLock()
	id, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
	var acc account
	if ok {
		acc = *s.accounts[id]
	}
	s.mu.RUnlock()

	if !ok || bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if acc.user.IsBanned {
		return nil, domain.ErrUserBanned
	}
	return &acc.user, nil
}

func (s *Store) User(_ context.Context, id string) (*domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u := acc.user
	return &u, nil
}

func (s *Store) UpdateProfile(_ context.Context, id string, in domain.ProfileUpdate) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	acc.user.FullName = in.FullName
	acc.user.PhoneNumber = in.PhoneNumber
	acc.user.Address = in.Address
	acc.user.DateOfBirth = ""
	if in.DateOfBirth != nil {
		acc.user.DateOfBirth = *in.DateOfBirth
	}
	u := acc.user
	return &u, nil
}

func (s *Store) Users(_ context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accs := make([]*account, 0, len(s.accounts))
	for _, acc := range s.accounts {
		accs = append(accs, acc)
	}
	sort.Slice(accs, func(i, j int) bool { return accs[i].createdAt.After(accs[j].createdAt) })

	users := make([]domain.User, len(accs))
	for i, acc := range accs {
		users[i] = acc.user
	}
	return users, nil
}

func (s *Store) SetBanned(_ context.Context, id string, banned bool) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	if acc.user.RoleName == domain.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	acc.user.IsBanned = banned
	u := acc.user
	return &u, nil
}

// ── Wallet & packages ───────────────────────────────────────────────────────

func (s *Store) Wallet(_ context.Context, shopID string) (domain.Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	w, ok := s.wallets[shopID]
	if !ok {
		return domain.Wallet{}, domain.ErrNotFound
	}
	return copyWallet(w), nil
}

func (s *Store) Deposit(_ context.Context, shopID string, amount float64) (domain.Wallet, error) {
	if amount <= 0 || math.IsInf(amount, 0) || math.IsNaN(amount) {
		return domain.Wallet{}, domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	w, ok := s.wallets[shopID]
	if !ok {
		return domain.Wallet{}, domain.ErrNotFound
	}
	w.Balance += amount
	w.Transactions = append(w.Transactions, domain.Transaction{
		ID:          newID(),
		Type:        domain.TxDeposit,
		Amount:      amount,
		Description: "Wallet deposit",
		CreatedAt:   s.now().UTC(),
	})
	return copyWallet(w), nil
}

func (s *Store) Packages(_ context.Context) ([]domain.Package, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Package, len(s.catalogue))
	copy(out, s.catalogue)
	return out, nil
}

func (s *Store) ShopPackages(_ context.Context, shopID string) ([]domain.Package, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	out := []domain.Package{}
	for _, p := range s.purchases {
		if p.shopID != shopID {
			continue
		}
		s.expire(p, now)
		out = append(out, p.Package)
	}
	return out, nil
}

func (s *Store) PurchasePackage(_ context.Context, shopID, packageID string) (domain.Package, domain.Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var plan *domain.Package
	for i := range s.catalogue {
		if s.catalogue[i].ID == packageID {
			plan = &s.catalogue[i]
			break
		}
	}
	if plan == nil {
		return domain.Package{}, domain.Wallet{}, domain.ErrNotFound
	}
	w, ok := s.wallets[shopID]
	if !ok {
		return domain.Package{}, domain.Wallet{}, domain.ErrNotFound
	}
	if w.Balance < plan.Price {
		return domain.Package{}, copyWallet(w), domain.ErrInsufficientBalance
	}

	now := s.now().UTC()
	expires := now.AddDate(0, 0, plan.DurationDays)
	bought := &purchase{
		shopID: shopID,
		Package: domain.Package{
			ID:             newID(),
			PackageName:    plan.Name,
			PackageType:    plan.PackageType,
			Price:          plan.Price,
			DurationDays:   plan.DurationDays,
			FreePosts:      plan.FreePosts,
			RemainingPosts: plan.FreePosts,
			Status:         packageActive,
			ExpiresAt:      &expires,
		},
	}
	s.purchases = append(s.purchases, bought)

	tx := domain.Transaction{
		ID:          newID(),
		Type:        domain.TxPurchasePackage,
		Amount:      plan.Price,
		Description: "Purchase " + plan.Name,
		CreatedAt:   now,
	}
	w.Balance -= plan.Price
	w.Transactions = append(w.Transactions, tx)
	s.revenue = append(s.revenue, tx)

	return bought.Package, copyWallet(w), nil
}

func (s *Store) expire(p *purchase, now time.Time) {
	if p.Status == packageActive && p.ExpiresAt != nil && now.After(*p.ExpiresAt) {
		p.Status = packageExpired
	}
}

func copyWallet(w *domain.Wallet) domain.Wallet {
	out := domain.Wallet{Balance: w.Balance, Transactions: make([]domain.Transaction, len(w.Transactions))}
	copy(out.Transactions, w.Transactions)
	return out
}
