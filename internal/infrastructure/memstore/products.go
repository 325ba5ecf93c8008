package memstore

import (
	"context"
	"sort"
	"strings"

	"github.com/voltmarket/market-client/internal/core/domain"
	"github.com/voltmarket/market-client/internal/core/ports"
)

// CreateProduct spends one post from the shop's oldest active package and
// queues the listing for moderation.
func (s *Store) CreateProduct(_ context.Context, shopID string, in domain.ProductInput) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	var quota *purchase
	for _, p := range s.purchases {
		if p.shopID != shopID {
			continue
		}
		s.expire(p, now)
		if p.Status == packageActive && p.RemainingPosts > 0 {
			quota = p
			break
		}
	}
	if quota == nil {
		return domain.Product{}, domain.ErrNoPostQuota
	}
	quota.UsedPosts++
	quota.RemainingPosts--

	p := &domain.Product{
		ID:          newID(),
		ShopID:      shopID,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    in.Category,
		Brand:       in.Brand,
		Images:      in.Images,
		Specs:       in.Specs,
		Status:      domain.ProductPending,
		CreatedAt:   now.UTC(),
	}
	s.products[p.ID] = p
	return *p, nil
}

func (s *Store) UpdateProduct(_ context.Context, shopID, id string, patch ports.ProductPatch) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	if p.ShopID != shopID {
		return domain.Product{}, domain.ErrForbidden
	}

	edited := false
	if patch.Title != nil {
		p.Title, edited = strings.TrimSpace(*patch.Title), true
	}
	if patch.Description != nil {
		p.Description, edited = *patch.Description, true
	}
	if patch.Price != nil {
		p.Price, edited = *patch.Price, true
	}
	if patch.Stock != nil {
		p.Stock, edited = *patch.Stock, true
	}
	if patch.Category != nil {
		p.Category, edited = *patch.Category, true
	}
	if patch.Brand != nil {
		p.Brand, edited = *patch.Brand, true
	}
	if patch.Images != nil {
		p.Images, edited = patch.Images, true
	}
	if patch.Specs != nil {
		p.Specs, edited = patch.Specs, true
	}

	switch {
	case edited:
		p.Status = domain.ProductPending
		p.RejectedReason = ""
	case patch.Status != nil:
		// Shops may only hide or re-show a listing that passed moderation.
		if p.Status != domain.ProductApproved && p.Status != domain.ProductInactive {
			return domain.Product{}, domain.ErrForbidden
		}
		p.Status = *patch.Status
	}
	return *p, nil
}

func (s *Store) DeleteProduct(_ context.Context, shopID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.ShopID != shopID {
		return domain.ErrForbidden
	}
	delete(s.products, id)
	return nil
}

func (s *Store) ShopProducts(_ context.Context, shopID string) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Product{}
	for _, p := range s.products {
		if p.ShopID == shopID {
			out = append(out, *p)
		}
	}
	newestFirst(out)
	return out, nil
}

func (s *Store) Product(_ context.Context, id string) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	return *p, nil
}

// Products filters every listing; callers restrict Status for public views.
func (s *Store) Products(_ context.Context, f domain.Filters) (ports.ProductPage, error) {
	s.mu.RLock()
	matched := []domain.Product{}
	for _, p := range s.products {
		if matches(p, f) {
			matched = append(matched, *p)
		}
	}
	s.mu.RUnlock()

	newestFirst(matched)

	limit := f.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	page := f.Page
	if page <= 0 {
		page = 1
	}
	total := len(matched)
	start := min((page-1)*limit, total)
	end := min(start+limit, total)

	return ports.ProductPage{
		Products: matched[start:end],
		Total:    total,
		Page:     page,
		Pages:    (total + limit - 1) / limit,
	}, nil
}

func (s *Store) ReviewProduct(_ context.Context, id string, status domain.ProductStatus, reason string) (domain.Product, error) {
	if status != domain.ProductApproved && status != domain.ProductRejected {
		return domain.Product{}, domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, domain.ErrNotFound
	}
	p.Status = status
	p.RejectedReason = ""
	if status == domain.ProductRejected {
		p.RejectedReason = reason
	}
	return *p, nil
}

func matches(p *domain.Product, f domain.Filters) bool {
	if f.Status != "" && string(p.Status) != f.Status {
		return false
	}
	if f.Category != "" && p.Category != f.Category {
		return false
	}
	if f.Brand != "" && !strings.EqualFold(p.Brand, f.Brand) {
		return false
	}
	if f.MinPrice > 0 && p.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && p.Price > f.MaxPrice {
		return false
	}
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" {
		haystack := strings.ToLower(p.Title + " " + p.Description + " " + p.Brand)
		if !strings.Contains(haystack, q) {
			return false
		}
	}
	return true
}

func newestFirst(ps []domain.Product) {
	sort.SliceStable(ps, func(i, j int) bool { return ps[i].CreatedAt.After(ps[j].CreatedAt) })
}
