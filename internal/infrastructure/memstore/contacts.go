package memstore

import (
	"context"
	"sort"
	"strings"

	"github.com/voltmarket/market-client/internal/core/domain"
)

// CreateContact records an enquiry about an approved listing.
func (s *Store) CreateContact(_ context.Context, in domain.ContactInput) (domain.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[in.ProductID]
	if !ok || p.Status != domain.ProductApproved {
		return domain.Contact{}, domain.ErrNotFound
	}

	c := &domain.Contact{
		ID:            newID(),
		ProductID:     p.ID,
		ShopID:        p.ShopID,
		CustomerName:  strings.TrimSpace(in.CustomerName),
		CustomerPhone: strings.TrimSpace(in.CustomerPhone),
		CustomerEmail: strings.ToLower(strings.TrimSpace(in.CustomerEmail)),
		Message:       in.Message,
		Status:        domain.ContactPending,
		CreatedAt:     s.now().UTC(),
	}
	s.contacts[c.ID] = c
	return *c, nil
}

func (s *Store) HasContacted(_ context.Context, productID, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.contacts {
		if c.ProductID == productID && c.CustomerEmail == email {
			return true, nil
		}
	}
	return false, nil
}

// ShopContacts lists enquiries for the shop's listings, newest first. An
// empty status returns all of them.
func (s *Store) ShopContacts(_ context.Context, shopID string, status domain.ContactStatus) ([]domain.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []domain.Contact{}
	for _, c := range s.contacts {
		if c.ShopID != shopID || (status != "" && c.Status != status) {
			continue
		}
		out = append(out, *c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) UpdateContactStatus(_ context.Context, shopID, id string, status domain.ContactStatus) (domain.Contact, error) {
	switch status {
	case domain.ContactPending, domain.ContactContacted, domain.ContactClosed:
	default:
		return domain.Contact{}, domain.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.contacts[id]
	if !ok {
		return domain.Contact{}, domain.ErrNotFound
	}
	if c.ShopID != shopID {
		return domain.Contact{}, domain.ErrForbidden
	}
	c.Status = status
	return *c, nil
}
