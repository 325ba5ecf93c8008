package memstore

import (
	"context"
	"sort"

	"github.com/voltmarket/market-client/internal/core/domain"
)

func (s *Store) Stats(_ context.Context) (domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := domain.Stats{TotalUsers: len(s.accounts), TotalProducts: len(s.products)}
	for _, acc := range s.accounts {
		switch acc.user.RoleName {
		case domain.RoleShop:
			st.TotalShops++
		case domain.RoleCustomer:
			st.TotalCustomers++
		}
	}
	for _, tx := range s.revenue {
		st.TotalRevenue += tx.Amount
	}
	return st, nil
}

// Revenue aggregates package sales, most lucrative package first.
func (s *Store) Revenue(_ context.Context) (domain.Revenue, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rev := domain.Revenue{
		PackageStats: []domain.PackageRevenue{},
		Transactions: make([]domain.Transaction, len(s.revenue)),
	}
	copy(rev.Transactions, s.revenue)

	byName := map[string]*domain.PackageRevenue{}
	for _, p := range s.purchases {
		row, ok := byName[p.PackageName]
		if !ok {
			row = &domain.PackageRevenue{PackageName: p.PackageName}
			byName[p.PackageName] = row
		}
		row.Count++
		row.Revenue += p.Price
		rev.TotalRevenue += p.Price
	}
	for _, row := range byName {
		rev.PackageStats = append(rev.PackageStats, *row)
	}
	sort.Slice(rev.PackageStats, func(i, j int) bool {
		a, b := rev.PackageStats[i], rev.PackageStats[j]
		if a.Revenue != b.Revenue {
			return a.Revenue > b.Revenue
		}
		return a.PackageName < b.PackageName
	})
	return rev, nil
}
