package domain

import (
	"net/url"
	"strconv"
)

// Filters are the optional named filters of list endpoints. Zero-valued
// fields are left out of the query string.
type Filters struct {
	Status   string
	Category string
	Search   string
	Brand    string
	MinPrice float64
	MaxPrice float64
	Page     int
	Limit    int
}

// Values encodes the set fields, each key at most once.
func (f Filters) Values() url.Values {
	v := url.Values{}
	setString(v, "status", f.Status)
	setString(v, "category", f.Category)
	setString(v, "search", f.Search)
	setString(v, "brand", f.Brand)
	if f.MinPrice != 0 {
		v.Set("minPrice", strconv.FormatFloat(f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != 0 {
		v.Set("maxPrice", strconv.FormatFloat(f.MaxPrice, 'f', -1, 64))
	}
	if f.Page != 0 {
		v.Set("page", strconv.Itoa(f.Page))
	}
	if f.Limit != 0 {
		v.Set("limit", strconv.Itoa(f.Limit))
	}
	return v
}

// FiltersFromValues is the inverse of Values, used by handlers that accept
// the same query parameters. Unparseable numbers read as zero.
func FiltersFromValues(v url.Values) Filters {
	f := Filters{
		Status:   v.Get("status"),
		Category: v.Get("category"),
		Search:   v.Get("search"),
		Brand:    v.Get("brand"),
	}
	f.MinPrice, _ = strconv.ParseFloat(v.Get("minPrice"), 64)
	f.MaxPrice, _ = strconv.ParseFloat(v.Get("maxPrice"), 64)
	f.Page, _ = strconv.Atoi(v.Get("page"))
	f.Limit, _ = strconv.Atoi(v.Get("limit"))
	return f
}

func setString(v url.Values, key, val string) {
	if val != "" {
		v.Set(key, val)
	}
}
