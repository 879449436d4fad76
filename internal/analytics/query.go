package analytics

import (
	"sort"
	"strings"

	"folio/internal/models"

	"github.com/shopspring/decimal"
)

type sortField struct {
	text   func(h models.Holding) string
	number func(h models.Holding) decimal.Decimal
}

func (f sortField) less(a, b models.Holding) bool {
	if f.text != nil {
		return strings.ToLower(f.text(a)) < strings.ToLower(f.text(b))
	}
	return f.number(a).LessThan(f.number(b))
}

// sortFields is keyed by the holding's JSON field names.
var sortFields = map[string]sortField{
	"symbol":          {text: func(h models.Holding) string { return h.Symbol }},
	"name":            {text: func(h models.Holding) string { return h.Name }},
	"sector":          {text: func(h models.Holding) string { return h.Sector }},
	"marketCap":       {text: func(h models.Holding) string { return h.MarketCap }},
	"exchange":        {text: func(h models.Holding) string { return h.Exchange }},
	"quantity":        {number: func(h models.Holding) decimal.Decimal { return decimal.NewFromInt(h.Quantity) }},
	"avgPrice":        {number: func(h models.Holding) decimal.Decimal { return h.AvgPrice }},
	"currentPrice":    {number: func(h models.Holding) decimal.Decimal { return h.CurrentPrice }},
	"value":           {number: func(h models.Holding) decimal.Decimal { return h.Value }},
	"gainLoss":        {number: func(h models.Holding) decimal.Decimal { return h.GainLoss }},
	"gainLossPercent": {number: func(h models.Holding) decimal.Decimal { return h.GainLossPercent }},
}

// IsSortKey reports whether key names a sortable holding field.
func IsSortKey(key string) bool {
	_, ok := sortFields[key]
	return ok
}

// ApplyQuery filters holdings by sector, market cap and search text, then
// stable-sorts by the query's sort key. The input slice is never modified;
// an unknown or empty sort key leaves the filtered rows in input order.
func ApplyQuery(holdings []models.Holding, q models.QueryState) []models.Holding {
	search := strings.ToLower(q.SearchText)
	view := make([]models.Holding, 0, len(holdings))
	for _, h := range holdings {
		if q.SectorFilter != "" && h.Sector != q.SectorFilter {
			continue
		}
		if q.MarketCapFilter != "" && h.MarketCap != q.MarketCapFilter {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(h.Symbol), search) &&
			!strings.Contains(strings.ToLower(h.Name), search) {
			continue
		}
		view = append(view, h)
	}

	field, ok := sortFields[q.SortKey]
	if !ok {
		return view
	}
	desc := q.SortDirection == models.SortDesc
	sort.SliceStable(view, func(i, j int) bool {
		if desc {
			return field.less(view[j], view[i])
		}
		return field.less(view[i], view[j])
	})
	return view
}

// Filters lists the distinct non-empty sectors and market caps, sorted.
func Filters(holdings []models.Holding) models.FilterOptions {
	return models.FilterOptions{
		Sectors:    distinct(holdings, func(h models.Holding) string { return h.Sector }),
		MarketCaps: distinct(holdings, func(h models.Holding) string { return h.MarketCap }),
	}
}

func distinct(holdings []models.Holding, key func(models.Holding) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, h := range holdings {
		k := key(h)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
