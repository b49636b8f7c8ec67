package catalog

import (
	"fmt"
	"sort"
	"strings"
)

// patchPrices is the per-unit patch upcharge table, keyed by patch type.
var patchPrices = map[string]float64{
	"molded_rubber":    6.00,
	"woven":            5.00,
	"embroidered":      4.00,
	"faux_leather":     4.00,
	"genuine_leather":  5.00,
	"debossed_leather": 5.00,
	"flexstyle":        5.00,
	"sublimated":       4.00,
}

// PatchTypes returns the known patch types in stable order.
func PatchTypes() []string {
	types := make([]string, 0, len(patchPrices))
	for t := range patchPrices {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// PatchPrice returns the per-unit price for a patch type. Type names
// are matched case-insensitively with spaces or dashes treated as
// underscores ("Molded Rubber" == "molded_rubber").
func PatchPrice(patchType string) (float64, bool) {
	key := strings.ToLower(strings.TrimSpace(patchType))
	key = strings.NewReplacer(" ", "_", "-", "_").Replace(key)
	price, ok := patchPrices[key]
	return price, ok
}

// AllPatchPrices returns a copy of the whole patch price table.
func AllPatchPrices() map[string]float64 {
	out := make(map[string]float64, len(patchPrices))
	for t, p := range patchPrices {
		out[t] = p
	}
	return out
}

// Quote is an itemized order price: base embroidered unit price plus an
// optional patch upcharge, multiplied out over the quantity.
type Quote struct {
	ProductID      string  `json:"product_id"`
	ProductTitle   string  `json:"product_title"`
	EmbroideryType string  `json:"embroidery_type"`
	PatchType      string  `json:"patch_type,omitempty"`
	Quantity       int     `json:"quantity"`
	BaseUnitPrice  float64 `json:"base_unit_price"`
	PatchUnitPrice float64 `json:"patch_unit_price"`
	UnitPrice      float64 `json:"unit_price"`
	TotalCost      float64 `json:"total_cost"`
	Currency       string  `json:"currency"`
}

// QuoteTotal prices a complete order. patchType may be empty for plain
// embroidered caps.
func (c *Catalog) QuoteTotal(id, embroideryType string, quantity int, patchType string) (*Quote, error) {
	p, ok := c.Get(id)
	if !ok {
		return nil, fmt.Errorf("product %s not found", NormalizeID(id))
	}

	embroideryType = NormalizeEmbroidery(embroideryType)
	base, err := c.UnitPrice(id, embroideryType, quantity)
	if err != nil {
		return nil, err
	}

	var patchUnit float64
	if strings.TrimSpace(patchType) != "" {
		patchUnit, ok = PatchPrice(patchType)
		if !ok {
			return nil, fmt.Errorf("unknown patch type %q, available: %s", patchType, strings.Join(PatchTypes(), ", "))
		}
	}

	unit := base + patchUnit
	return &Quote{
		ProductID:      p.ID,
		ProductTitle:   p.Title,
		EmbroideryType: embroideryType,
		PatchType:      strings.TrimSpace(patchType),
		Quantity:       quantity,
		BaseUnitPrice:  base,
		PatchUnitPrice: patchUnit,
		UnitPrice:      unit,
		TotalCost:      unit * float64(quantity),
		Currency:       "USD",
	}, nil
}
