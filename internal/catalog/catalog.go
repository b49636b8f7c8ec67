package catalog

import (
	"bytes"
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

//go:embed data/products.csv
var embeddedProducts []byte

// Embroidery types supported by the pricing table.
const (
	EmbroideryFlat = "flat"
	Embroidery3D   = "3d"
)

// QuantityTiers lists the order quantities the price table is keyed by,
// in ascending order.
var QuantityTiers = []string{"24", "48", "96", "144", "576", "2500+"}

// Product is one flat catalog row. Pricing maps are keyed by quantity
// tier; a tier missing from the map has no published price.
type Product struct {
	ID               string
	Title            string
	Features         string
	Sizing           string
	FlatEmbroidery   map[string]float64
	ThreeDEmbroidery map[string]float64
	AvailableColors  []string
}

// Catalog is the in-memory product table, loaded once at startup.
type Catalog struct {
	products []Product
	byID     map[string]int
}

// LoadEmbedded parses the catalog shipped with the binary.
func LoadEmbedded() (*Catalog, error) {
	return Load(bytes.NewReader(embeddedProducts))
}

// MustLoadEmbedded is LoadEmbedded for startup paths where a broken
// embedded table is unrecoverable.
func MustLoadEmbedded() *Catalog {
	c, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	return c
}

// Load parses a catalog CSV. Expected header:
//
//	id,title,features,sizing,
//	flat_embroidery_24,...,flat_embroidery_2500+,
//	3d_embroidery_24,...,3d_embroidery_2500+,
//	available_colors
//
// Price cells may be empty when no price is published for a tier.
// Colors are separated by semicolons.
func Load(r io.Reader) (*Catalog, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read catalog header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{"id", "title", "features", "sizing", "available_colors"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("catalog header missing column %q", required)
		}
	}

	c := &Catalog{byID: make(map[string]int)}
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read catalog row: %w", err)
		}

		p := Product{
			ID:               strings.TrimSpace(row[col["id"]]),
			Title:            strings.TrimSpace(row[col["title"]]),
			Features:         strings.TrimSpace(row[col["features"]]),
			Sizing:           strings.TrimSpace(row[col["sizing"]]),
			FlatEmbroidery:   map[string]float64{},
			ThreeDEmbroidery: map[string]float64{},
			AvailableColors:  splitColors(row[col["available_colors"]]),
		}
		if p.ID == "" || p.Title == "" {
			continue
		}

		for _, tier := range QuantityTiers {
			if v, ok, err := priceCell(row, col, "flat_embroidery_"+tier); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			} else if ok {
				p.FlatEmbroidery[tier] = v
			}
			if v, ok, err := priceCell(row, col, "3d_embroidery_"+tier); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			} else if ok {
				p.ThreeDEmbroidery[tier] = v
			}
		}

		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}

	if len(c.products) == 0 {
		return nil, fmt.Errorf("catalog is empty")
	}
	return c, nil
}

func priceCell(row []string, col map[string]int, name string) (float64, bool, error) {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return 0, false, nil
	}
	cell := strings.TrimSpace(row[i])
	if cell == "" {
		return 0, false, nil
	}
	v, err := strconv.ParseFloat(cell, 64)
	if err != nil {
		return 0, false, fmt.Errorf("column %s: invalid price %q", name, cell)
	}
	return v, true, nil
}

func splitColors(cell string) []string {
	var colors []string
	for _, c := range strings.Split(cell, ";") {
		if c = strings.TrimSpace(c); c != "" {
			colors = append(colors, c)
		}
	}
	return colors
}

// NormalizeID accepts identifiers with or without the 'i' prefix.
func NormalizeID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return id
	}
	if !strings.HasPrefix(id, "i") {
		return "i" + id
	}
	return id
}

// Get looks up a product by ID, tolerating a missing 'i' prefix.
func (c *Catalog) Get(id string) (Product, bool) {
	i, ok := c.byID[NormalizeID(id)]
	if !ok {
		return Product{}, false
	}
	return c.products[i], true
}

// Search matches the keyword case-insensitively against title and features.
func (c *Catalog) Search(keyword string) []Product {
	kw := strings.ToLower(strings.TrimSpace(keyword))
	if kw == "" {
		return nil
	}
	var out []Product
	for _, p := range c.products {
		if strings.Contains(strings.ToLower(p.Title), kw) ||
			strings.Contains(strings.ToLower(p.Features), kw) {
			out = append(out, p)
		}
	}
	return out
}

// All returns every product in catalog order.
func (c *Catalog) All() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// SampleIDs returns up to n product IDs, used in not-found payloads.
func (c *Catalog) SampleIDs(n int) []string {
	if n > len(c.products) {
		n = len(c.products)
	}
	ids := make([]string, 0, n)
	for _, p := range c.products[:n] {
		ids = append(ids, p.ID)
	}
	return ids
}

// SampleTitles returns up to n product titles, used in empty-search payloads.
func (c *Catalog) SampleTitles(n int) []string {
	if n > len(c.products) {
		n = len(c.products)
	}
	titles := make([]string, 0, n)
	for _, p := range c.products[:n] {
		titles = append(titles, p.Title)
	}
	return titles
}

// TierFor maps an order quantity onto the price-table tier that applies.
func TierFor(quantity int) string {
	switch {
	case quantity >= 2500:
		return "2500+"
	case quantity >= 576:
		return "576"
	case quantity >= 144:
		return "144"
	case quantity >= 96:
		return "96"
	case quantity >= 48:
		return "48"
	default:
		return "24"
	}
}

// NormalizeEmbroidery folds unknown embroidery types to flat, matching
// the forgiving behavior of the pricing tools.
func NormalizeEmbroidery(embroideryType string) string {
	switch strings.ToLower(strings.TrimSpace(embroideryType)) {
	case Embroidery3D:
		return Embroidery3D
	default:
		return EmbroideryFlat
	}
}

// UnitPrice returns the published per-unit price for the product at the
// tier covering the given quantity.
func (c *Catalog) UnitPrice(id, embroideryType string, quantity int) (float64, error) {
	p, ok := c.Get(id)
	if !ok {
		return 0, fmt.Errorf("product %s not found", NormalizeID(id))
	}

	embroideryType = NormalizeEmbroidery(embroideryType)
	tier := TierFor(quantity)

	table := p.FlatEmbroidery
	if embroideryType == Embroidery3D {
		table = p.ThreeDEmbroidery
	}
	price, ok := table[tier]
	if !ok {
		return 0, fmt.Errorf("pricing not available for %s embroidery at quantity %d", embroideryType, quantity)
	}
	return price, nil
}
