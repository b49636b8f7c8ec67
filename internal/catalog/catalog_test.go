package catalog

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbedded(t *testing.T) {
	c, err := LoadEmbedded()
	require.NoError(t, err)
	assert.NotEmpty(t, c.All())
}

func TestLoadRejectsBadInput(t *testing.T) {
	t.Run("missing required column", func(t *testing.T) {
		_, err := Load(strings.NewReader("id,title\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing column")
	})

	t.Run("invalid price cell", func(t *testing.T) {
		csv := "id,title,features,sizing,flat_embroidery_24,available_colors\n" +
			"i1,Cap,plain,OSFM,abc,Black\n"
		_, err := Load(strings.NewReader(csv))
		require.Error(t, err)
	})

	t.Run("no products", func(t *testing.T) {
		_, err := Load(strings.NewReader("id,title,features,sizing,available_colors\n"))
		require.Error(t, err)
	})
}

func TestGet(t *testing.T) {
	c := MustLoadEmbedded()

	p, ok := c.Get("i7041")
	require.True(t, ok)
	assert.Equal(t, "Pro Series Snapback", p.Title)

	// missing 'i' prefix is tolerated
	p, ok = c.Get("7041")
	require.True(t, ok)
	assert.Equal(t, "i7041", p.ID)

	_, ok = c.Get("i9999")
	assert.False(t, ok)
}

func TestSearch(t *testing.T) {
	c := MustLoadEmbedded()

	results := c.Search("TRUCKER")
	require.NotEmpty(t, results)
	ids := make([]string, 0, len(results))
	for _, p := range results {
		ids = append(ids, p.ID)
	}
	assert.Contains(t, ids, "i8501")
	assert.Contains(t, ids, "i5019")

	assert.Empty(t, c.Search("sombrero"))
	assert.Empty(t, c.Search("   "))
}

func TestTierFor(t *testing.T) {
	tests := []struct {
		quantity int
		want     string
	}{
		{1, "24"},
		{24, "24"},
		{47, "24"},
		{48, "48"},
		{95, "48"},
		{96, "96"},
		{143, "96"},
		{144, "144"},
		{575, "144"},
		{576, "576"},
		{2499, "576"},
		{2500, "2500+"},
		{10000, "2500+"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.quantity), "quantity %d", tt.quantity)
	}
}

func TestNormalizeEmbroidery(t *testing.T) {
	assert.Equal(t, Embroidery3D, NormalizeEmbroidery("3D"))
	assert.Equal(t, EmbroideryFlat, NormalizeEmbroidery("flat"))
	assert.Equal(t, EmbroideryFlat, NormalizeEmbroidery(""))
	assert.Equal(t, EmbroideryFlat, NormalizeEmbroidery("puff"))
}

func TestUnitPrice(t *testing.T) {
	c := MustLoadEmbedded()

	price, err := c.UnitPrice("i7041", "flat", 100)
	require.NoError(t, err)
	assert.InDelta(t, 13.75, price, 1e-9)

	price, err = c.UnitPrice("7041", "3d", 24)
	require.NoError(t, err)
	assert.InDelta(t, 19.50, price, 1e-9)

	// visor has no published 3D pricing
	_, err = c.UnitPrice("i6021", "3d", 24)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not available")

	_, err = c.UnitPrice("i9999", "flat", 24)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestPatchPrice(t *testing.T) {
	price, ok := PatchPrice("woven")
	require.True(t, ok)
	assert.InDelta(t, 5.00, price, 1e-9)

	// forgiving key matching
	price, ok = PatchPrice("Molded Rubber")
	require.True(t, ok)
	assert.InDelta(t, 6.00, price, 1e-9)

	price, ok = PatchPrice("genuine-leather")
	require.True(t, ok)
	assert.InDelta(t, 5.00, price, 1e-9)

	_, ok = PatchPrice("holographic")
	assert.False(t, ok)

	assert.Len(t, AllPatchPrices(), 8)
	assert.Len(t, PatchTypes(), 8)
}

func TestQuoteTotal(t *testing.T) {
	c := MustLoadEmbedded()

	t.Run("embroidery plus patch", func(t *testing.T) {
		q, err := c.QuoteTotal("i7041", "flat", 144, "woven")
		require.NoError(t, err)
		assert.Equal(t, "i7041", q.ProductID)
		assert.Equal(t, "Pro Series Snapback", q.ProductTitle)
		assert.InDelta(t, 13.00, q.BaseUnitPrice, 1e-9)
		assert.InDelta(t, 5.00, q.PatchUnitPrice, 1e-9)
		assert.InDelta(t, 18.00, q.UnitPrice, 1e-9)
		assert.InDelta(t, 2592.00, q.TotalCost, 1e-9)
		assert.Equal(t, "USD", q.Currency)
	})

	t.Run("no patch", func(t *testing.T) {
		q, err := c.QuoteTotal("i8501", "3d", 48, "")
		require.NoError(t, err)
		assert.InDelta(t, 17.75, q.BaseUnitPrice, 1e-9)
		assert.Zero(t, q.PatchUnitPrice)
		assert.InDelta(t, 852.00, q.TotalCost, 1e-9)
	})

	t.Run("unknown patch type", func(t *testing.T) {
		_, err := c.QuoteTotal("i7041", "flat", 24, "holographic")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown patch type")
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := c.QuoteTotal("i9999", "flat", 24, "")
		require.Error(t, err)
	})
}
