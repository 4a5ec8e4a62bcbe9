// internal/catalog/catalog_test.go
package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hydropony/junction2025-googlecloud/internal/common/logger"
)

func writeCatalogFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// ==========================================
// Loading
// ==========================================

func TestLoad_ArrayShape(t *testing.T) {
	path := writeCatalogFile(t, `[
		{"gtin": "6408430000128", "name": "Valio Milk 1L", "brand": "Valio", "category": "dairy"},
		{"gtin": "6408430000129", "name": "Oat Drink"}
	]`)

	c, err := Load(path, logger.NewTestLogger(t))
	require.NoError(t, err)
	assert.Equal(t, 2, c.Len())
}

func TestLoad_ProductsKeyShape(t *testing.T) {
	path := writeCatalogFile(t, `{"products": [{"gtin": "1", "name": "Butter"}]}`)

	c, err := Load(path, logger.NewTestLogger(t))
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())
}

func TestLoad_ItemsKeyShape(t *testing.T) {
	path := writeCatalogFile(t, `{"items": [{"id": "7", "Name": "Bread"}]}`)

	c, err := Load(path, logger.NewTestLogger(t))
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "Bread", c.Products()[0].Name)
	assert.Equal(t, "7", c.Products()[0].GTIN)
}

func TestLoad_MissingFileIsEmptyCatalog(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.json"), logger.NewTestLogger(t))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Len())
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := writeCatalogFile(t, `{"products": [`)

	_, err := Load(path, logger.NewTestLogger(t))
	assert.Error(t, err)
}

// ==========================================
// Variants and Lookup
// ==========================================

func TestNormalize_BuildsVariants(t *testing.T) {
	path := writeCatalogFile(t, `[{"gtin": "1", "name": "Valio Oat Milk", "brand": "Valio"}]`)

	c, err := Load(path, logger.NewTestLogger(t))
	require.NoError(t, err)

	p := c.Products()[0]
	assert.Contains(t, p.NameVariants, "valio oat milk")
	assert.Contains(t, p.NameVariants, "VALIO OAT MILK")
	assert.Contains(t, p.NameVariants, "Valio")                // first word
	assert.Contains(t, p.NameVariants, "Valio Oat")            // first two words
	assert.Contains(t, p.NameVariants, "valio")                // brand lowercased
	assert.Contains(t, p.NameVariants, "oat milk")             // name without brand
	assert.Contains(t, p.NameVariants, "Valio Valio Oat Milk") // brand + name
}

func TestFindByName(t *testing.T) {
	c := New([]Product{
		{GTIN: "1", Name: "Oat Milk", NameVariants: []string{"oat drink"}},
	}, logger.NewTestLogger(t))

	p, ok := c.FindByName("oat milk")
	require.True(t, ok)
	assert.Equal(t, "1", p.GTIN)

	p, ok = c.FindByName("OAT DRINK")
	require.True(t, ok)
	assert.Equal(t, "1", p.GTIN)

	_, ok = c.FindByName("rye bread")
	assert.False(t, ok)
}

func TestFindByGTIN(t *testing.T) {
	c := New([]Product{{GTIN: "6408430000128", Name: "Milk"}}, logger.NewTestLogger(t))

	p, ok := c.FindByGTIN("6408430000128")
	require.True(t, ok)
	assert.Equal(t, "Milk", p.Name)

	_, ok = c.FindByGTIN("0")
	assert.False(t, ok)
}
