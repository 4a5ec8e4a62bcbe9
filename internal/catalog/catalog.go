// internal/catalog/catalog.go

// Package catalog loads the product reference data used for entity
// extraction. The loader accepts the few JSON shapes the product exports
// come in and builds a variant index so spoken names ("aimo milk", "milk")
// still resolve to the catalog entry.
package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/hydropony/junction2025-googlecloud/internal/common/errors"
	"github.com/hydropony/junction2025-googlecloud/internal/common/logger"
)

// Product is one normalized catalog entry.
type Product struct {
	GTIN         string   `json:"gtin"`
	Name         string   `json:"name"`
	NameVariants []string `json:"name_variants"`
	Category     string   `json:"category"`
	Brand        string   `json:"brand"`
}

// Catalog is an immutable product index, safe for concurrent reads.
type Catalog struct {
	products []Product
	log      logger.Logger
}

// Load reads the catalog file. A missing file is not fatal: product
// extraction degrades to heuristics, so the service starts with an empty
// catalog and a warning. Malformed JSON is an error.
func Load(path string, log logger.Logger) (*Catalog, error) {
	if path == "" {
		log.Warn("No product catalog configured, product extraction will be limited", nil)
		return New(nil, log), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.Warn("Product catalog file not found", map[string]interface{}{
				"path": path,
			})
			return New(nil, log), nil
		}
		return nil, errors.NewCatalogLoadFailedError(fmt.Errorf("failed to read product catalog: %w", err))
	}

	raw, err := decode(data)
	if err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(raw))
	for _, entry := range raw {
		products = append(products, normalize(entry))
	}

	log.Info("Product catalog loaded", map[string]interface{}{
		"path":     path,
		"products": len(products),
	})
	return New(products, log), nil
}

// New builds a catalog from already-normalized products. Used by tests and
// callers that source products elsewhere.
func New(products []Product, log logger.Logger) *Catalog {
	return &Catalog{products: products, log: log}
}

// decode handles the supported JSON shapes: a bare array, an object with a
// "products" or "items" key, or a single product object.
func decode(data []byte) ([]map[string]interface{}, error) {
	var asList []map[string]interface{}
	if err := json.Unmarshal(data, &asList); err == nil {
		return asList, nil
	}

	var asObject map[string]interface{}
	if err := json.Unmarshal(data, &asObject); err != nil {
		return nil, errors.NewCatalogLoadFailedError(fmt.Errorf("failed to parse product catalog: %w", err))
	}

	for _, key := range []string{"products", "items"} {
		nested, ok := asObject[key].([]interface{})
		if !ok {
			continue
		}
		out := make([]map[string]interface{}, 0, len(nested))
		for _, item := range nested {
			if entry, ok := item.(map[string]interface{}); ok {
				out = append(out, entry)
			}
		}
		return out, nil
	}

	if len(asObject) == 0 {
		return nil, nil
	}
	return []map[string]interface{}{asObject}, nil
}

func normalize(raw map[string]interface{}) Product {
	p := Product{
		GTIN:     stringField(raw, "GTIN", "gtin", "id"),
		Name:     stringField(raw, "name", "Name", "product_name"),
		Category: stringField(raw, "category", "Category"),
		Brand:    stringField(raw, "brand", "Brand"),
	}

	variants := make(map[string]struct{})
	if existing, ok := raw["name_variants"].([]interface{}); ok {
		for _, v := range existing {
			if s, ok := v.(string); ok {
				variants[s] = struct{}{}
			}
		}
	}

	if p.Name != "" {
		variants[strings.ToLower(p.Name)] = struct{}{}
		variants[strings.ToUpper(p.Name)] = struct{}{}
		variants[titleCase(p.Name)] = struct{}{}

		cleaned := strings.NewReplacer("-", " ", "_", " ").Replace(p.Name)
		variants[cleaned] = struct{}{}
		variants[strings.NewReplacer("-", "", "_", "").Replace(p.Name)] = struct{}{}

		if p.Brand != "" {
			variants[p.Brand+" "+p.Name] = struct{}{}
			variants[p.Name+" "+p.Brand] = struct{}{}
			variants[strings.ToLower(p.Brand)] = struct{}{}

			if strings.Contains(strings.ToLower(p.Name), strings.ToLower(p.Brand)) {
				stripped := strings.TrimSpace(strings.ReplaceAll(
					strings.ToLower(p.Name), strings.ToLower(p.Brand), ""))
				if stripped != "" {
					variants[stripped] = struct{}{}
				}
			}
		}

		// Spoken references often use just the leading words of a long name.
		words := strings.Fields(p.Name)
		if len(words) > 1 {
			variants[words[0]] = struct{}{}
			variants[strings.Join(words[:2], " ")] = struct{}{}
			if len(words) > 2 {
				variants[strings.Join(words[:3], " ")] = struct{}{}
			}
		}

		for _, key := range []string{"alt_name", "alternative_name", "short_name", "display_name"} {
			if alt := stringField(raw, key); alt != "" {
				variants[alt] = struct{}{}
				variants[strings.ToLower(alt)] = struct{}{}
			}
		}
	}

	for v := range variants {
		if strings.TrimSpace(v) != "" {
			p.NameVariants = append(p.NameVariants, v)
		}
	}
	return p
}

func stringField(raw map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		switch v := raw[key].(type) {
		case string:
			if v != "" {
				return v
			}
		case float64:
			// GTIN columns sometimes arrive as numbers.
			return strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return ""
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(strings.ToLower(w))
		if len(runes) > 0 {
			runes[0] = unicode.ToUpper(runes[0])
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}

// Products returns all catalog entries.
func (c *Catalog) Products() []Product {
	return c.products
}

// Len reports the number of catalog entries.
func (c *Catalog) Len() int {
	return len(c.products)
}

// FindByName matches the exact name or any variant, case-insensitively.
func (c *Catalog) FindByName(name string) (*Product, bool) {
	lower := strings.ToLower(name)
	for i := range c.products {
		if strings.ToLower(c.products[i].Name) == lower {
			return &c.products[i], true
		}
		for _, variant := range c.products[i].NameVariants {
			if strings.ToLower(variant) == lower {
				return &c.products[i], true
			}
		}
	}
	return nil, false
}

// FindByGTIN matches the exact GTIN code.
func (c *Catalog) FindByGTIN(gtin string) (*Product, bool) {
	for i := range c.products {
		if c.products[i].GTIN == gtin {
			return &c.products[i], true
		}
	}
	return nil, false
}
