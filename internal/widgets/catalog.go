package widgets

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/widgetkit/internal/errors"
)

// DefaultMoneyFormat renders amounts as dollars.
const DefaultMoneyFormat = "${{amount}}"

// Catalog is the product data the widgets render.
type Catalog struct {
	MoneyFormat string     `json:"moneyFormat,omitempty" yaml:"moneyFormat,omitempty"`
	Products    []*Product `json:"products" yaml:"products"`
}

// Product is a sellable item with one or more variants.
type Product struct {
	ID          string           `json:"id" yaml:"id"`
	Title       string           `json:"title" yaml:"title"`
	Description string           `json:"description,omitempty" yaml:"description,omitempty"`
	Image       string           `json:"image,omitempty" yaml:"image,omitempty"`
	Options     []*ProductOption `json:"options,omitempty" yaml:"options,omitempty"`
	Variants    []*Variant       `json:"variants" yaml:"variants"`
}

// ProductOption is a named choice such as size or color.
type ProductOption struct {
	Name   string   `json:"name" yaml:"name"`
	Values []string `json:"values" yaml:"values"`
}

// Variant is one purchasable combination of option values. Prices are in
// cents.
type Variant struct {
	ID             string   `json:"id" yaml:"id"`
	Title          string   `json:"title,omitempty" yaml:"title,omitempty"`
	Options        []string `json:"options,omitempty" yaml:"options,omitempty"`
	Price          int64    `json:"price" yaml:"price"`
	CompareAtPrice int64    `json:"compareAtPrice,omitempty" yaml:"compareAtPrice,omitempty"`
	Available      bool     `json:"available" yaml:"available"`
	Image          string   `json:"image,omitempty" yaml:"image,omitempty"`
}

// LoadCatalog reads a catalog from a JSON or YAML file.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("W201").WithDetail("catalog " + path).Wrap(err)
	}

	c := &Catalog{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, c)
	default:
		err = json.Unmarshal(data, c)
	}
	if err != nil {
		return nil, errors.New("W201").WithDetail("catalog " + path + ": " + err.Error())
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks that ids are unique and every variant names one value
// per product option.
func (c *Catalog) Validate() error {
	if c.MoneyFormat == "" {
		c.MoneyFormat = DefaultMoneyFormat
	}
	products := make(map[string]bool, len(c.Products))
	for _, p := range c.Products {
		if p.ID == "" {
			return errors.New("W202").WithDetail("catalog product without id")
		}
		if products[p.ID] {
			return errors.New("W202").WithDetailf("catalog product %q listed twice", p.ID)
		}
		products[p.ID] = true
		if len(p.Variants) == 0 {
			return errors.New("W202").WithDetailf("catalog product %q has no variants", p.ID)
		}
		variants := make(map[string]bool, len(p.Variants))
		for _, v := range p.Variants {
			if variants[v.ID] {
				return errors.New("W202").WithDetailf("product %q variant %q listed twice", p.ID, v.ID)
			}
			variants[v.ID] = true
			if len(v.Options) != len(p.Options) {
				return errors.New("W202").
					WithDetailf("product %q variant %q has %d option values, want %d", p.ID, v.ID, len(v.Options), len(p.Options))
			}
		}
	}
	return nil
}

// Product returns the product with id, or nil.
func (c *Catalog) Product(id string) *Product {
	for _, p := range c.Products {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// VariantFor returns the variant matching the selected option values.
func (p *Product) VariantFor(selected []string) *Variant {
	for _, v := range p.Variants {
		if slices.Equal(v.Options, selected) {
			return v
		}
	}
	return nil
}

// DefaultVariant is the first available variant, or the first variant.
func (p *Product) DefaultVariant() *Variant {
	for _, v := range p.Variants {
		if v.Available {
			return v
		}
	}
	return p.Variants[0]
}

// DefaultCatalog is the catalog used when none is configured.
func DefaultCatalog() *Catalog {
	return &Catalog{
		MoneyFormat: DefaultMoneyFormat,
		Products: []*Product{
			{
				ID:          "tee",
				Title:       "Widget Tee",
				Description: "Soft cotton tee with the widget logo.",
				Options:     []*ProductOption{{Name: "Size", Values: []string{"S", "M", "L"}}},
				Variants: []*Variant{
					{ID: "tee-s", Title: "S", Options: []string{"S"}, Price: 2500, Available: true},
					{ID: "tee-m", Title: "M", Options: []string{"M"}, Price: 2500, Available: true},
					{ID: "tee-l", Title: "L", Options: []string{"L"}, Price: 2700, CompareAtPrice: 3000},
				},
			},
			{
				ID:    "mug",
				Title: "Frame Mug",
				Options: []*ProductOption{
					{Name: "Color", Values: []string{"Black", "White"}},
				},
				Variants: []*Variant{
					{ID: "mug-black", Title: "Black", Options: []string{"Black"}, Price: 1400, Available: true},
					{ID: "mug-white", Title: "White", Options: []string{"White"}, Price: 1400, Available: true},
				},
			},
		},
	}
}

// FormatMoney renders cents with format. Supported placeholders are
// {{amount}} (1,234.56), {{amount_no_decimals}} (1,235) and
// {{amount_with_comma_separator}} (1.234,56).
func FormatMoney(cents int64, format string) string {
	if format == "" {
		format = DefaultMoneyFormat
	}
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	r := strings.NewReplacer(
		"{{amount}}", sign+formatAmount(cents, 2, ",", "."),
		"{{amount_no_decimals}}", sign+formatAmount(cents, 0, ",", "."),
		"{{amount_with_comma_separator}}", sign+formatAmount(cents, 2, ".", ","),
	)
	return r.Replace(format)
}

func formatAmount(cents int64, precision int, thousands, decimal string) string {
	if precision == 0 {
		cents = (cents + 50) / 100 * 100
	}
	units := strconv.FormatInt(cents/100, 10)

	var b strings.Builder
	for i, r := range units {
		if i > 0 && (len(units)-i)%3 == 0 {
			b.WriteString(thousands)
		}
		b.WriteRune(r)
	}
	if precision > 0 {
		frac := cents % 100
		b.WriteString(decimal)
		if frac < 10 {
			b.WriteByte('0')
		}
		b.WriteString(strconv.FormatInt(frac, 10))
	}
	return b.String()
}
