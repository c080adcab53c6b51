package widgets

import (
	"strconv"

	. "github.com/vango-dev/widgetkit/pkg/vdom"
)

// ProductCard renders one product with its option selectors, a quantity
// input and an add to cart button.
type ProductCard struct {
	product     *Product
	cart        *Cart
	moneyFormat string
	selected    []string
	quantity    int

	onSelect   EventHandler
	onQuantity EventHandler
	onAdd      EventHandler
}

// NewProductCard returns a card that adds to cart. The initial selection
// is the product's default variant.
func NewProductCard(product *Product, cart *Cart, moneyFormat string) *ProductCard {
	c := &ProductCard{
		product:     product,
		cart:        cart,
		moneyFormat: moneyFormat,
		quantity:    1,
	}
	c.selected = append([]string(nil), product.DefaultVariant().Options...)

	c.onSelect = func(evt *Event) {
		if index, ok := evt.Bind.(int); ok {
			c.Select(index, evt.Value)
		}
	}
	c.onQuantity = func(evt *Event) {
		if n, err := strconv.Atoi(evt.Value); err == nil {
			c.SetQuantity(n)
		}
	}
	c.onAdd = func(*Event) { c.AddToCart() }
	return c
}

// Product returns the rendered product.
func (c *ProductCard) Product() *Product { return c.product }

// Variant returns the variant for the current selection, or nil when the
// selection names no variant.
func (c *ProductCard) Variant() *Variant {
	return c.product.VariantFor(c.selected)
}

// Quantity returns the selected quantity.
func (c *ProductCard) Quantity() int { return c.quantity }

// Select sets the value of the option at index.
func (c *ProductCard) Select(index int, value string) {
	if index < 0 || index >= len(c.selected) {
		return
	}
	c.selected[index] = value
}

// SetQuantity sets the quantity, clamped to at least one.
func (c *ProductCard) SetQuantity(n int) {
	if n < 1 {
		n = 1
	}
	c.quantity = n
}

// AddToCart adds the selected variant to the cart. It reports false when
// the selection is unavailable.
func (c *ProductCard) AddToCart() bool {
	v := c.Variant()
	if v == nil || !v.Available {
		return false
	}
	c.cart.Add(c.product, v, c.quantity)
	c.quantity = 1
	return true
}

// Render describes the card.
func (c *ProductCard) Render() *VNode {
	variant := c.Variant()
	available := variant != nil && variant.Available

	price, compareAt, image := "", "", c.product.Image
	if variant != nil {
		price = FormatMoney(variant.Price, c.moneyFormat)
		if variant.CompareAtPrice > variant.Price {
			compareAt = FormatMoney(variant.CompareAtPrice, c.moneyFormat)
		}
		if variant.Image != "" {
			image = variant.Image
		}
	}

	buttonText := "Add to cart"
	switch {
	case variant == nil:
		buttonText = "Unavailable"
	case !variant.Available:
		buttonText = "Out of stock"
	}

	return El("div.widget-product", Data("product", c.product.ID),
		If(image != "", Img(Key("image"), Class("widget-product__image"), Src(image), Alt(c.product.Title))),
		H2(Class("widget-product__title"), c.product.Title),
		If(c.product.Description != "", P(Key("description"), Class("widget-product__description"), c.product.Description)),
		Div(Key("price"), Class("widget-product__price"),
			Span(Class("widget-product__actual-price"), price),
			If(compareAt != "", Span(Key("compare"), Class("widget-product__compare-price"), compareAt)),
		),
		Range(c.product.Options, func(opt *ProductOption, i int) *VNode {
			return c.renderOption(opt, i)
		}),
		Div(Key("actions"), Class("widget-product__actions"),
			Input(Type("number"), Class("widget-product__quantity"), AriaLabel("Quantity"),
				Value(strconv.Itoa(c.quantity)), OnInput(c.onQuantity)),
			Button(Class("widget-btn"), Classes(map[string]bool{"widget-btn--disabled": !available}),
				Disabled(!available), OnClick(c.onAdd), buttonText),
		),
	)
}

func (c *ProductCard) renderOption(opt *ProductOption, index int) *VNode {
	return Div(Key("option-"+opt.Name), Class("widget-option"),
		Label(Class("widget-option__label"), opt.Name),
		Select(Bind(index), Name(opt.Name), Class("widget-option__select"), OnChange(c.onSelect),
			Range(opt.Values, func(value string, _ int) *VNode {
				return Option(Key(value), Value(value), Selected(value == c.selected[index]), value)
			}),
		),
	)
}
