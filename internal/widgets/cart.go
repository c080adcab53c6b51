package widgets

import (
	"log/slog"
	"strconv"

	"github.com/vango-dev/widgetkit/pkg/memo"
	. "github.com/vango-dev/widgetkit/pkg/vdom"
)

// LineItem is one variant in the cart.
type LineItem struct {
	ID       int
	Product  *Product
	Variant  *Variant
	Quantity int
}

// Total returns the line price in cents.
func (l *LineItem) Total() int64 {
	return l.Variant.Price * int64(l.Quantity)
}

// CartOption configures a Cart.
type CartOption func(*Cart)

// WithMoneyFormat sets the money format used for prices.
func WithMoneyFormat(format string) CartOption {
	return func(c *Cart) { c.moneyFormat = format }
}

// WithCheckout sets the function called by the checkout button.
func WithCheckout(fn func(items []*LineItem)) CartOption {
	return func(c *Cart) { c.checkout = fn }
}

// WithCartTransitions animates line items with the "fade" token. The
// projection must have Transitions set.
func WithCartTransitions() CartOption {
	return func(c *Cart) { c.animated = true }
}

// WithCartLogger sets the logger.
func WithCartLogger(logger *slog.Logger) CartOption {
	return func(c *Cart) { c.logger = logger }
}

// Cart collects line items. It is not safe for concurrent use.
type Cart struct {
	items       []*LineItem
	nextID      int
	version     int
	open        bool
	moneyFormat string
	animated    bool
	checkout    func(items []*LineItem)
	logger      *slog.Logger

	lines    *memo.Mapping[*LineItem, int, *lineView]
	subtotal memo.Cache[string]

	onClose     EventHandler
	onCheckout  EventHandler
	onIncrement EventHandler
	onDecrement EventHandler
	onQuantity  EventHandler
	onRemove    EventHandler
}

// lineView renders one line item. Views are kept per item id across
// renders so the formatted total is recomputed only when it changes.
type lineView struct {
	item  *LineItem
	index int
	total memo.Cache[string]
}

// NewCart returns an empty, closed cart.
func NewCart(opts ...CartOption) *Cart {
	c := &Cart{moneyFormat: DefaultMoneyFormat, nextID: 1}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}

	c.lines = memo.NewMapping(
		func(item *LineItem) int { return item.ID },
		func(item *LineItem, index int) *lineView { return &lineView{item: item, index: index} },
		func(item *LineItem, view *lineView, index int) {
			view.item = item
			view.index = index
		},
	)

	c.onClose = func(*Event) { c.open = false }
	c.onCheckout = func(*Event) {
		if c.checkout != nil {
			c.checkout(c.Items())
		}
	}
	c.onIncrement = func(evt *Event) {
		if item, ok := evt.Bind.(*LineItem); ok {
			c.SetQuantity(item.ID, item.Quantity+1)
		}
	}
	c.onDecrement = func(evt *Event) {
		if item, ok := evt.Bind.(*LineItem); ok {
			c.SetQuantity(item.ID, item.Quantity-1)
		}
	}
	c.onQuantity = func(evt *Event) {
		item, ok := evt.Bind.(*LineItem)
		if !ok {
			return
		}
		n, err := strconv.Atoi(evt.Value)
		if err != nil {
			c.logger.Debug("ignoring quantity", "value", evt.Value)
			return
		}
		c.SetQuantity(item.ID, n)
	}
	c.onRemove = func(evt *Event) {
		if item, ok := evt.Bind.(*LineItem); ok {
			c.Remove(item.ID)
		}
	}
	return c
}

// Add puts quantity of variant in the cart, merging with an existing line
// for the same variant, and opens the cart.
func (c *Cart) Add(product *Product, variant *Variant, quantity int) *LineItem {
	if quantity < 1 {
		quantity = 1
	}
	c.open = true
	c.version++
	for _, item := range c.items {
		if item.Variant == variant {
			item.Quantity += quantity
			return item
		}
	}
	item := &LineItem{ID: c.nextID, Product: product, Variant: variant, Quantity: quantity}
	c.nextID++
	c.items = append(c.items, item)
	return item
}

// Remove drops the line item with id.
func (c *Cart) Remove(id int) {
	for i, item := range c.items {
		if item.ID == id {
			c.items = append(c.items[:i:i], c.items[i+1:]...)
			c.version++
			return
		}
	}
}

// SetQuantity changes a line's quantity. Quantities below one remove the
// line.
func (c *Cart) SetQuantity(id, quantity int) {
	if quantity < 1 {
		c.Remove(id)
		return
	}
	for _, item := range c.items {
		if item.ID == id {
			item.Quantity = quantity
			c.version++
			return
		}
	}
}

// Items returns the line items in the order they were added.
func (c *Cart) Items() []*LineItem {
	return append([]*LineItem(nil), c.items...)
}

// Count returns the number of units in the cart.
func (c *Cart) Count() int {
	n := 0
	for _, item := range c.items {
		n += item.Quantity
	}
	return n
}

// Subtotal returns the cart total in cents.
func (c *Cart) Subtotal() int64 {
	var total int64
	for _, item := range c.items {
		total += item.Total()
	}
	return total
}

// IsOpen reports whether the cart panel is open.
func (c *Cart) IsOpen() bool { return c.open }

// Open opens the cart panel.
func (c *Cart) Open() { c.open = true }

// Render describes the cart.
func (c *Cart) Render() *VNode {
	empty := len(c.items) == 0

	var lines []*VNode
	if err := c.lines.Map(c.items); err != nil {
		c.logger.Error("cart line items", "error", err)
		lines = []*VNode{P(Key("error"), Class("widget-cart__error"), err.Error())}
	} else {
		lines = Range(c.lines.Results(), func(v *lineView, _ int) *VNode {
			return c.renderLine(v)
		})
	}

	subtotal := c.subtotal.Result([]any{c.version, c.moneyFormat}, func() string {
		return FormatMoney(c.Subtotal(), c.moneyFormat)
	})

	return El("div.widget-cart", Classes(map[string]bool{"is-active": c.open, "is-empty": empty}),
		Div(Class("widget-cart__header"),
			H2(Class("widget-cart__title"), "Cart"),
			Button(Class("widget-cart__close"), AriaLabel("Close"), OnClick(c.onClose),
				Span(AriaHidden(true), "×"),
			),
		),
		Div(Class("widget-cart__scroll"),
			If(empty, Div(Key("empty"), Class("widget-cart__empty"), "Your cart is empty.")),
			Ul(Key("items"), Class("widget-cart__line-items"), lines),
		),
		When(!empty, func() *VNode {
			return Div(Key("footer"), Class("widget-cart__footer"),
				P(Class("widget-cart__subtotal-text"), "Subtotal"),
				P(Class("widget-cart__subtotal"), subtotal),
				Button(Class("widget-btn"), Type("button"), OnClick(c.onCheckout), "Checkout"),
			)
		}),
	)
}

func (c *Cart) renderLine(v *lineView) *VNode {
	item := v.item
	total := v.total.Result([]any{item.Quantity, item.Variant, c.moneyFormat}, func() string {
		return FormatMoney(item.Total(), c.moneyFormat)
	})

	return Li(Key(item.ID), Class("widget-cart-item"), Data("variant", item.Variant.ID),
		AttrIf(c.animated, EnterTransition("fade")),
		AttrIf(c.animated, ExitTransition("fade")),
		Span(Class("widget-cart-item__title"), item.Product.Title),
		If(item.Variant.Title != "", Span(Key("variant"), Class("widget-cart-item__variant"), item.Variant.Title)),
		Div(Key("quantity"), Class("widget-cart-item__quantity"),
			Button(Bind(item), Class("widget-cart-item__decrement"), OnClick(c.onDecrement), "-"),
			Input(Bind(item), Type("number"), Class("widget-cart-item__input"),
				Value(strconv.Itoa(item.Quantity)), OnInput(c.onQuantity)),
			Button(Bind(item), Class("widget-cart-item__increment"), OnClick(c.onIncrement), "+"),
		),
		Span(Key("price"), Class("widget-cart-item__price"), total),
		Button(Key("remove"), Bind(item), Class("widget-cart-item__remove"), AriaLabel("Remove"), OnClick(c.onRemove), "×"),
	)
}
