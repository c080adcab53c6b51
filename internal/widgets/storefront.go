package widgets

import (
	"fmt"

	"github.com/vango-dev/widgetkit/pkg/projector"
	"github.com/vango-dev/widgetkit/pkg/vdom"
)

// Storefront is a catalog's product cards sharing one cart.
type Storefront struct {
	Catalog *Catalog
	Cart    *Cart
	Cards   []*ProductCard

	renders []projector.RenderFunc
}

// NewStorefront builds one card per catalog product. A nil catalog uses
// DefaultCatalog.
func NewStorefront(catalog *Catalog, opts ...CartOption) *Storefront {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	opts = append([]CartOption{WithMoneyFormat(catalog.MoneyFormat)}, opts...)
	s := &Storefront{
		Catalog: catalog,
		Cart:    NewCart(opts...),
	}
	for _, p := range catalog.Products {
		s.Cards = append(s.Cards, NewProductCard(p, s.Cart, catalog.MoneyFormat))
	}
	return s
}

// Mount appends every card, then the cart, to parent.
func (s *Storefront) Mount(p *projector.Projector, parent vdom.Handle) error {
	for _, card := range s.Cards {
		if err := s.append(p, parent, card.Render); err != nil {
			return fmt.Errorf("mount %s: %w", card.product.ID, err)
		}
	}
	if err := s.append(p, parent, s.Cart.Render); err != nil {
		return fmt.Errorf("mount cart: %w", err)
	}
	return nil
}

// Unmount detaches every projection Mount created. Output stays in place.
func (s *Storefront) Unmount(p *projector.Projector) error {
	for _, render := range s.renders {
		if _, err := p.Detach(render); err != nil {
			return err
		}
	}
	s.renders = nil
	return nil
}

func (s *Storefront) append(p *projector.Projector, parent vdom.Handle, render projector.RenderFunc) error {
	if _, err := p.Append(parent, render); err != nil {
		return err
	}
	s.renders = append(s.renders, render)
	return nil
}
