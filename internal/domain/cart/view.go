package cart

// EmptyMessage is shown when the cart holds no items.
const EmptyMessage = "Your cart is empty."

// View is the display model for a cart, recomputed in full from the cart on
// every open and after every mutation. It carries no references back into the
// cart, so it can never drift from the store.
type View struct {
	Empty           bool
	Message         string
	Rows            []Row
	Total           string
	CheckoutEnabled bool
}

// Row is one rendered cart line.
type Row struct {
	Index     int
	Name      string
	ImageURL  string
	UnitPrice string
	Quantity  int
	LineTotal string
}

// Render builds the display model for the given cart. The checkout affordance
// is offered only when the cart is non-empty.
func Render(c Cart) View {
	if c.IsEmpty() {
		return View{
			Empty:   true,
			Message: EmptyMessage,
			Total:   FormatPrice(c.Total()),
		}
	}

	rows := make([]Row, len(c.Items))
	for i, li := range c.Items {
		rows[i] = Row{
			Index:     i,
			Name:      li.Name,
			ImageURL:  li.ImageURL,
			UnitPrice: FormatPrice(li.UnitPrice),
			Quantity:  li.Quantity,
			LineTotal: FormatPrice(li.LineTotal()),
		}
	}

	return View{
		Rows:            rows,
		Total:           FormatPrice(c.Total()),
		CheckoutEnabled: true,
	}
}
