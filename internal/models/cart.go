package models

// MaxCartQuantity caps the quantity of a single cart line. Repeated adds for
// the same (user, product) pair accumulate up to this value and no further.
const MaxCartQuantity = 10

// CartItem is one line of a user's cart, stored in the "cartitem"
// collection. At most one row exists per (UserID, ProductID) pair.
type CartItem struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1,lte=10"`
}

// AddToCartRequest is the payload for POST /cart/add.
type AddToCartRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gte=1,lte=10"`
}

// CartItemOut is the projection of a cart line returned to clients.
type CartItemOut struct {
	ID        string `json:"id"`
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Out projects the cart item to its public shape.
func (c *CartItem) Out() CartItemOut {
	return CartItemOut{ID: c.ID, ProductID: c.ProductID, Quantity: c.Quantity}
}
