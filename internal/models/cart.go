package models

// CartItem is a product in the shopping cart
// Product fields are flattened into the JSON object next to quantity
type CartItem struct {
	Product
	Quantity int `json:"quantity"`
}

// Subtotal returns price multiplied by quantity
func (c CartItem) Subtotal() float64 {
	return c.Price * float64(c.Quantity)
}

// Cart is the JSON view of a session cart
type Cart struct {
	Items []CartItem `json:"items"`
	Count int        `json:"count"`
	Total float64    `json:"total"`
}
