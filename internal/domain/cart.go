package domain

// AllergyFlag records whether the shopper declared an allergy for a line.
type AllergyFlag string

const (
	AllergyYes AllergyFlag = "yes"
	AllergyNo  AllergyFlag = "no"
)

// CartLineItem is one product selection in the cart. Identity key is
// ProductID; adding the same product again creates a second independent line,
// quantities are not merged.
type CartLineItem struct {
	ProductID    int64       `json:"product_id" bson:"product_id"`
	Name         string      `json:"name" bson:"name"`
	UnitPrice    float64     `json:"unit_price" bson:"unit_price"`
	Quantity     int         `json:"quantity" bson:"quantity"`
	ImageRef     string      `json:"image" bson:"image"`
	VariantLabel string      `json:"variant" bson:"variant"`
	Allergy      AllergyFlag `json:"allergy" bson:"allergy"`
}

// Subtotal is the line contribution to the cart total.
func (i CartLineItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

// CartTotal sums unit price times quantity over all lines. Callers recompute
// it on every read instead of caching it.
func CartTotal(items []CartLineItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Subtotal()
	}
	return total
}
