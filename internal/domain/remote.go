package domain

// User is a buyer record owned by the orders backend. The coordinator only
// reads and creates users, it never owns their lifecycle.
type User struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

// NewUser is the creation payload for the users resource.
type NewUser struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

const OrderStatusPending = "pending"

// Order mirrors the orders backend resource.
type Order struct {
	ID            int64   `json:"id"`
	UserID        int64   `json:"user_id"`
	ProductID     int64   `json:"product_id"`
	Status        string  `json:"status"`
	TotalPrice    float64 `json:"total_price"`
	PaymentMethod string  `json:"payment_method"`
}

// NewOrder is the creation payload for the orders resource.
type NewOrder struct {
	UserID        int64   `json:"user_id"`
	ProductID     int64   `json:"product_id"`
	Status        string  `json:"status"`
	TotalPrice    float64 `json:"total_price"`
	PaymentMethod string  `json:"payment_method"`
}

// Maki is a menu item served by the menu backend.
type Maki struct {
	ID          int64   `json:"id"`
	Name        string  `json:"nombre"`
	Description string  `json:"descripcion"`
	Price       float64 `json:"precio"`
	Ingredients []int64 `json:"ingredientes,omitempty"`
}

// Ingredient is an inventory stock record, consumed by admin surfaces only.
type Ingredient struct {
	ID           string  `json:"id"`
	Name         string  `json:"nombre"`
	Category     string  `json:"categoria"`
	Unit         string  `json:"unidad"`
	CurrentStock float64 `json:"stockActual"`
	MinimumStock float64 `json:"stockMinimo"`
	UnitPrice    float64 `json:"precioUnitario"`
	Active       bool    `json:"activo"`
}

// IngredientPatch carries only the fields an update wants to change; nil
// fields are omitted from the PATCH body.
type IngredientPatch struct {
	Name         *string  `json:"nombre,omitempty"`
	Category     *string  `json:"categoria,omitempty"`
	Unit         *string  `json:"unidad,omitempty"`
	CurrentStock *float64 `json:"stockActual,omitempty"`
	MinimumStock *float64 `json:"stockMinimo,omitempty"`
	UnitPrice    *float64 `json:"precioUnitario,omitempty"`
	Active       *bool    `json:"activo,omitempty"`
}
