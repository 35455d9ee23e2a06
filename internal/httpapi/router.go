package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the shopper and admin surfaces under /api/v1.
func NewRouter(cart *CartHandler, menu *MenuHandler, checkout *CheckoutHandler, admin *AdminHandler, requestTimeout time.Duration) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestIDMiddleware)
	r.Use(middleware.Timeout(requestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/makis", menu.ListMakis)
		r.Get("/makis/{maki_id}", menu.GetMaki)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cart.GetCart)
			r.Post("/items", cart.AddItem)
			r.Put("/items/{product_id}", cart.UpdateQuantity)
			r.Delete("/items/{product_id}", cart.RemoveItem)
		})

		r.Post("/checkout", checkout.Checkout)

		r.Route("/admin", func(r chi.Router) {
			r.Get("/orders", admin.ListOrders)
			r.Get("/orders/{order_id}", admin.GetOrder)
			r.Patch("/orders/{order_id}", admin.UpdateOrder)
			r.Delete("/orders/{order_id}", admin.DeleteOrder)

			r.Get("/ingredients", admin.ListIngredients)
			r.Post("/ingredients", admin.CreateIngredient)
			r.Get("/ingredients/{ingredient_id}", admin.GetIngredient)
			r.Patch("/ingredients/{ingredient_id}", admin.UpdateIngredient)
			r.Delete("/ingredients/{ingredient_id}", admin.DeleteIngredient)

			r.Post("/makis", admin.CreateMaki)
			r.Patch("/makis/{maki_id}", admin.UpdateMaki)
			r.Delete("/makis/{maki_id}", admin.DeleteMaki)

			if admin.journal != nil {
				r.Get("/checkout-attempts", admin.ListAttempts)
				r.Get("/checkout-attempts/{attempt_id}/lines", admin.ListAttemptLines)
			}
		})
	})

	return r
}
