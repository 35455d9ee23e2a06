package httpapi

import "github.com/go-chi/chi/v5"

func chiRouterForTest() *chi.Mux {
	return chi.NewRouter()
}
