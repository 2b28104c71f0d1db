package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"flipscan/pkg/httpx/reply"
)

func (s Server) RegisterRoutes(r chi.Router) {
	r.Route("/", func(r chi.Router) {
		r.Route("/v1", func(r chi.Router) {
			r.Post("/analyze", handler(s.postV1Analyze))
			r.Post("/margin", handler(s.postV1Margin))

			r.Route("/webhooks", func(r chi.Router) {
				r.Post("/payment", handler(s.postV1PaymentWebhook))
				r.Get("/social", handler(s.getV1SocialChallenge))
			})
		})
	})
}

func handler(f func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := f(w, r); err != nil {
			reply.Error(r.Context(), w, err)
		}
	}
}
