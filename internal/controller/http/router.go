package http

import (
	"github.com/go-chi/chi/v5"

	"github.com/romchhh/13vplus-site-sub001/internal/model"
	"github.com/romchhh/13vplus-site-sub001/pgk/auth"
)

func InitRoutes(r *chi.Mux, c *Controller, serviceTokenSecret string) *chi.Mux {
	r.Get("/ping", c.Ping)

	r.Route("/api", func(r chi.Router) {
		r.Post("/callbacks/wayforpay", c.WayforpayCallback)
		r.Post("/callbacks/plisio", c.PlisioCallback)

		r.Group(func(r chi.Router) {
			r.Use(auth.AuthBearerMiddlewareInit[model.ServiceToken](serviceTokenSecret))
			r.Post("/invoices", c.CreateInvoice)
		})
	})

	return r
}
