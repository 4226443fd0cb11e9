package api

import (
	"net/http"

	"github.com/rama-judicial/escalafon/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
) {
	routes.Register(
		mux,
		domain.Offices.Handler().Routes(),
		domain.Officials.Handler().Routes(),
		domain.Records.Handler().Routes(),
		domain.Hearings.Handler().Routes(),
		domain.Grades.Handler().Routes(),
		domain.Calendar.Routes(),
	)
}
