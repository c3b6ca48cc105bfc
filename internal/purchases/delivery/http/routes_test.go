package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
)

func TestRegisterRoutes_StatusUpdateVerbs(t *testing.T) {
	h := NewPurchaseHandler(nil, nil, nil)
	router := mux.NewRouter()
	h.RegisterRoutes(router)

	for _, method := range []string{"PUT", "PATCH"} {
		req := httptest.NewRequest(method, "/compras/1/estado", nil)
		var match mux.RouteMatch
		if !router.Match(req, &match) {
			t.Errorf("%s /compras/1/estado did not match any route", method)
		}
	}
}
