package http

import (
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
)

func TestRegisterRoutes_StockAdjustVerbs(t *testing.T) {
	h := NewPartHandler(nil, nil)
	router := mux.NewRouter()
	h.RegisterRoutes(router)

	// Counter clients send POST, the web frontend sends PATCH
	for _, method := range []string{"POST", "PATCH"} {
		req := httptest.NewRequest(method, "/repuestos/1/ajustar-stock", nil)
		var match mux.RouteMatch
		if !router.Match(req, &match) {
			t.Errorf("%s /repuestos/1/ajustar-stock did not match any route", method)
		}
	}

	req := httptest.NewRequest("DELETE", "/repuestos/1/ajustar-stock", nil)
	var match mux.RouteMatch
	if router.Match(req, &match) && match.MatchErr == nil {
		t.Error("DELETE /repuestos/1/ajustar-stock should not match")
	}
}
