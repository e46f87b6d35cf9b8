package handler

import (
	"encoding/json"
	"net/http"
)

// Handler answers the root path with a short service description.
func Handler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	response := map[string]interface{}{
		"status":  "ok",
		"message": "TechStore API",
		"path":    r.URL.Path,
		"docs":    "/swagger/index.html",
		"endpoints": []string{
			"POST /session",
			"GET /products",
			"GET /products/:id/detail",
			"GET /cart",
			"GET /cart/events",
			"POST /cart/items",
			"POST /checkout",
		},
	}

	json.NewEncoder(w).Encode(response)
}
