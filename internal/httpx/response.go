package httpx

import (
	"encoding/json"
	"net/http"

	"github.com/diewo77/elections-api/internal/apperr"
)

// ErrorResponse est l'enveloppe d'erreur commune à tous les endpoints.
type ErrorResponse struct {
	Detail string `json:"detail"`
	Errors any    `json:"errors,omitempty"`
}

func JSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	var err error
	if payload != nil {
		body, err = json.Marshal(payload)
		if err != nil {
			// best-effort error response; avoid writing partial JSON
			http.Error(w, `{"detail":"Erreur interne du serveur"}`, http.StatusInternalServerError)
			return
		}
	} else {
		body = []byte("null")
	}
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		_ = err
	}
}

func Detail(w http.ResponseWriter, status int, detail string) {
	JSON(w, status, ErrorResponse{Detail: detail})
}

// ValidationError ajoute la liste des violations au corps d'erreur.
func ValidationError(w http.ResponseWriter, detail string, violations any) {
	JSON(w, http.StatusBadRequest, ErrorResponse{Detail: detail, Errors: violations})
}

// Error traduit une erreur de service en réponse HTTP.
func Error(w http.ResponseWriter, err error) {
	Detail(w, apperr.StatusOf(err), apperr.DetailOf(err))
}
