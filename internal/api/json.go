package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	jsoniter "github.com/json-iterator/go"
	"github.com/oseayemenre/library/internal/models"
)

const maxBodyBytes = 1 << 20

var jsonResponse = jsoniter.ConfigCompatibleWithStandardLibrary

func respondWithSuccess(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	jsonResponse.NewEncoder(w).Encode(data)
}

func respondWithError(w http.ResponseWriter, code int, err error) {
	respondWithSuccess(w, code, models.DetailResponse{Detail: err.Error()})
}

// decodeJson goes through encoding/json so that models.Optional fields see
// explicit nulls.
func decodeJson(w http.ResponseWriter, r *http.Request, params any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	if err := json.NewDecoder(r.Body).Decode(params); err != nil {
		return fmt.Errorf("error decoding json: %v", err)
	}

	return nil
}

func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)

	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}

	return id, nil
}
