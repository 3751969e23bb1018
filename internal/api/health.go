package api

import (
	"context"
	"net/http"
	"time"
)

func (a *Api) HandleHealthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := a.store.Ping(ctx); err != nil {
		a.logger.Error(err.Error(), "service", "HandleHealthz")
		respondWithSuccess(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}

	respondWithSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
}
