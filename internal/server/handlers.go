package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"cdnctl/internal/api"
	"cdnctl/internal/datasource"
	"cdnctl/internal/pager"
	"cdnctl/internal/query"

	log "github.com/sirupsen/logrus"
)

const listMessage = "Distributions fetched successfully"

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListDistributions(w http.ResponseWriter, r *http.Request) {
	q := query.DecodeAPIQuery(r.URL.Query())

	page, err := s.source.FetchPage(r.Context(), q)
	if err != nil {
		status := errorStatus(err)
		log.WithField("request_id", RequestIDFromContext(r.Context())).
			WithError(err).
			Warn("list distributions failed")
		respondJSON(w, status, api.DistributionsResponse{
			Data:    []api.Distribution{},
			Success: false,
			Message: err.Error(),
		})
		return
	}

	p := pager.FromResult(page)
	respondJSON(w, http.StatusOK, api.DistributionsResponse{
		Data: page.Items,
		Meta: api.Meta{
			Pagination: api.Pagination{
				Page:       page.Page,
				PageSize:   page.Limit,
				Total:      page.Total,
				TotalPages: p.TotalPages(),
			},
			Links: p.Links(api.DistributionsPath, q),
		},
		Success: true,
		Message: listMessage,
	})
}

// errorStatus maps a data source error to an HTTP status.
func errorStatus(err error) int {
	var unknown *datasource.UnknownFieldError
	var reqErr *api.RequestError
	var decErr *api.DecodeError
	switch {
	case errors.As(err, &unknown):
		return http.StatusBadRequest
	case errors.As(err, &reqErr), errors.As(err, &decErr):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("failed to write response")
	}
}
