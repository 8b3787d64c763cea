package transport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	appservice "github.com/jwar28/rappiclone/pkg/application/service"
	"github.com/jwar28/rappiclone/pkg/domain/model"
	"github.com/jwar28/rappiclone/pkg/domain/service"
)

type errorResponse struct {
	Error    string `json:"error"`
	Redirect string `json:"redirect,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("write response body")
	}
}

func writeError(w http.ResponseWriter, err error) {
	var (
		validation *model.ValidationError
		denied     *service.AccessDeniedError
		remote     *model.RemoteError
	)

	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: validation.Error()})
	case errors.As(err, &denied):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: denied.Error(), Redirect: denied.Redirect})
	case errors.Is(err, model.ErrUnauthenticated):
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: model.ErrUnauthenticated.Error()})
	case errors.Is(err, model.ErrForbidden):
		writeJSON(w, http.StatusForbidden, errorResponse{Error: model.ErrForbidden.Error()})
	case errors.Is(err, model.ErrBusinessNotFound),
		errors.Is(err, model.ErrProductNotFound),
		errors.Is(err, model.ErrOrderNotFound),
		errors.Is(err, model.ErrProfileNotFound),
		errors.Is(err, appservice.ErrOrderNotTracked):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	case errors.Is(err, model.ErrInvalidStatusTransition):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.As(err, &remote):
		log.WithError(err).WithField("op", remote.Op).Error("store request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: remote.Error()})
	default:
		log.WithError(err).Error("request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func decode(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return model.NewValidationError("body", "malformed JSON: "+err.Error())
	}
	return nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		return uuid.Nil, model.NewValidationError("id", "invalid identifier")
	}
	return id, nil
}

func queryID(r *http.Request, name string) (*uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, model.NewValidationError(name, "invalid identifier")
	}
	return &id, nil
}
