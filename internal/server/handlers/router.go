// Package handlers exposes the election over HTTP/JSON.
package handlers

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophvote/internal/common"
	"github.com/dmitrijs2005/gophvote/internal/logging"
	"github.com/dmitrijs2005/gophvote/internal/server/election"
	"github.com/gorilla/mux"
)

type Handler struct {
	store         *election.Store
	secretKey     []byte
	tokenValidity time.Duration
	logger        logging.Logger
}

func NewHandler(store *election.Store, secretKey []byte, tokenValidity time.Duration, logger logging.Logger) *Handler {
	return &Handler{
		store:         store,
		secretKey:     secretKey,
		tokenValidity: tokenValidity,
		logger:        logger.With("module", "handlers"),
	}
}

// NewRouter adds all the routes of the election service.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.Use(h.withRequestLogging)

	r.HandleFunc(common.LoginPath, h.Login).Methods(http.MethodPost)
	r.HandleFunc(common.CandidatesPath, h.Candidates).Methods(http.MethodGet)
	r.Handle(common.VotePath, h.requireStudent(http.HandlerFunc(h.Vote))).Methods(http.MethodPost)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, common.CodeBadRequest, "Not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, common.CodeBadRequest, "Method not allowed")
	})
	return r
}
