package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"devtracker/internal/app"
)

// NewCommandsListHandler creates handlerfunc returning every stored command.
func NewCommandsListHandler(store CommandStore, l logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := store.All()
		if err != nil {
			writeError(w, err, l)
			return
		}

		writeJSON(w, all)
	}
}

// NewCommandSetHandler creates handlerfunc creating or updating one command.
func NewCommandSetHandler(store CommandStore, l logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Cmd  string `json:"cmd"`
			Desc string `json:"desc"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, app.InvalidRequestError("invalid request body"), l)
			return
		}

		all, err := store.Set(req.Cmd, req.Desc)
		if err != nil {
			writeError(w, err, l)
			return
		}

		writeJSON(w, all)
	}
}

// NewCommandDeleteHandler creates handlerfunc removing one command.
func NewCommandDeleteHandler(store CommandStore, l logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		all, err := store.Delete(chi.URLParam(r, "cmd"))
		if err != nil {
			writeError(w, err, l)
			return
		}

		writeJSON(w, all)
	}
}

// NewCommandRenameHandler creates handlerfunc moving a command to a new name.
func NewCommandRenameHandler(store CommandStore, l logrus.FieldLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			OldCmd string `json:"oldCmd"`
			NewCmd string `json:"newCmd"`
			Desc   string `json:"desc"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, app.InvalidRequestError("invalid request body"), l)
			return
		}

		all, err := store.Rename(req.OldCmd, req.NewCmd, req.Desc)
		if err != nil {
			writeError(w, err, l)
			return
		}

		writeJSON(w, all)
	}
}
