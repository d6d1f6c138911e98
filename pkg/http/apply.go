package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/thehowl/godiff/patch"
)

// applyPatch handles POST /{id}/apply: the request body is a unified diff,
// which is parsed and applied against the "red" file stored for id. It
// returns the patched text, or 422 if the patch doesn't apply.
func (s *Server) applyPatch(w http.ResponseWriter, r *http.Request) error {
	id := chi.URLParam(r, "id")

	files, err := s.getFiles(r.Context(), id)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("not found"))
		return nil
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		return err
	}

	patches, err := patch.ParsePatch(string(body))
	if err != nil {
		w.Header().Set(ctHeader, ctPlain)
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte("could not parse patch: " + err.Error() + "\n"))
		return nil
	}
	if len(patches) == 0 {
		w.Header().Set(ctHeader, ctPlain)
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte("empty patch\n"))
		return nil
	}

	out, err := patch.ApplyPatch(files[0].Content, patches[0])
	if err != nil {
		var ae *patch.ApplyError
		if errors.As(err, &ae) {
			w.Header().Set(ctHeader, ctPlain)
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(err.Error() + "\n"))
			return nil
		}
		return err
	}

	w.Header().Set(ctHeader, ctPlain)
	w.Write([]byte(out))
	return nil
}
