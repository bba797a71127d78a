package rest

import (
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/realty/internal/catalog"
	"github.com/dmitrijs2005/realty/internal/server/contracts"
)

// collectionList handles GET /rest/v1/properties: every listing, newest
// first, read straight from the collection.
func (s *Server) collectionList(w http.ResponseWriter, r *http.Request) {
	props, err := s.deps.Collection.List(r.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if props == nil {
		props = []catalog.Property{}
	}
	writeJSON(w, http.StatusOK, props)
}

// draftFromBody validates the payload against the property schema and
// decodes it over the form defaults.
func (s *Server) draftFromBody(w http.ResponseWriter, r *http.Request) (catalog.Draft, error) {
	body, err := readBody(w, r)
	if err != nil {
		return catalog.Draft{}, err
	}
	if err := s.deps.Validator.Validate(contracts.Property, body); err != nil {
		return catalog.Draft{}, err
	}

	d := catalog.NewDraft()
	if err := decodeJSON(body, &d); err != nil {
		return catalog.Draft{}, err
	}
	return d, nil
}

func (s *Server) collectionInsert(w http.ResponseWriter, r *http.Request) {
	d, err := s.draftFromBody(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	p, err := s.deps.Gateway.Insert(r.Context(), d)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

func (s *Server) collectionUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	d, err := s.draftFromBody(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	p, err := s.deps.Gateway.Update(r.Context(), id, d)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

type activePatch struct {
	Active bool `json:"active"`
}

func (s *Server) collectionSetActive(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	body, err := readBody(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.deps.Validator.Validate(contracts.Active, body); err != nil {
		s.fail(w, r, err)
		return
	}
	var patch activePatch
	if err := decodeJSON(body, &patch); err != nil {
		s.fail(w, r, err)
		return
	}

	if err := s.deps.Gateway.SetActive(r.Context(), id, patch.Active); err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, patch)
}

// collectionDelete handles DELETE /rest/v1/properties/{id}?confirm=true.
// Without the confirmation nothing is deleted and the prompt is returned.
func (s *Server) collectionDelete(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	confirmed, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))

	if err := s.deps.Gateway.Delete(r.Context(), id, confirmed); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
