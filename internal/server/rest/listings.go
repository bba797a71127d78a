package rest

import (
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/realty/internal/catalog"
	"github.com/dmitrijs2005/realty/internal/common"
	"github.com/dmitrijs2005/realty/internal/contact"
	"github.com/dmitrijs2005/realty/internal/session"
)

type listingsResponse struct {
	Items   []catalog.Property `json:"items"`
	Total   int                `json:"total"`
	Loading bool               `json:"loading"`
}

// listListings handles GET /api/v1/listings?q=&type=&price=
func (s *Server) listListings(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	band, err := catalog.ParseBand(query.Get("price"))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	items := s.deps.Store.Query(catalog.Criteria{
		Search:   query.Get("q"),
		Category: query.Get("type"),
		Band:     band,
		Admin:    session.FromContext(r.Context()).IsAdmin(),
	})
	if items == nil {
		items = []catalog.Property{}
	}

	writeJSON(w, http.StatusOK, listingsResponse{
		Items:   items,
		Total:   len(items),
		Loading: !s.deps.Store.Loaded(),
	})
}

// visible returns the listing with the id in the path unless the caller may
// not see it.
func (s *Server) visible(r *http.Request) (catalog.Property, error) {
	id, err := idParam(r)
	if err != nil {
		return catalog.Property{}, err
	}
	p, ok := s.deps.Store.Lookup(id)
	if !ok || (!p.Active && !session.FromContext(r.Context()).IsAdmin()) {
		return catalog.Property{}, fmt.Errorf("listing %d: %w", id, common.ErrorNotFound)
	}
	return p, nil
}

func (s *Server) getListing(w http.ResponseWriter, r *http.Request) {
	p, err := s.visible(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) inquiry(w http.ResponseWriter, r *http.Request) {
	p, err := s.visible(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": s.deps.Linker.InquiryLink(p)})
}

func (s *Server) contactLink(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var form contact.Form
	if err := decodeJSON(body, &form); err != nil {
		s.fail(w, r, err)
		return
	}

	link, err := s.deps.Linker.ContactLink(form)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"url": link})
}

type bandOption struct {
	Value catalog.PriceBand `json:"value"`
	Min   float64           `json:"min"`
	Max   float64           `json:"max,omitempty"`
}

// filters handles GET /api/v1/filters: the options the site offers.
func (s *Server) filters(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"categories": catalog.KnownCategories,
		"price_bands": []bandOption{
			{Value: catalog.BandLow, Max: catalog.LowBandMax},
			{Value: catalog.BandMedium, Min: catalog.LowBandMax, Max: catalog.MediumBandMax},
			{Value: catalog.BandHigh, Min: catalog.MediumBandMax},
		},
		"contact_url": s.deps.Linker.DirectLink(),
	})
}
