package chi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/kailas-cloud/partpilot/internal/domain"
	"github.com/kailas-cloud/partpilot/internal/domain/cart"
	"github.com/kailas-cloud/partpilot/internal/domain/part"
)

type cartResponse struct {
	Items []cart.Item `json:"items"`
	Count int         `json:"count"`
	Total float64     `json:"total"`
	Added *int        `json:"added,omitempty"`
}

func cartView(c *cart.Cart) cartResponse {
	items := c.Items()
	return cartResponse{Items: items, Count: len(items), Total: c.Total()}
}

// GetCart handles GET /api/v1/cart.
func (s *Server) GetCart(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, cartView(sessionFrom(r.Context()).Cart))
}

// ClearCart handles DELETE /api/v1/cart.
func (s *Server) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r.Context()).Cart.Clear()
	w.WriteHeader(http.StatusNoContent)
}

// AddCartItem handles POST /api/v1/cart/items. A part already in the cart is left as is.
func (s *Server) AddCartItem(w http.ResponseWriter, r *http.Request) {
	var p part.Part
	if !decodeBody(w, r, &p) {
		return
	}
	if strings.TrimSpace(p.OEMPartNumber) == "" {
		s.handleDomainError(w, r, fmt.Errorf("%w: oem_part_number is required", domain.ErrValidation))
		return
	}

	c := sessionFrom(r.Context()).Cart
	added := 0
	status := http.StatusOK
	if c.Add(p.Normalize()) {
		added, status = 1, http.StatusCreated
	}
	resp := cartView(c)
	resp.Added = &added
	writeJSON(w, status, resp)
}

// AddAllCartItems handles POST /api/v1/cart/items/all: every part of the
// session's displayed results goes into the cart.
func (s *Server) AddAllCartItems(w http.ResponseWriter, r *http.Request) {
	sess := sessionFrom(r.Context())
	added := sess.Cart.AddAll(sess.Search.Results())
	resp := cartView(sess.Cart)
	resp.Added = &added
	writeJSON(w, http.StatusOK, resp)
}

// RemoveCartItem handles DELETE /api/v1/cart/items/{oem}.
func (s *Server) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	sessionFrom(r.Context()).Cart.Remove(chi.URLParam(r, "oem"))
	w.WriteHeader(http.StatusNoContent)
}
