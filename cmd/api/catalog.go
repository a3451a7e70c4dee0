package main

import (
	"net/http"

	"github.com/go-chi/chi"

	"github.com/javiersuazo/thiam-dashboard-sub002/internal/domain"
)

type CatalogItemPayload struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" validate:"required,max=160"`
	Category    string   `json:"category" validate:"required,oneof=starter main side dessert drink"`
	PriceCents  int64    `json:"price_cents" validate:"min=0"`
	Currency    string   `json:"currency" validate:"required,iso4217"`
	TaxRateBps  int64    `json:"tax_rate_bps" validate:"min=0,max=10000"`
	DietaryTags []string `json:"dietary_tags"`
	Status      string   `json:"status" validate:"omitempty,oneof=available not_available deleted"`
}

type ReplaceCatalogRequest struct {
	Items []CatalogItemPayload `json:"items" validate:"required,dive"`
}

// replaceCatalogHandler godoc
//
//	@Summary		Replace the account catalog
//	@Description	The external catalog feed pushes the full item list; the previous list is dropped.
//	@Tags			catalog
//	@Accept			json
//	@Produce		json
//	@Param			account_id	path		string					true	"Account ID"
//	@Param			request		body		ReplaceCatalogRequest	true	"Catalog feed"
//	@Success		200			{array}		domain.MenuItem
//	@Failure		400			{object}	map[string]string
//	@Router			/accounts/{account_id}/catalog [put]
func (app *application) replaceCatalogHandler(w http.ResponseWriter, r *http.Request) {
	var req ReplaceCatalogRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.fieldValidationResponse(w, r, err)
		return
	}

	items := make([]domain.MenuItem, len(req.Items))
	for i, p := range req.Items {
		items[i] = domain.MenuItem{
			ID:          p.ID,
			Name:        p.Name,
			Category:    p.Category,
			PriceCents:  p.PriceCents,
			Currency:    p.Currency,
			TaxRateBps:  p.TaxRateBps,
			DietaryTags: p.DietaryTags,
			Status:      p.Status,
		}
	}

	saved, err := app.catalogService.Replace(r.Context(), chi.URLParam(r, "account_id"), items, userIDFrom(r))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, saved); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listCatalogHandler godoc
//
//	@Summary		List the account catalog
//	@Tags			catalog
//	@Produce		json
//	@Param			account_id	path		string	true	"Account ID"
//	@Success		200			{array}		domain.MenuItem
//	@Router			/accounts/{account_id}/catalog [get]
func (app *application) listCatalogHandler(w http.ResponseWriter, r *http.Request) {
	items, err := app.catalogService.List(r.Context(), chi.URLParam(r, "account_id"))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, items); err != nil {
		app.internalServerError(w, r, err)
	}
}
