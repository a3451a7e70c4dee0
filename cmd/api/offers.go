package main

import (
	"net/http"

	"github.com/go-chi/chi"

	"github.com/javiersuazo/thiam-dashboard-sub002/internal/builder"
	"github.com/javiersuazo/thiam-dashboard-sub002/internal/domain"
)

type CreateOfferRequest struct {
	Title           string           `json:"title" validate:"required,max=120"`
	Strategy        string           `json:"strategy" validate:"omitempty,oneof=fixed sum_of_items"`
	FixedPriceCents int64            `json:"fixed_price_cents" validate:"min=0"`
	Discount        *DiscountPayload `json:"discount"`
	Blocks          []GroupPayload   `json:"blocks" validate:"dive"`
}

type UpdateOfferRequest struct {
	Title           string           `json:"title" validate:"required,max=120"`
	Status          string           `json:"status" validate:"required,oneof=draft published archived"`
	Strategy        string           `json:"strategy" validate:"required,oneof=fixed sum_of_items"`
	FixedPriceCents int64            `json:"fixed_price_cents" validate:"min=0,required_if=Strategy fixed"`
	Discount        *DiscountPayload `json:"discount"`
	Blocks          []GroupPayload   `json:"blocks" validate:"dive"`
}

type UpdateDiscountRequest struct {
	Discount *DiscountPayload `json:"discount"`
}

// applyOfferEvent mirrors applyMenuEvent for the offer builder.
func (app *application) applyOfferEvent(w http.ResponseWriter, r *http.Request, ev builder.Event) {
	accountID := chi.URLParam(r, "account_id")
	offerID := chi.URLParam(r, "offer_id")

	view, notice, err := app.offerService.Apply(r.Context(), accountID, offerID, ev, userIDFrom(r))
	if err != nil {
		app.repoError(w, r, err)
		return
	}
	if !notice.IsZero() {
		app.conflictResponse(w, r, notice)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, view); err != nil {
		app.internalServerError(w, r, err)
	}
}

// createOfferHandler godoc
//
//	@Summary		Create offer
//	@Tags			offers
//	@Accept			json
//	@Produce		json
//	@Param			account_id	path		string				true	"Account ID"
//	@Param			request		body		CreateOfferRequest	true	"Offer"
//	@Success		201			{object}	service.OfferView
//	@Failure		400			{object}	map[string]string
//	@Router			/accounts/{account_id}/offers [post]
func (app *application) createOfferHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateOfferRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.fieldValidationResponse(w, r, err)
		return
	}

	offer := &domain.Offer{
		AccountID:       chi.URLParam(r, "account_id"),
		Title:           req.Title,
		Strategy:        domain.PricingStrategy(req.Strategy),
		FixedPriceCents: req.FixedPriceCents,
		Discount:        toDomainDiscount(req.Discount),
		Blocks:          toDomainGroups(req.Blocks),
	}

	view, err := app.offerService.Create(r.Context(), offer, userIDFrom(r))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, view); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listOffersHandler godoc
//
//	@Summary		List offers
//	@Tags			offers
//	@Produce		json
//	@Success		200	{array}	domain.Offer
//	@Router			/accounts/{account_id}/offers [get]
func (app *application) listOffersHandler(w http.ResponseWriter, r *http.Request) {
	offers, err := app.offerService.List(r.Context(), chi.URLParam(r, "account_id"))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, offers); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getOfferHandler godoc
//
//	@Summary		Get offer with totals breakdown
//	@Tags			offers
//	@Produce		json
//	@Success		200	{object}	service.OfferView
//	@Failure		404	{object}	map[string]string
//	@Router			/accounts/{account_id}/offers/{offer_id} [get]
func (app *application) getOfferHandler(w http.ResponseWriter, r *http.Request) {
	view, err := app.offerService.Get(r.Context(), chi.URLParam(r, "account_id"), chi.URLParam(r, "offer_id"))
	if err != nil {
		app.repoError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, view); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateOfferHandler godoc
//
//	@Summary		Save offer (full aggregate, atomic)
//	@Tags			offers
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	service.OfferView
//	@Failure		400	{object}	map[string]string
//	@Failure		404	{object}	map[string]string
//	@Router			/accounts/{account_id}/offers/{offer_id} [put]
func (app *application) updateOfferHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateOfferRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.fieldValidationResponse(w, r, err)
		return
	}

	offer := &domain.Offer{
		ID:              chi.URLParam(r, "offer_id"),
		AccountID:       chi.URLParam(r, "account_id"),
		Title:           req.Title,
		Status:          req.Status,
		Strategy:        domain.PricingStrategy(req.Strategy),
		FixedPriceCents: req.FixedPriceCents,
		Discount:        toDomainDiscount(req.Discount),
		Blocks:          toDomainGroups(req.Blocks),
	}

	view, err := app.offerService.Update(r.Context(), offer, userIDFrom(r))
	if err != nil {
		app.repoError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, view); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteOfferHandler godoc
//
//	@Summary		Delete offer
//	@Tags			offers
//	@Success		204
//	@Router			/accounts/{account_id}/offers/{offer_id} [delete]
func (app *application) deleteOfferHandler(w http.ResponseWriter, r *http.Request) {
	err := app.offerService.Delete(r.Context(), chi.URLParam(r, "account_id"), chi.URLParam(r, "offer_id"), userIDFrom(r))
	if err != nil {
		app.repoError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// duplicateOfferHandler godoc
//
//	@Summary		Duplicate offer into a new draft
//	@Tags			offers
//	@Produce		json
//	@Success		201	{object}	service.OfferView
//	@Router			/accounts/{account_id}/offers/{offer_id}/duplicate [post]
func (app *application) duplicateOfferHandler(w http.ResponseWriter, r *http.Request) {
	view, err := app.offerService.Duplicate(r.Context(), chi.URLParam(r, "account_id"), chi.URLParam(r, "offer_id"), userIDFrom(r))
	if err != nil {
		app.repoError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, view); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getOfferAuditHandler godoc
//
//	@Summary		Get offer audit trail
//	@Tags			offers
//	@Produce		json
//	@Success		200	{array}	domain.BuilderAudit
//	@Router			/accounts/{account_id}/offers/{offer_id}/audit [get]
func (app *application) getOfferAuditHandler(w http.ResponseWriter, r *http.Request) {
	audits, err := app.auditService.GetTrail(r.Context(), chi.URLParam(r, "offer_id"), 50)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, audits); err != nil {
		app.internalServerError(w, r, err)
	}
}

// addOfferItemHandler godoc
//
//	@Summary		Add a catalog item to the offer
//	@Tags			offers
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	service.OfferView
//	@Failure		422	{object}	map[string]string
//	@Router			/accounts/{account_id}/offers/{offer_id}/items [post]
func (app *application) addOfferItemHandler(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.fieldValidationResponse(w, r, err)
		return
	}

	view, notice, err := app.offerService.AddItem(
		r.Context(),
		chi.URLParam(r, "account_id"),
		chi.URLParam(r, "offer_id"),
		req.MenuItemID,
		req.TargetGroupID,
		userIDFrom(r),
	)
	if err != nil {
		app.repoError(w, r, err)
		return
	}
	if !notice.IsZero() {
		app.conflictResponse(w, r, notice)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, view); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) removeOfferItemHandler(w http.ResponseWriter, r *http.Request) {
	app.applyOfferEvent(w, r, builder.RemoveItem{
		GroupID:   chi.URLParam(r, "block_id"),
		ItemRefID: chi.URLParam(r, "item_ref_id"),
	})
}

func (app *application) duplicateOfferItemHandler(w http.ResponseWriter, r *http.Request) {
	app.applyOfferEvent(w, r, builder.DuplicateItem{
		GroupID:   chi.URLParam(r, "block_id"),
		ItemRefID: chi.URLParam(r, "item_ref_id"),
	})
}

func (app *application) moveOfferItemHandler(w http.ResponseWriter, r *http.Request) {
	var req MoveItemRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.fieldValidationResponse(w, r, err)
		return
	}

	app.applyOfferEvent(w, r, builder.MoveItem{
		FromGroupID: req.FromGroupID,
		ToGroupID:   req.ToGroupID,
		ItemRefID:   chi.URLParam(r, "item_ref_id"),
	})
}

func (app *application) reorderOfferItemsHandler(w http.ResponseWriter, r *http.Request) {
	var req ReorderItemsRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.fieldValidationResponse(w, r, err)
		return
	}

	app.applyOfferEvent(w, r, builder.ReorderItems{
		GroupID:   chi.URLParam(r, "block_id"),
		FromIndex: req.FromIndex,
		ToIndex:   req.ToIndex,
	})
}

func (app *application) updateOfferItemPriceHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemPriceRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.fieldValidationResponse(w, r, err)
		return
	}

	app.applyOfferEvent(w, r, builder.UpdateItemPrice{
		GroupID:    chi.URLParam(r, "block_id"),
		ItemRefID:  chi.URLParam(r, "item_ref_id"),
		PriceCents: req.PriceCents,
	})
}

func (app *application) updateOfferItemQuantityHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemQuantityRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.fieldValidationResponse(w, r, err)
		return
	}

	app.applyOfferEvent(w, r, builder.UpdateItemQuantity{
		GroupID:   chi.URLParam(r, "block_id"),
		ItemRefID: chi.URLParam(r, "item_ref_id"),
		Quantity:  req.Quantity,
	})
}

// addBlockHandler godoc
//
//	@Summary		Add a time block
//	@Tags			offers
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	service.OfferView
//	@Router			/accounts/{account_id}/offers/{offer_id}/blocks [post]
func (app *application) addBlockHandler(w http.ResponseWriter, r *http.Request) {
	var req AddGroupRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.fieldValidationResponse(w, r, err)
		return
	}

	app.applyOfferEvent(w, r, builder.AddGroup{
		Name:      req.Name,
		Icon:      req.Icon,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	})
}

func (app *application) removeBlockHandler(w http.ResponseWriter, r *http.Request) {
	app.applyOfferEvent(w, r, builder.RemoveGroup{GroupID: chi.URLParam(r, "block_id")})
}

func (app *application) renameBlockHandler(w http.ResponseWriter, r *http.Request) {
	var req RenameGroupRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.fieldValidationResponse(w, r, err)
		return
	}

	app.applyOfferEvent(w, r, builder.RenameGroup{GroupID: chi.URLParam(r, "block_id"), Name: req.Name})
}

func (app *application) reorderBlocksHandler(w http.ResponseWriter, r *http.Request) {
	var req ReorderGroupsRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.fieldValidationResponse(w, r, err)
		return
	}

	app.applyOfferEvent(w, r, builder.ReorderGroups{FromIndex: req.FromIndex, ToIndex: req.ToIndex})
}

func (app *application) updateOfferItemAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemAvailabilityRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.fieldValidationResponse(w, r, err)
		return
	}

	app.applyOfferEvent(w, r, builder.SetItemAvailability{
		GroupID:   chi.URLParam(r, "block_id"),
		ItemRefID: chi.URLParam(r, "item_ref_id"),
		Available: *req.Available,
	})
}

// updateOfferPricingHandler godoc
//
//	@Summary		Set the offer pricing strategy
//	@Tags			offers
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	service.OfferView
//	@Router			/accounts/{account_id}/offers/{offer_id}/pricing [patch]
func (app *application) updateOfferPricingHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdatePricingRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.fieldValidationResponse(w, r, err)
		return
	}

	app.applyOfferEvent(w, r, builder.SetPricingStrategy{
		Strategy:        domain.PricingStrategy(req.Strategy),
		FixedPriceCents: req.FixedPriceCents,
	})
}

// updateOfferDiscountHandler godoc
//
//	@Summary		Set or clear the offer discount
//	@Description	The discount comes off the subtotal before tax is added.
//	@Tags			offers
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	service.OfferView
//	@Router			/accounts/{account_id}/offers/{offer_id}/discount [patch]
func (app *application) updateOfferDiscountHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateDiscountRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.fieldValidationResponse(w, r, err)
		return
	}

	app.applyOfferEvent(w, r, builder.SetDiscount{Discount: toDomainDiscount(req.Discount)})
}
