package main

import (
	"net/http"

	"github.com/go-chi/chi"

	"github.com/javiersuazo/thiam-dashboard-sub002/internal/builder"
	"github.com/javiersuazo/thiam-dashboard-sub002/internal/domain"
)

type CreateMenuRequest struct {
	Name            string         `json:"name" validate:"required,max=120"`
	Strategy        string         `json:"strategy" validate:"omitempty,oneof=fixed sum_of_items"`
	FixedPriceCents int64          `json:"fixed_price_cents" validate:"min=0"`
	Courses         []GroupPayload `json:"courses" validate:"dive"`
}

type UpdateMenuRequest struct {
	Name            string         `json:"name" validate:"required,max=120"`
	Status          string         `json:"status" validate:"required,oneof=draft published archived"`
	Strategy        string         `json:"strategy" validate:"required,oneof=fixed sum_of_items"`
	FixedPriceCents int64          `json:"fixed_price_cents" validate:"min=0,required_if=Strategy fixed"`
	Courses         []GroupPayload `json:"courses" validate:"dive"`
}

type AddItemRequest struct {
	MenuItemID    string `json:"menu_item_id" validate:"required"`
	TargetGroupID string `json:"target_group_id"`
}

type MoveItemRequest struct {
	FromGroupID string `json:"from_group_id" validate:"required"`
	ToGroupID   string `json:"to_group_id" validate:"required"`
}

type ReorderItemsRequest struct {
	FromIndex int `json:"from_index" validate:"min=0"`
	ToIndex   int `json:"to_index" validate:"min=0"`
}

type UpdateItemPriceRequest struct {
	PriceCents int64 `json:"price_cents" validate:"min=0"`
}

type UpdateItemQuantityRequest struct {
	Quantity int64 `json:"quantity" validate:"required,min=1"`
}

type UpdateItemAvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

type AddGroupRequest struct {
	Name      string `json:"name" validate:"required,max=120"`
	Icon      string `json:"icon"`
	StartTime string `json:"start_time" validate:"omitempty,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"omitempty,datetime=15:04"`
}

type RenameGroupRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

type ReorderGroupsRequest struct {
	FromIndex int `json:"from_index" validate:"min=0"`
	ToIndex   int `json:"to_index" validate:"min=0"`
}

type UpdatePricingRequest struct {
	Strategy        string `json:"strategy" validate:"required,oneof=fixed sum_of_items"`
	FixedPriceCents int64  `json:"fixed_price_cents" validate:"min=0,required_if=Strategy fixed"`
}

// applyMenuEvent runs one builder event against the addressed menu and
// renders the outcome: 404 for a missing aggregate, 422 for a rejected
// operation, 200 with the refreshed view otherwise.
func (app *application) applyMenuEvent(w http.ResponseWriter, r *http.Request, ev builder.Event) {
	accountID := chi.URLParam(r, "account_id")
	menuID := chi.URLParam(r, "menu_id")

	view, notice, err := app.menuService.Apply(r.Context(), accountID, menuID, ev, userIDFrom(r))
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

// createMenuHandler godoc
//
//	@Summary		Create menu
//	@Tags			menus
//	@Accept			json
//	@Produce		json
//	@Param			account_id	path		string				true	"Account ID"
//	@Param			request		body		CreateMenuRequest	true	"Menu"
//	@Success		201			{object}	service.MenuView
//	@Failure		400			{object}	map[string]string
//	@Router			/accounts/{account_id}/menus [post]
func (app *application) createMenuHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateMenuRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.fieldValidationResponse(w, r, err)
		return
	}

	menu := &domain.Menu{
		AccountID:       chi.URLParam(r, "account_id"),
		Name:            req.Name,
		Strategy:        domain.PricingStrategy(req.Strategy),
		FixedPriceCents: req.FixedPriceCents,
		Courses:         toDomainGroups(req.Courses),
	}

	view, err := app.menuService.Create(r.Context(), menu, userIDFrom(r))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, view); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listMenusHandler godoc
//
//	@Summary		List menus
//	@Tags			menus
//	@Produce		json
//	@Param			account_id	path		string	true	"Account ID"
//	@Success		200			{array}		domain.Menu
//	@Router			/accounts/{account_id}/menus [get]
func (app *application) listMenusHandler(w http.ResponseWriter, r *http.Request) {
	menus, err := app.menuService.List(r.Context(), chi.URLParam(r, "account_id"))
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, menus); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getMenuHandler godoc
//
//	@Summary		Get menu with computed totals
//	@Tags			menus
//	@Produce		json
//	@Param			account_id	path		string	true	"Account ID"
//	@Param			menu_id		path		string	true	"Menu ID"
//	@Success		200			{object}	service.MenuView
//	@Failure		404			{object}	map[string]string
//	@Router			/accounts/{account_id}/menus/{menu_id} [get]
func (app *application) getMenuHandler(w http.ResponseWriter, r *http.Request) {
	view, err := app.menuService.Get(r.Context(), chi.URLParam(r, "account_id"), chi.URLParam(r, "menu_id"))
	if err != nil {
		app.repoError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, view); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateMenuHandler godoc
//
//	@Summary		Save menu (full aggregate, atomic)
//	@Tags			menus
//	@Accept			json
//	@Produce		json
//	@Param			account_id	path		string				true	"Account ID"
//	@Param			menu_id		path		string				true	"Menu ID"
//	@Param			request		body		UpdateMenuRequest	true	"Menu"
//	@Success		200			{object}	service.MenuView
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/accounts/{account_id}/menus/{menu_id} [put]
func (app *application) updateMenuHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateMenuRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.fieldValidationResponse(w, r, err)
		return
	}

	menu := &domain.Menu{
		ID:              chi.URLParam(r, "menu_id"),
		AccountID:       chi.URLParam(r, "account_id"),
		Name:            req.Name,
		Status:          req.Status,
		Strategy:        domain.PricingStrategy(req.Strategy),
		FixedPriceCents: req.FixedPriceCents,
		Courses:         toDomainGroups(req.Courses),
	}

	view, err := app.menuService.Update(r.Context(), menu, userIDFrom(r))
	if err != nil {
		app.repoError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, view); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteMenuHandler godoc
//
//	@Summary		Delete menu
//	@Tags			menus
//	@Param			account_id	path	string	true	"Account ID"
//	@Param			menu_id		path	string	true	"Menu ID"
//	@Success		204
//	@Failure		404	{object}	map[string]string
//	@Router			/accounts/{account_id}/menus/{menu_id} [delete]
func (app *application) deleteMenuHandler(w http.ResponseWriter, r *http.Request) {
	err := app.menuService.Delete(r.Context(), chi.URLParam(r, "account_id"), chi.URLParam(r, "menu_id"), userIDFrom(r))
	if err != nil {
		app.repoError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// duplicateMenuHandler godoc
//
//	@Summary		Duplicate menu into a new draft
//	@Tags			menus
//	@Produce		json
//	@Param			account_id	path		string	true	"Account ID"
//	@Param			menu_id		path		string	true	"Menu ID"
//	@Success		201			{object}	service.MenuView
//	@Failure		404			{object}	map[string]string
//	@Router			/accounts/{account_id}/menus/{menu_id}/duplicate [post]
func (app *application) duplicateMenuHandler(w http.ResponseWriter, r *http.Request) {
	view, err := app.menuService.Duplicate(r.Context(), chi.URLParam(r, "account_id"), chi.URLParam(r, "menu_id"), userIDFrom(r))
	if err != nil {
		app.repoError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, view); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getMenuAuditHandler godoc
//
//	@Summary		Get menu audit trail
//	@Tags			menus
//	@Produce		json
//	@Param			account_id	path		string	true	"Account ID"
//	@Param			menu_id		path		string	true	"Menu ID"
//	@Success		200			{array}		domain.BuilderAudit
//	@Router			/accounts/{account_id}/menus/{menu_id}/audit [get]
func (app *application) getMenuAuditHandler(w http.ResponseWriter, r *http.Request) {
	audits, err := app.auditService.GetTrail(r.Context(), chi.URLParam(r, "menu_id"), 50)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, audits); err != nil {
		app.internalServerError(w, r, err)
	}
}

// addMenuItemHandler godoc
//
//	@Summary		Add a catalog item to the menu
//	@Description	Routes to the target course, or by item category when no target is given. Duplicate references are rejected with 422.
//	@Tags			menus
//	@Accept			json
//	@Produce		json
//	@Param			account_id	path		string			true	"Account ID"
//	@Param			menu_id		path		string			true	"Menu ID"
//	@Param			request		body		AddItemRequest	true	"Item"
//	@Success		200			{object}	service.MenuView
//	@Failure		404			{object}	map[string]string
//	@Failure		422			{object}	map[string]string
//	@Router			/accounts/{account_id}/menus/{menu_id}/items [post]
func (app *application) addMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	var req AddItemRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.fieldValidationResponse(w, r, err)
		return
	}

	view, notice, err := app.menuService.AddItem(
		r.Context(),
		chi.URLParam(r, "account_id"),
		chi.URLParam(r, "menu_id"),
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

// removeMenuItemHandler godoc
//
//	@Summary		Remove an item reference from a course
//	@Tags			menus
//	@Produce		json
//	@Param			account_id	path		string	true	"Account ID"
//	@Param			menu_id		path		string	true	"Menu ID"
//	@Param			course_id	path		string	true	"Course ID"
//	@Param			item_ref_id	path		string	true	"Item reference ID"
//	@Success		200			{object}	service.MenuView
//	@Router			/accounts/{account_id}/menus/{menu_id}/courses/{course_id}/items/{item_ref_id} [delete]
func (app *application) removeMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	app.applyMenuEvent(w, r, builder.RemoveItem{
		GroupID:   chi.URLParam(r, "course_id"),
		ItemRefID: chi.URLParam(r, "item_ref_id"),
	})
}

// duplicateMenuItemHandler godoc
//
//	@Summary		Duplicate an item reference within its course
//	@Tags			menus
//	@Produce		json
//	@Success		200	{object}	service.MenuView
//	@Router			/accounts/{account_id}/menus/{menu_id}/courses/{course_id}/items/{item_ref_id}/duplicate [post]
func (app *application) duplicateMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	app.applyMenuEvent(w, r, builder.DuplicateItem{
		GroupID:   chi.URLParam(r, "course_id"),
		ItemRefID: chi.URLParam(r, "item_ref_id"),
	})
}

// moveMenuItemHandler godoc
//
//	@Summary		Move an item reference between courses
//	@Tags			menus
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	service.MenuView
//	@Failure		422	{object}	map[string]string
//	@Router			/accounts/{account_id}/menus/{menu_id}/items/{item_ref_id}/move [post]
func (app *application) moveMenuItemHandler(w http.ResponseWriter, r *http.Request) {
	var req MoveItemRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.fieldValidationResponse(w, r, err)
		return
	}

	app.applyMenuEvent(w, r, builder.MoveItem{
		FromGroupID: req.FromGroupID,
		ToGroupID:   req.ToGroupID,
		ItemRefID:   chi.URLParam(r, "item_ref_id"),
	})
}

// reorderMenuItemsHandler godoc
//
//	@Summary		Reorder items within a course
//	@Tags			menus
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	service.MenuView
//	@Router			/accounts/{account_id}/menus/{menu_id}/courses/{course_id}/reorder [post]
func (app *application) reorderMenuItemsHandler(w http.ResponseWriter, r *http.Request) {
	var req ReorderItemsRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.fieldValidationResponse(w, r, err)
		return
	}

	app.applyMenuEvent(w, r, builder.ReorderItems{
		GroupID:   chi.URLParam(r, "course_id"),
		FromIndex: req.FromIndex,
		ToIndex:   req.ToIndex,
	})
}

// updateMenuItemPriceHandler godoc
//
//	@Summary		Override an item price within its course
//	@Tags			menus
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	service.MenuView
//	@Router			/accounts/{account_id}/menus/{menu_id}/courses/{course_id}/items/{item_ref_id}/price [patch]
func (app *application) updateMenuItemPriceHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemPriceRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.fieldValidationResponse(w, r, err)
		return
	}

	app.applyMenuEvent(w, r, builder.UpdateItemPrice{
		GroupID:    chi.URLParam(r, "course_id"),
		ItemRefID:  chi.URLParam(r, "item_ref_id"),
		PriceCents: req.PriceCents,
	})
}

// updateMenuItemQuantityHandler godoc
//
//	@Summary		Update an item quantity
//	@Tags			menus
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	service.MenuView
//	@Router			/accounts/{account_id}/menus/{menu_id}/courses/{course_id}/items/{item_ref_id}/quantity [patch]
func (app *application) updateMenuItemQuantityHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemQuantityRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.fieldValidationResponse(w, r, err)
		return
	}

	app.applyMenuEvent(w, r, builder.UpdateItemQuantity{
		GroupID:   chi.URLParam(r, "course_id"),
		ItemRefID: chi.URLParam(r, "item_ref_id"),
		Quantity:  req.Quantity,
	})
}

// updateMenuItemAvailabilityHandler godoc
//
//	@Summary		Toggle an item's availability
//	@Tags			menus
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	service.MenuView
//	@Router			/accounts/{account_id}/menus/{menu_id}/courses/{course_id}/items/{item_ref_id}/availability [patch]
func (app *application) updateMenuItemAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdateItemAvailabilityRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.fieldValidationResponse(w, r, err)
		return
	}

	app.applyMenuEvent(w, r, builder.SetItemAvailability{
		GroupID:   chi.URLParam(r, "course_id"),
		ItemRefID: chi.URLParam(r, "item_ref_id"),
		Available: *req.Available,
	})
}

// addCourseHandler godoc
//
//	@Summary		Add a course
//	@Tags			menus
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	service.MenuView
//	@Router			/accounts/{account_id}/menus/{menu_id}/courses [post]
func (app *application) addCourseHandler(w http.ResponseWriter, r *http.Request) {
	var req AddGroupRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.fieldValidationResponse(w, r, err)
		return
	}

	app.applyMenuEvent(w, r, builder.AddGroup{Name: req.Name, Icon: req.Icon})
}

// removeCourseHandler godoc
//
//	@Summary		Remove a course
//	@Tags			menus
//	@Produce		json
//	@Success		200	{object}	service.MenuView
//	@Router			/accounts/{account_id}/menus/{menu_id}/courses/{course_id} [delete]
func (app *application) removeCourseHandler(w http.ResponseWriter, r *http.Request) {
	app.applyMenuEvent(w, r, builder.RemoveGroup{GroupID: chi.URLParam(r, "course_id")})
}

// renameCourseHandler godoc
//
//	@Summary		Rename a course
//	@Tags			menus
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	service.MenuView
//	@Router			/accounts/{account_id}/menus/{menu_id}/courses/{course_id} [patch]
func (app *application) renameCourseHandler(w http.ResponseWriter, r *http.Request) {
	var req RenameGroupRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.fieldValidationResponse(w, r, err)
		return
	}

	app.applyMenuEvent(w, r, builder.RenameGroup{GroupID: chi.URLParam(r, "course_id"), Name: req.Name})
}

// reorderCoursesHandler godoc
//
//	@Summary		Reorder courses
//	@Tags			menus
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	service.MenuView
//	@Router			/accounts/{account_id}/menus/{menu_id}/courses/reorder [post]
func (app *application) reorderCoursesHandler(w http.ResponseWriter, r *http.Request) {
	var req ReorderGroupsRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.fieldValidationResponse(w, r, err)
		return
	}

	app.applyMenuEvent(w, r, builder.ReorderGroups{FromIndex: req.FromIndex, ToIndex: req.ToIndex})
}

// updateMenuPricingHandler godoc
//
//	@Summary		Set the pricing strategy
//	@Description	Under "fixed" the fixed price is authoritative; under "sum_of_items" it is ignored.
//	@Tags			menus
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	service.MenuView
//	@Router			/accounts/{account_id}/menus/{menu_id}/pricing [patch]
func (app *application) updateMenuPricingHandler(w http.ResponseWriter, r *http.Request) {
	var req UpdatePricingRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.fieldValidationResponse(w, r, err)
		return
	}

	app.applyMenuEvent(w, r, builder.SetPricingStrategy{
		Strategy:        domain.PricingStrategy(req.Strategy),
		FixedPriceCents: req.FixedPriceCents,
	})
}
