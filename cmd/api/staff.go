package main

import (
	"net/http"

	"github.com/go-chi/chi"
	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateStaffRequest struct {
	Shop     string `json:"shop" validate:"required"`
	Fullname string `json:"fullname" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
}

// createStaffHandler godoc
//
//	@Summary		Create staff member
//	@Tags			staff
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateStaffRequest	true	"Staff request"
//	@Success		201		{object}	domain.Staff
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/staff [post]
func (app *application) createStaffHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateStaffRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	staff := domain.Staff{
		Shop:     req.Shop,
		Fullname: req.Fullname,
		Email:    req.Email,
		Phone:    req.Phone,
	}

	if err := app.staffService.Create(r.Context(), &staff); err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, staff); err != nil {
		app.internalServerError(w, r, err)
	}
}

// listStaffHandler godoc
//
//	@Summary		List staff
//	@Tags			staff
//	@Produce		json
//	@Param			shop	query		string	true	"Shop domain"
//	@Success		200		{array}		domain.Staff
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/staff [get]
func (app *application) listStaffHandler(w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")
	if shop == "" {
		app.badRequestResponse(w, r, ErrMissingShop)
		return
	}

	staff, err := app.staffService.List(r.Context(), shop)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, staff); err != nil {
		app.internalServerError(w, r, err)
	}
}

// getStaffHandler godoc
//
//	@Summary		Get staff member
//	@Tags			staff
//	@Produce		json
//	@Param			shop		query		string	true	"Shop domain"
//	@Param			staff_id	path		string	true	"Staff ID"
//	@Success		200			{object}	domain.Staff
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/staff/{staff_id} [get]
func (app *application) getStaffHandler(w http.ResponseWriter, r *http.Request) {
	shop, staffID, ok := app.shopAndStaffID(w, r)
	if !ok {
		return
	}

	staff, err := app.staffService.Get(r.Context(), shop, staffID)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, staff); err != nil {
		app.internalServerError(w, r, err)
	}
}

type UpdateStaffRequest struct {
	Fullname string `json:"fullname" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone"`
	Active   bool   `json:"active"`
}

// updateStaffHandler godoc
//
//	@Summary		Update staff member
//	@Tags			staff
//	@Accept			json
//	@Produce		json
//	@Param			shop		query		string				true	"Shop domain"
//	@Param			staff_id	path		string				true	"Staff ID"
//	@Param			request		body		UpdateStaffRequest	true	"Staff update"
//	@Success		200			{object}	domain.Staff
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/staff/{staff_id} [put]
func (app *application) updateStaffHandler(w http.ResponseWriter, r *http.Request) {
	shop, staffID, ok := app.shopAndStaffID(w, r)
	if !ok {
		return
	}

	var req UpdateStaffRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	staff := domain.Staff{
		ID:       staffID,
		Shop:     shop,
		Fullname: req.Fullname,
		Email:    req.Email,
		Phone:    req.Phone,
		Active:   req.Active,
	}

	if err := app.staffService.Update(r.Context(), &staff); err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, staff); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteStaffHandler godoc
//
//	@Summary		Delete staff member
//	@Description	Removes the staff member and all their availability windows
//	@Tags			staff
//	@Produce		json
//	@Param			shop		query		string	true	"Shop domain"
//	@Param			staff_id	path		string	true	"Staff ID"
//	@Success		200			{object}	map[string]interface{}
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/staff/{staff_id} [delete]
func (app *application) deleteStaffHandler(w http.ResponseWriter, r *http.Request) {
	shop, staffID, ok := app.shopAndStaffID(w, r)
	if !ok {
		return
	}

	if err := app.staffService.Delete(r.Context(), shop, staffID); err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	response := map[string]interface{}{
		"success": true,
	}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) shopAndStaffID(w http.ResponseWriter, r *http.Request) (string, primitive.ObjectID, bool) {
	shop := r.URL.Query().Get("shop")
	if shop == "" {
		app.badRequestResponse(w, r, ErrMissingShop)
		return "", primitive.NilObjectID, false
	}

	staffID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "staff_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return "", primitive.NilObjectID, false
	}

	return shop, staffID, true
}
