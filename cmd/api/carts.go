package main

import (
	"net/http"
	"time"

	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateCartRequest struct {
	Shop  string    `json:"shop" validate:"required"`
	Staff string    `json:"staff" validate:"required"`
	Start time.Time `json:"start" validate:"required"`
	End   time.Time `json:"end" validate:"required"`
}

// createCartHandler godoc
//
//	@Summary		Create cart hold
//	@Description	Reserves a staff time window while the customer checks out; expires on its own
//	@Tags			carts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		CreateCartRequest	true	"Cart hold request"
//	@Success		201		{object}	domain.CartHold
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/carts [post]
func (app *application) createCartHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateCartRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	staffID, err := primitive.ObjectIDFromHex(req.Staff)
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return
	}

	hold := domain.CartHold{
		Shop:  req.Shop,
		Staff: staffID,
		Start: req.Start,
		End:   req.End,
	}

	if err := app.carts.Create(r.Context(), &hold, app.config.cartTTL); err != nil {
		app.internalServerError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, hold); err != nil {
		app.internalServerError(w, r, err)
	}
}
