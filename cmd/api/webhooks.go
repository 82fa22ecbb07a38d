package main

import (
	"context"
	"net/http"

	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
)

// orderCreateHandler godoc
//
//	@Summary		Order created webhook
//	@Description	Reconciles a created order into the booking ledger and fires notifications
//	@Tags			webhooks
//	@Accept			json
//	@Produce		json
//	@Param			shop	query		string			true	"Shop domain"
//	@Param			order	body		domain.Order	true	"Order payload"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/webhooks/orders/create [post]
func (app *application) orderCreateHandler(w http.ResponseWriter, r *http.Request) {
	app.orderModifyHandler(w, r, app.bookingService.Create)
}

// orderUpdateHandler godoc
//
//	@Summary		Order updated webhook
//	@Description	Reconciles an updated order into the booking ledger
//	@Tags			webhooks
//	@Accept			json
//	@Produce		json
//	@Param			shop	query		string			true	"Shop domain"
//	@Param			order	body		domain.Order	true	"Order payload"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/webhooks/orders/update [post]
func (app *application) orderUpdateHandler(w http.ResponseWriter, r *http.Request) {
	app.orderModifyHandler(w, r, app.bookingService.Update)
}

// orderCancelHandler godoc
//
//	@Summary		Order cancelled webhook
//	@Description	Cancels every booking of the order
//	@Tags			webhooks
//	@Accept			json
//	@Produce		json
//	@Param			shop	query		string			true	"Shop domain"
//	@Param			order	body		domain.Order	true	"Order payload"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		400		{object}	map[string]string
//	@Failure		500		{object}	map[string]string
//	@Router			/webhooks/orders/cancel [post]
func (app *application) orderCancelHandler(w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")
	if shop == "" {
		app.badRequestResponse(w, r, ErrMissingShop)
		return
	}

	var order domain.Order
	if err := readJson(w, r, &order); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.bookingService.Cancel(r.Context(), shop, order.ID); err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	app.respondReconciled(w, r)
}

func (app *application) orderModifyHandler(w http.ResponseWriter, r *http.Request, reconcile func(ctx context.Context, shop string, order domain.Order) error) {
	shop := r.URL.Query().Get("shop")
	if shop == "" {
		app.badRequestResponse(w, r, ErrMissingShop)
		return
	}

	var order domain.Order
	if err := readJson(w, r, &order); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := reconcile(r.Context(), shop, order); err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	app.respondReconciled(w, r)
}

func (app *application) respondReconciled(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"success": true,
	}

	if err := app.jsonRespone(w, http.StatusOK, response); err != nil {
		app.internalServerError(w, r, err)
	}
}
