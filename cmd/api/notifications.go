package main

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/jamalsoueidan/book-appointment-app/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// getNotificationsHandler godoc
//
//	@Summary		List a conversation
//	@Description	Returns the messages for one line item plus the order-level ones, oldest first
//	@Tags			notifications
//	@Produce		json
//	@Param			shop			query		string	true	"Shop domain"
//	@Param			order_id		query		int		true	"Order ID"
//	@Param			line_item_id	query		int		true	"Line item ID"
//	@Success		200				{array}		domain.Notification
//	@Failure		400				{object}	map[string]string
//	@Failure		500				{object}	map[string]string
//	@Router			/notifications [get]
func (app *application) getNotificationsHandler(w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")
	if shop == "" {
		app.badRequestResponse(w, r, ErrMissingShop)
		return
	}

	orderID, err := strconv.ParseInt(r.URL.Query().Get("order_id"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	lineItemID, err := strconv.ParseInt(r.URL.Query().Get("line_item_id"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	notifications, err := app.notificationService.Get(r.Context(), shop, orderID, lineItemID)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, notifications); err != nil {
		app.internalServerError(w, r, err)
	}
}

type SendNotificationRequest struct {
	Shop       string `json:"shop" validate:"required"`
	OrderID    int64  `json:"order_id" validate:"required"`
	LineItemID int64  `json:"line_item_id" validate:"required"`
	Message    string `json:"message" validate:"required,max=459"`
	To         string `json:"to" validate:"required,oneof=customer staff"`
}

// sendNotificationHandler godoc
//
//	@Summary		Send a custom message
//	@Description	Sends a free-form message to the customer or staff member of a booking
//	@Tags			notifications
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SendNotificationRequest	true	"Message request"
//	@Success		201		{object}	domain.Notification
//	@Failure		400		{object}	map[string]string
//	@Failure		404		{object}	map[string]string
//	@Failure		429		{object}	map[string]string
//	@Failure		502		{object}	map[string]string
//	@Router			/notifications [post]
func (app *application) sendNotificationHandler(w http.ResponseWriter, r *http.Request) {
	var req SendNotificationRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	notification, err := app.notificationService.SendCustom(r.Context(), service.SendCustomInput{
		Shop:       req.Shop,
		OrderID:    req.OrderID,
		LineItemID: req.LineItemID,
		Message:    req.Message,
		To:         req.To,
	})
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, notification); err != nil {
		app.internalServerError(w, r, err)
	}
}

// resendNotificationHandler godoc
//
//	@Summary		Resend a message
//	@Description	Re-sends an earlier message, throttled on the original conversation key
//	@Tags			notifications
//	@Produce		json
//	@Param			shop			query		string	true	"Shop domain"
//	@Param			notification_id	path		string	true	"Notification ID"
//	@Success		201				{object}	domain.Notification
//	@Failure		400				{object}	map[string]string
//	@Failure		404				{object}	map[string]string
//	@Failure		429				{object}	map[string]string
//	@Failure		502				{object}	map[string]string
//	@Router			/notifications/{notification_id}/resend [post]
func (app *application) resendNotificationHandler(w http.ResponseWriter, r *http.Request) {
	shop, notificationID, ok := app.shopAndNotificationID(w, r)
	if !ok {
		return
	}

	notification, err := app.notificationService.Resend(r.Context(), shop, notificationID)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, notification); err != nil {
		app.internalServerError(w, r, err)
	}
}

// cancelNotificationHandler godoc
//
//	@Summary		Cancel a scheduled message
//	@Description	Marks the notification cancelled and deletes the provider batch when one exists
//	@Tags			notifications
//	@Produce		json
//	@Param			shop			query		string	true	"Shop domain"
//	@Param			notification_id	path		string	true	"Notification ID"
//	@Success		200				{object}	domain.Notification
//	@Failure		400				{object}	map[string]string
//	@Failure		404				{object}	map[string]string
//	@Router			/notifications/{notification_id} [delete]
func (app *application) cancelNotificationHandler(w http.ResponseWriter, r *http.Request) {
	shop, notificationID, ok := app.shopAndNotificationID(w, r)
	if !ok {
		return
	}

	notification, err := app.notificationService.Cancel(r.Context(), shop, notificationID)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, notification); err != nil {
		app.internalServerError(w, r, err)
	}
}

func (app *application) shopAndNotificationID(w http.ResponseWriter, r *http.Request) (string, primitive.ObjectID, bool) {
	shop := r.URL.Query().Get("shop")
	if shop == "" {
		app.badRequestResponse(w, r, ErrMissingShop)
		return "", primitive.NilObjectID, false
	}

	notificationID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "notification_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return "", primitive.NilObjectID, false
	}

	return shop, notificationID, true
}
