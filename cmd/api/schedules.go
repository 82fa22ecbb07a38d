package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/jamalsoueidan/book-appointment-app/internal/domain"
	"github.com/jamalsoueidan/book-appointment-app/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CreateScheduleRequest struct {
	Start time.Time `json:"start" validate:"required"`
	End   time.Time `json:"end" validate:"required"`
	Tag   string    `json:"tag"`
	Weeks int       `json:"weeks" validate:"gte=0,lte=52"`
}

// createScheduleHandler godoc
//
//	@Summary		Create availability window
//	@Description	Creates a single window, or a weekly repeating group when weeks > 0
//	@Tags			schedules
//	@Accept			json
//	@Produce		json
//	@Param			shop		query		string					true	"Shop domain"
//	@Param			staff_id	path		string					true	"Staff ID"
//	@Param			request		body		CreateScheduleRequest	true	"Schedule request"
//	@Success		201			{array}		domain.Schedule
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/staff/{staff_id}/schedules [post]
func (app *application) createScheduleHandler(w http.ResponseWriter, r *http.Request) {
	shop, staffID, ok := app.shopAndStaffID(w, r)
	if !ok {
		return
	}

	var req CreateScheduleRequest
	if err := readJson(w, r, &req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := Validate.Struct(req); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	schedules, err := app.scheduleService.Create(r.Context(), service.CreateScheduleInput{
		Shop:  shop,
		Staff: staffID,
		Start: req.Start,
		End:   req.End,
		Tag:   req.Tag,
		Weeks: req.Weeks,
	})
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusCreated, schedules); err != nil {
		app.internalServerError(w, r, err)
	}
}

// updateScheduleHandler godoc
//
//	@Summary		Update availability window
//	@Tags			schedules
//	@Accept			json
//	@Produce		json
//	@Param			shop		query		string					true	"Shop domain"
//	@Param			schedule_id	path		string					true	"Schedule ID"
//	@Param			request		body		domain.SchedulePatch	true	"Fields to change"
//	@Success		200			{object}	domain.Schedule
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/schedules/{schedule_id} [put]
func (app *application) updateScheduleHandler(w http.ResponseWriter, r *http.Request) {
	shop, scheduleID, ok := app.shopAndScheduleID(w, r)
	if !ok {
		return
	}

	var patch domain.SchedulePatch
	if err := readJson(w, r, &patch); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	schedule, err := app.scheduleService.Update(r.Context(), shop, scheduleID, patch)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, schedule); err != nil {
		app.internalServerError(w, r, err)
	}
}

// deleteScheduleHandler godoc
//
//	@Summary		Delete availability window
//	@Tags			schedules
//	@Produce		json
//	@Param			shop		query		string	true	"Shop domain"
//	@Param			schedule_id	path		string	true	"Schedule ID"
//	@Success		200			{object}	map[string]interface{}
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/schedules/{schedule_id} [delete]
func (app *application) deleteScheduleHandler(w http.ResponseWriter, r *http.Request) {
	shop, scheduleID, ok := app.shopAndScheduleID(w, r)
	if !ok {
		return
	}

	if err := app.scheduleService.Delete(r.Context(), shop, scheduleID); err != nil {
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

// updateScheduleGroupHandler godoc
//
//	@Summary		Update a repeating group
//	@Description	Applies the patch to every window in the group
//	@Tags			schedules
//	@Accept			json
//	@Produce		json
//	@Param			shop		query		string					true	"Shop domain"
//	@Param			group_id	path		string					true	"Group ID"
//	@Param			request		body		domain.SchedulePatch	true	"Fields to change"
//	@Success		200			{object}	map[string]interface{}
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/schedules/group/{group_id} [put]
func (app *application) updateScheduleGroupHandler(w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")
	if shop == "" {
		app.badRequestResponse(w, r, ErrMissingShop)
		return
	}

	groupID := chi.URLParam(r, "group_id")

	var patch domain.SchedulePatch
	if err := readJson(w, r, &patch); err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	if err := app.scheduleService.UpdateGroup(r.Context(), shop, groupID, patch); err != nil {
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

// deleteScheduleGroupHandler godoc
//
//	@Summary		Delete a repeating group
//	@Tags			schedules
//	@Produce		json
//	@Param			shop		query		string	true	"Shop domain"
//	@Param			group_id	path		string	true	"Group ID"
//	@Success		200			{object}	map[string]interface{}
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Router			/schedules/group/{group_id} [delete]
func (app *application) deleteScheduleGroupHandler(w http.ResponseWriter, r *http.Request) {
	shop := r.URL.Query().Get("shop")
	if shop == "" {
		app.badRequestResponse(w, r, ErrMissingShop)
		return
	}

	groupID := chi.URLParam(r, "group_id")

	if err := app.scheduleService.DeleteGroup(r.Context(), shop, groupID); err != nil {
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

func (app *application) shopAndScheduleID(w http.ResponseWriter, r *http.Request) (string, primitive.ObjectID, bool) {
	shop := r.URL.Query().Get("shop")
	if shop == "" {
		app.badRequestResponse(w, r, ErrMissingShop)
		return "", primitive.NilObjectID, false
	}

	scheduleID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "schedule_id"))
	if err != nil {
		app.badRequestResponse(w, r, ErrInvalidID)
		return "", primitive.NilObjectID, false
	}

	return shop, scheduleID, true
}
