package main

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/jamalsoueidan/book-appointment-app/internal/service"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const dateLayout = "2006-01-02"

// getAvailabilityHandler godoc
//
//	@Summary		Get availability
//	@Description	Date-bucketed bookable slots for a product, minus existing bookings and cart holds
//	@Tags			availability
//	@Produce		json
//	@Param			shop		query		string	true	"Shop domain"
//	@Param			product_id	query		int		true	"External product id"
//	@Param			start		query		string	true	"Range start (YYYY-MM-DD)"
//	@Param			end			query		string	true	"Range end (YYYY-MM-DD)"
//	@Param			staff		query		string	false	"Limit to one staff member"
//	@Success		200			{array}		availability.Day
//	@Failure		400			{object}	map[string]string
//	@Failure		404			{object}	map[string]string
//	@Failure		500			{object}	map[string]string
//	@Router			/availability [get]
func (app *application) getAvailabilityHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	shop := query.Get("shop")
	if shop == "" {
		app.badRequestResponse(w, r, ErrMissingShop)
		return
	}

	productID, err := strconv.ParseInt(query.Get("product_id"), 10, 64)
	if err != nil {
		app.badRequestResponse(w, r, errors.New("product_id is required"))
		return
	}

	start, err := time.Parse(dateLayout, query.Get("start"))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("start must be YYYY-MM-DD"))
		return
	}

	end, err := time.Parse(dateLayout, query.Get("end"))
	if err != nil {
		app.badRequestResponse(w, r, errors.New("end must be YYYY-MM-DD"))
		return
	}

	q := service.AvailabilityQuery{
		Shop:      shop,
		ProductID: productID,
		Start:     start,
		End:       end.Add(24*time.Hour - time.Second),
	}

	if staffParam := query.Get("staff"); staffParam != "" {
		staffID, err := primitive.ObjectIDFromHex(staffParam)
		if err != nil {
			app.badRequestResponse(w, r, ErrInvalidID)
			return
		}
		q.Staff = &staffID
	}

	days, err := app.availabilityService.Get(r.Context(), q)
	if err != nil {
		app.handleServiceError(w, r, err)
		return
	}

	if err := app.jsonRespone(w, http.StatusOK, days); err != nil {
		app.internalServerError(w, r, err)
	}
}
