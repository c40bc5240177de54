package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/facility-booking/internal/booking"
	"github.com/iliyamo/facility-booking/internal/model"
)

// rejectedID is the reservation_id sentinel returned alongside every
// failed booking so clients that only inspect the body keep working.
const rejectedID = "Error"

// ReservationService is the booking behaviour the handler needs.
type ReservationService interface {
	Book(ctx context.Context, req booking.Request) (*model.Reservation, error)
	List(ctx context.Context, facilityID string, day *time.Time) ([]model.Reservation, error)
}

// ReservationHandler serves /reservations.
type ReservationHandler struct {
	Service ReservationService
}

// NewReservationHandler constructs a ReservationHandler and panics if svc is nil.
func NewReservationHandler(svc ReservationService) *ReservationHandler {
	if svc == nil {
		panic("nil service passed to NewReservationHandler")
	}
	return &ReservationHandler{Service: svc}
}

type reservationRequest struct {
	CompanyID  string `json:"company_id" validate:"required"`
	FacilityID string `json:"facility_id" validate:"required"`
	StartTime  string `json:"start_time" validate:"required"`
	EndTime    string `json:"end_time" validate:"required"`
	Attendees  int    `json:"attendees" validate:"gt=0,lte=4294967295"`
}

// ReservationResponse is the JSON shape of a persisted reservation.
type ReservationResponse struct {
	ReservationID string `json:"reservation_id"`
	FacilityID    string `json:"facility_id"`
	CompanyID     string `json:"company_id"`
	StartTime     string `json:"start_time"`
	EndTime       string `json:"end_time"`
	Attendees     int    `json:"attendees"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

func toReservationResponse(r model.Reservation) ReservationResponse {
	return ReservationResponse{
		ReservationID: r.ID,
		FacilityID:    r.FacilityID,
		CompanyID:     r.CompanyID,
		StartTime:     formatTimestamp(r.StartTime),
		EndTime:       formatTimestamp(r.EndTime),
		Attendees:     r.Attendees,
		CreatedAt:     formatTimestamp(r.CreatedAt),
		UpdatedAt:     formatTimestamp(r.UpdatedAt),
	}
}

// BookingResult is the body of every POST /reservations response.
type BookingResult struct {
	ReservationID string   `json:"reservation_id"`
	Message       string   `json:"message"`
	Reason        string   `json:"reason,omitempty"`
	Conflicts     []string `json:"conflicts,omitempty"`
}

func rejected(c echo.Context, status int, msg, reason string) error {
	return c.JSON(status, BookingResult{ReservationID: rejectedID, Message: msg, Reason: reason})
}

// CreateReservation handles POST /reservations.
//
// Status codes: 200 on success; 400 for a malformed body; 422 when the
// window is mis-ordered or off the 5-minute grid; 409 when it overlaps an
// existing reservation; 404 for an unknown facility or company; 500 when
// the datastore failed and nothing was written.
func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	var body reservationRequest
	if err := c.Bind(&body); err != nil {
		return rejected(c, http.StatusBadRequest, "invalid request body", "")
	}
	if err := c.Validate(&body); err != nil {
		return rejected(c, http.StatusBadRequest, err.Error(), "")
	}
	start, err := parseTimestamp(body.StartTime)
	if err != nil {
		return rejected(c, http.StatusBadRequest, "start_time: "+err.Error(), "")
	}
	end, err := parseTimestamp(body.EndTime)
	if err != nil {
		return rejected(c, http.StatusBadRequest, "end_time: "+err.Error(), "")
	}

	res, err := h.Service.Book(c.Request().Context(), booking.Request{
		CompanyID:  strings.TrimSpace(body.CompanyID),
		FacilityID: strings.TrimSpace(body.FacilityID),
		StartTime:  start,
		EndTime:    end,
		Attendees:  body.Attendees,
	})
	if err == nil {
		return c.JSON(http.StatusOK, BookingResult{
			ReservationID: res.ID,
			Message:       "Reservation created successfully",
		})
	}

	var rej *booking.Rejection
	switch {
	case errors.As(err, &rej) && errors.Is(err, booking.ErrConflict):
		ids := make([]string, 0, len(rej.Conflicts))
		for _, r := range rej.Conflicts {
			ids = append(ids, r.ID)
		}
		return c.JSON(http.StatusConflict, BookingResult{
			ReservationID: rejectedID,
			Message:       "The requested time overlaps an existing reservation",
			Reason:        string(rej.Reason),
			Conflicts:     ids,
		})
	case errors.As(err, &rej):
		return rejected(c, http.StatusUnprocessableEntity, validationMessage(rej.Reason), string(rej.Reason))
	case errors.Is(err, booking.ErrFacilityNotFound):
		return rejected(c, http.StatusNotFound, "facility not found", "")
	case errors.Is(err, booking.ErrCompanyNotFound):
		return rejected(c, http.StatusNotFound, "company not found", "")
	default:
		return rejected(c, http.StatusInternalServerError, "failed to create reservation", "")
	}
}

func validationMessage(r booking.Reason) string {
	switch r {
	case booking.ReasonOrdering:
		return "Start time must be before end time"
	case booking.ReasonGranularity:
		return "Start and end times must be on a 5-minute boundary"
	case booking.ReasonAttendees:
		return "Attendees must be a positive number"
	}
	return string(r)
}

// ListReservations handles GET /reservations?facility_id=&date=YYYY-MM-DD.
// facility_id is required; date limits the result to reservations starting
// on that calendar day.
func (h *ReservationHandler) ListReservations(c echo.Context) error {
	facilityID := strings.TrimSpace(c.QueryParam("facility_id"))
	if facilityID == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "facility_id is required"})
	}
	var day *time.Time
	if raw := strings.TrimSpace(c.QueryParam("date")); raw != "" {
		d, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
		}
		day = &d
	}
	items, err := h.Service.List(c.Request().Context(), facilityID, day)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to load reservations"})
	}
	out := make([]ReservationResponse, 0, len(items))
	for _, r := range items {
		out = append(out, toReservationResponse(r))
	}
	return c.JSON(http.StatusOK, out)
}
