package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/facility-booking/internal/booking"
	"github.com/iliyamo/facility-booking/internal/model"
)

type fakeService struct {
	bookErr error
	listErr error
	items   []model.Reservation

	gotReq booking.Request
	gotFac string
	gotDay *time.Time
}

func (f *fakeService) Book(_ context.Context, req booking.Request) (*model.Reservation, error) {
	f.gotReq = req
	if f.bookErr != nil {
		return nil, f.bookErr
	}
	return &model.Reservation{ID: "3f1c2a9e-0000-4000-8000-000000000001", FacilityID: req.FacilityID}, nil
}

func (f *fakeService) List(_ context.Context, facilityID string, day *time.Time) ([]model.Reservation, error) {
	f.gotFac, f.gotDay = facilityID, day
	return f.items, f.listErr
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewRequestValidator()
	return e
}

func postReservation(t *testing.T, svc ReservationService, body string) (*httptest.ResponseRecorder, BookingResult) {
	t.Helper()
	e := newEcho()
	req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	require.NoError(t, NewReservationHandler(svc).CreateReservation(e.NewContext(req, rec)))
	var out BookingResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return rec, out
}

const validBody = `{"company_id":"c-1","facility_id":"f-1","start_time":"2025-03-10T10:00:00","end_time":"2025-03-10T10:30:00","attendees":6}`

func TestCreateReservationSuccess(t *testing.T) {
	svc := &fakeService{}
	rec, out := postReservation(t, svc, validBody)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3f1c2a9e-0000-4000-8000-000000000001", out.ReservationID)
	assert.Equal(t, "Reservation created successfully", out.Message)
	assert.Empty(t, out.Reason)

	assert.Equal(t, "c-1", svc.gotReq.CompanyID)
	assert.Equal(t, time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC), svc.gotReq.StartTime)
	assert.Equal(t, 6, svc.gotReq.Attendees)
}

func TestCreateReservationOffsetConvertedToUTC(t *testing.T) {
	svc := &fakeService{}
	body := `{"company_id":"c-1","facility_id":"f-1","start_time":"2025-03-10T12:00:00+02:00","end_time":"2025-03-10T12:30:00+02:00","attendees":1}`
	rec, _ := postReservation(t, svc, body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC), svc.gotReq.StartTime)
}

func TestCreateReservationBadRequest(t *testing.T) {
	cases := map[string]string{
		"malformed json":      `{"company_id":`,
		"missing company":     `{"facility_id":"f-1","start_time":"2025-03-10T10:00:00","end_time":"2025-03-10T10:30:00","attendees":1}`,
		"zero attendees":      `{"company_id":"c-1","facility_id":"f-1","start_time":"2025-03-10T10:00:00","end_time":"2025-03-10T10:30:00","attendees":0}`,
		"bad start":           `{"company_id":"c-1","facility_id":"f-1","start_time":"tomorrow","end_time":"2025-03-10T10:30:00","attendees":1}`,
		"bad end":             `{"company_id":"c-1","facility_id":"f-1","start_time":"2025-03-10T10:00:00","end_time":"10:30","attendees":1}`,
		"attendees too large": `{"company_id":"c-1","facility_id":"f-1","start_time":"2025-03-10T10:00:00","end_time":"2025-03-10T10:30:00","attendees":5000000000}`,
		"year 1 start":        `{"company_id":"c-1","facility_id":"f-1","start_time":"0001-01-01T10:00:00","end_time":"2025-03-10T10:30:00","attendees":1}`,
		"year 999 end":        `{"company_id":"c-1","facility_id":"f-1","start_time":"2025-03-10T10:00:00","end_time":"0999-12-31T10:30:00","attendees":1}`,
		"attendees string":    `{"company_id":"c-1","facility_id":"f-1","start_time":"2025-03-10T10:00:00","end_time":"2025-03-10T10:30:00","attendees":"six"}`,
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			svc := &fakeService{}
			rec, out := postReservation(t, svc, body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Error", out.ReservationID)
			assert.NotEmpty(t, out.Message)
			assert.Empty(t, svc.gotReq.FacilityID, "service must not be called")
		})
	}
}

func TestCreateReservationValidatorMessage(t *testing.T) {
	body := `{"facility_id":"f-1","start_time":"2025-03-10T10:00:00","end_time":"2025-03-10T10:30:00","attendees":0}`
	_, out := postReservation(t, &fakeService{}, body)
	assert.Contains(t, out.Message, "company_id is required")
	assert.Contains(t, out.Message, "attendees must be greater than 0")

	body = `{"company_id":"c-1","facility_id":"f-1","start_time":"2025-03-10T10:00:00","end_time":"2025-03-10T10:30:00","attendees":4294967296}`
	_, out = postReservation(t, &fakeService{}, body)
	assert.Contains(t, out.Message, "attendees must be at most 4294967295")

	body = `{"company_id":"c-1","facility_id":"f-1","start_time":"2025-03-10T10:00:00","end_time":"2025-03-10T10:30:00","attendees":4294967295}`
	rec, _ := postReservation(t, &fakeService{}, body)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreateReservationRejections(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		reason string
	}{
		{"ordering", &booking.Rejection{Reason: booking.ReasonOrdering}, http.StatusUnprocessableEntity, "start not before end"},
		{"granularity", &booking.Rejection{Reason: booking.ReasonGranularity}, http.StatusUnprocessableEntity, "non-5-minute granularity"},
		{"attendees", &booking.Rejection{Reason: booking.ReasonAttendees}, http.StatusUnprocessableEntity, "attendees must be positive"},
		{"unknown facility", booking.ErrFacilityNotFound, http.StatusNotFound, ""},
		{"unknown company", booking.ErrCompanyNotFound, http.StatusNotFound, ""},
		{"storage", errors.Join(booking.ErrStorage, errors.New("deadlock")), http.StatusInternalServerError, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, out := postReservation(t, &fakeService{bookErr: tc.err}, validBody)
			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, "Error", out.ReservationID)
			assert.Equal(t, tc.reason, out.Reason)
			assert.Empty(t, out.Conflicts)
		})
	}
}

func TestCreateReservationOverlap(t *testing.T) {
	rej := &booking.Rejection{
		Reason:    booking.ReasonOverlap,
		Conflicts: []model.Reservation{{ID: "r-1"}, {ID: "r-2"}},
	}
	rec, out := postReservation(t, &fakeService{bookErr: rej}, validBody)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Error", out.ReservationID)
	assert.Equal(t, "overlap", out.Reason)
	assert.Equal(t, []string{"r-1", "r-2"}, out.Conflicts)
}

func listReservations(t *testing.T, svc ReservationService, query string) *httptest.ResponseRecorder {
	t.Helper()
	e := newEcho()
	req := httptest.NewRequest(http.MethodGet, "/reservations?"+query, nil)
	rec := httptest.NewRecorder()
	require.NoError(t, NewReservationHandler(svc).ListReservations(e.NewContext(req, rec)))
	return rec
}

func TestListReservations(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	svc := &fakeService{items: []model.Reservation{{
		ID: "r-1", FacilityID: "f-1", CompanyID: "c-1",
		StartTime: start, EndTime: start.Add(time.Hour), Attendees: 4,
		CreatedAt: start, UpdatedAt: start,
	}}}

	rec := listReservations(t, svc, "facility_id=f-1&date=2025-03-10")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "f-1", svc.gotFac)
	require.NotNil(t, svc.gotDay)
	assert.Equal(t, 10, svc.gotDay.Day())

	var out []ReservationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out, 1)
	assert.Equal(t, "2025-03-10T09:00:00", out[0].StartTime)
	assert.Equal(t, "2025-03-10T10:00:00", out[0].EndTime)
	assert.Equal(t, 4, out[0].Attendees)
}

func TestListReservationsEmptyIsArray(t *testing.T) {
	rec := listReservations(t, &fakeService{}, "facility_id=f-1")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestListReservationsErrors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, listReservations(t, &fakeService{}, "").Code)
	assert.Equal(t, http.StatusBadRequest, listReservations(t, &fakeService{}, "facility_id=f-1&date=10/03/2025").Code)
	assert.Equal(t, http.StatusInternalServerError,
		listReservations(t, &fakeService{listErr: booking.ErrQuery}, "facility_id=f-1").Code)
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2025, 3, 10, 10, 5, 0, 0, time.UTC)
	for _, in := range []string{"2025-03-10T10:05:00", "2025-03-10T10:05", "2025-03-10 10:05:00", "2025-03-10T10:05:00Z", "2025-03-10T11:05:00+01:00"} {
		got, err := parseTimestamp(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
		assert.Equal(t, time.UTC, got.Location(), in)
	}
	_, err := parseTimestamp("")
	assert.Error(t, err)
	_, err = parseTimestamp("0001-01-01T00:00:00")
	assert.ErrorContains(t, err, "outside years")
	_, err = parseTimestamp("1000-01-01T00:00:00+01:00")
	assert.ErrorContains(t, err, "outside years")

	edge, err := parseTimestamp("9999-12-31T23:55:00")
	require.NoError(t, err)
	assert.Equal(t, 9999, edge.Year())
	assert.Equal(t, "2025-03-10T10:05:00", formatTimestamp(want))
}
