package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/vehicle-rental/internal/repository"
)

// newBookingContext builds an authenticated Echo context carrying the
// given JSON body, the way the auth middleware would leave it.
func newBookingContext(body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint64(1))
	return c, rec
}

func TestCreateBookingMissingFields(t *testing.T) {
	h := NewBookingHandler(repository.NewBookingRepo(nil))
	c, rec := newBookingContext(`{"vehicle_id": 3}`)
	if err := h.CreateBooking(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var resp struct {
		Missing []string `json:"missing"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	want := []string{"start_date", "end_date", "phone_number", "address"}
	if len(resp.Missing) != len(want) {
		t.Fatalf("expected %v missing, got %v", want, resp.Missing)
	}
	for i, f := range want {
		if resp.Missing[i] != f {
			t.Fatalf("expected missing[%d]=%s, got %s", i, f, resp.Missing[i])
		}
	}
}

func TestCreateBookingBadDates(t *testing.T) {
	h := NewBookingHandler(repository.NewBookingRepo(nil))

	cases := []struct {
		name  string
		start string
		end   string
	}{
		{"malformed start", "29-08-2026", "2026-09-02"},
		{"malformed end", "2026-08-29", "tomorrow"},
		{"end before start", "2026-09-02", "2026-08-29"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := `{"vehicle_id":3,"start_date":"` + tc.start + `","end_date":"` + tc.end +
				`","phone_number":"555-0100","address":"12 Main St"}`
			c, rec := newBookingContext(body)
			if err := h.CreateBooking(c); err != nil {
				t.Fatalf("handler returned error: %v", err)
			}
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestCreateBookingRequiresAuth(t *testing.T) {
	h := NewBookingHandler(repository.NewBookingRepo(nil))
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.CreateBooking(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
