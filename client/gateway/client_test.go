package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestListNormalizesEnvelope(t *testing.T) {
	var gotQuery map[string]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{}
		for key := range r.URL.Query() {
			gotQuery[key] = r.URL.Query().Get(key)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"success": true,
			"message": "Appointments retrieved successfully",
			"data": [
				{
					"id": "6f1e7b38-3ce2-4a02-9c8f-24d7e5a61c01",
					"date_time": "2025-06-10T09:00:00Z",
					"status": "PENDING",
					"total_amount": "110.00",
					"patient": {"id": "a0e7b38f-0000-4a02-9c8f-24d7e5a61c02", "name": "Ana García"},
					"dentist": {"id": "b1e7b38f-0000-4a02-9c8f-24d7e5a61c03", "name": "Dr. Smith"},
					"line_items": [
						{"id": "c2e7b38f-0000-4a02-9c8f-24d7e5a61c04", "service_id": "d3e7b38f-0000-4a02-9c8f-24d7e5a61c05", "service_name": "Root Canal", "quantity": 1, "price_applied": "110.00", "paid": false}
					]
				}
			],
			"meta": {"page": 1, "limit": 10, "total": 37, "total_pages": 4}
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client())
	start := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.Local)
	end := time.Date(2025, time.June, 10, 23, 59, 59, 999000000, time.Local)
	status := StatusPending

	page, err := client.ListAppointments(context.Background(), Query{
		Page:      1,
		PageSize:  10,
		SortField: "dateTime",
		SortDesc:  true,
		Status:    &status,
		StartDate: &start,
		EndDate:   &end,
	})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	if page.TotalCount != 37 {
		t.Fatalf("totalCount = %d, want 37 from meta", page.TotalCount)
	}
	if len(page.Items) != 1 {
		t.Fatalf("items = %d, want 1", len(page.Items))
	}

	got := page.Items[0]
	if got.Patient.Name != "Ana García" || got.Dentist.Name != "Dr. Smith" {
		t.Fatalf("display names not normalized: %+v", got)
	}
	if got.LineItems[0].Service.Name != "Root Canal" {
		t.Fatal("service name snapshot not mapped")
	}

	// Local date-times, no offset, whole seconds; end of day at .999
	// truncates to :59
	if gotQuery["start_date"] != "2025-06-10T00:00:00" {
		t.Fatalf("start_date = %q", gotQuery["start_date"])
	}
	if gotQuery["end_date"] != "2025-06-10T23:59:59" {
		t.Fatalf("end_date = %q", gotQuery["end_date"])
	}
	if gotQuery["sort"] != "dateTime,desc" {
		t.Fatalf("sort = %q", gotQuery["sort"])
	}
	if gotQuery["status"] != "PENDING" {
		t.Fatalf("status = %q", gotQuery["status"])
	}
}

func TestListWithoutMetaFallsBackToItemCount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": true, "data": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client())
	page, err := client.ListAppointments(context.Background(), Query{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.TotalCount != 0 || len(page.Items) != 0 {
		t.Fatalf("got %d items / %d total, want empty page", len(page.Items), page.TotalCount)
	}
}

func TestErrorKindMapping(t *testing.T) {
	tests := []struct {
		statusCode int
		want       ErrorKind
	}{
		{http.StatusBadRequest, ErrValidation},
		{http.StatusUnauthorized, ErrAuthorization},
		{http.StatusForbidden, ErrAuthorization},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrValidation},
		{http.StatusUnprocessableEntity, ErrInvalidTransition},
		{http.StatusInternalServerError, ErrInternal},
	}

	for _, tt := range tests {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.statusCode)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"success": false,
				"message": "nope",
			})
		}))

		client := NewClient(server.URL, server.Client())
		_, err := client.SettleAppointment(context.Background(), uuid.New())
		server.Close()

		if err == nil {
			t.Fatalf("status %d: expected error", tt.statusCode)
		}
		if KindOf(err) != tt.want {
			t.Fatalf("status %d: kind = %s, want %s", tt.statusCode, KindOf(err), tt.want)
		}
	}
}

func TestNetworkFailureMapsToNetworkKind(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client := NewClient(server.URL, nil)
	_, err := client.ListAppointments(context.Background(), Query{Page: 1})
	if err == nil {
		t.Fatal("expected transport error")
	}
	if KindOf(err) != ErrNetwork {
		t.Fatalf("kind = %s, want %s", KindOf(err), ErrNetwork)
	}
}

func TestCreateSendsLocalDateTime(t *testing.T) {
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		w.Write([]byte(`{"success": true, "data": {"id": "6f1e7b38-3ce2-4a02-9c8f-24d7e5a61c01", "status": "PENDING", "total_amount": "50.00", "patient": {"name": "Ana"}, "dentist": {"name": "Dr. B"}, "line_items": []}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client())
	dateTime := time.Date(2025, time.June, 10, 9, 30, 0, 123456789, time.Local)

	appointment, err := client.CreateAppointment(context.Background(), dateTime, uuid.New(), uuid.New(), []NewLineItem{
		{ServiceID: uuid.New(), Quantity: 1},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if appointment.Status != StatusPending {
		t.Fatalf("status = %s, want PENDING", appointment.Status)
	}

	if gotBody["date_time"] != "2025-06-10T09:30:00" {
		t.Fatalf("date_time = %q, want local whole-second format", gotBody["date_time"])
	}
}

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success": true, "data": []}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, server.Client())
	client.SetToken("token-abc")

	if _, err := client.ListAppointments(context.Background(), Query{Page: 1}); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if gotAuth != "Bearer token-abc" {
		t.Fatalf("Authorization = %q", gotAuth)
	}
}
