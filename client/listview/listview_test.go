package listview

import (
	"context"
	"testing"
	"time"

	"dental-clinic-api/client/gateway"

	"github.com/google/uuid"
)

type fakeLister struct {
	pages []*gateway.Page
	errs  []error
	calls int
}

func (f *fakeLister) ListAppointments(ctx context.Context, query gateway.Query) (*gateway.Page, error) {
	i := f.calls
	f.calls++
	var page *gateway.Page
	var err error
	if i < len(f.pages) {
		page = f.pages[i]
	}
	if i < len(f.errs) {
		err = f.errs[i]
	}
	return page, err
}

func appt(patient, dentist string) gateway.Appointment {
	return gateway.Appointment{
		ID:      uuid.New(),
		Patient: gateway.Ref{ID: uuid.New(), Name: patient},
		Dentist: gateway.Ref{ID: uuid.New(), Name: dentist},
	}
}

func pageOf(appointments ...gateway.Appointment) *gateway.Page {
	return &gateway.Page{Items: appointments, TotalCount: int64(len(appointments))}
}

func TestStaleResponsesDiscarded(t *testing.T) {
	c := NewController(nil)

	page1 := pageOf(appt("First", "Dr. A"))
	page2 := pageOf(appt("Second", "Dr. A"))
	page3 := pageOf(appt("Third", "Dr. A"))

	c.mu.Lock()
	tag1 := c.nextSeq()
	tag2 := c.nextSeq()
	tag3 := c.nextSeq()

	// Responses resolve out of order: 3, then 1, then 2
	if !c.apply(tag3, page3, nil) {
		t.Fatal("latest response must be applied")
	}
	if c.apply(tag1, page1, nil) {
		t.Fatal("superseded response 1 must be discarded")
	}
	if c.apply(tag2, page2, nil) {
		t.Fatal("superseded response 2 must be discarded")
	}
	c.mu.Unlock()

	master := c.Master()
	if len(master) != 1 || master[0].Patient.Name != "Third" {
		t.Fatalf("master reflects %+v, want only tag 3's result", master)
	}
}

func TestFetchFailureRetainsLastKnownGood(t *testing.T) {
	lister := &fakeLister{
		pages: []*gateway.Page{pageOf(appt("Keeper", "Dr. A")), nil},
		errs:  []error{nil, &gateway.Error{Kind: gateway.ErrNetwork, Message: "down"}},
	}
	c := NewController(lister)

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("first refresh failed: %v", err)
	}
	if err := c.Refresh(context.Background()); err == nil {
		t.Fatal("second refresh should report the failure")
	}

	master := c.Master()
	if len(master) != 1 || master[0].Patient.Name != "Keeper" {
		t.Fatal("failed fetch must keep the last-known-good master set")
	}
	if c.LastError() == nil {
		t.Fatal("failure must be reported alongside the retained data")
	}

	// A later success clears the reported failure
	lister.pages = append(lister.pages, pageOf(appt("Fresh", "Dr. B")))
	lister.errs = append(lister.errs, nil)
	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("third refresh failed: %v", err)
	}
	if c.LastError() != nil {
		t.Fatal("successful fetch must clear the reported failure")
	}
}

func TestTextFilterNarrowsDisplayedOnly(t *testing.T) {
	lister := &fakeLister{pages: []*gateway.Page{pageOf(
		appt("Ana García", "Dr. Smith"),
		appt("Luis GARCÍA", "Dr. Smith"),
		appt("Marta López", "Dr. Smith"),
		appt("John Doe", "Dr. Smith"),
		appt("Claire Dunn", "Dr. Smith"),
	)}}
	c := NewController(lister)

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	c.SetTextQuery("garcía")

	displayed := c.Displayed()
	if len(displayed) != 2 {
		t.Fatalf("displayed %d appointments, want 2", len(displayed))
	}
	if len(c.Master()) != 5 {
		t.Fatalf("master shrank to %d, must stay 5", len(c.Master()))
	}

	// No gateway request for a client-only filter
	if lister.calls != 1 {
		t.Fatalf("text filter triggered %d fetches, want 1 total", lister.calls)
	}
}

func TestTextFilterMatchesDentistName(t *testing.T) {
	lister := &fakeLister{pages: []*gateway.Page{pageOf(
		appt("Ana López", "Dr. García"),
		appt("John Doe", "Dr. Smith"),
	)}}
	c := NewController(lister)

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}

	c.SetTextQuery("garcía")
	if len(c.Displayed()) != 1 {
		t.Fatalf("displayed %d, want 1 dentist-name match", len(c.Displayed()))
	}

	c.SetTextQuery("")
	if len(c.Displayed()) != 2 {
		t.Fatal("clearing the query must restore the full master set")
	}
}

func TestStartOnlyBoundDerivesSameDayEnd(t *testing.T) {
	c := NewController(nil)
	day := time.Date(2025, time.June, 10, 0, 0, 0, 0, time.Local)

	c.SetStartDate(day)
	c.mu.Lock()
	c.endDate = nil
	c.mu.Unlock()

	start, end := c.DateRange()
	if start == nil || end == nil {
		t.Fatal("both bounds must resolve")
	}
	wantEnd := time.Date(2025, time.June, 10, 23, 59, 59, 999000000, time.Local)
	if !end.Equal(wantEnd) {
		t.Fatalf("end = %s, want %s", end, wantEnd)
	}
}

func TestConflictingStartClearsEnd(t *testing.T) {
	c := NewController(nil)

	c.SetEndDate(time.Date(2025, time.June, 10, 0, 0, 0, 0, time.Local))
	c.SetStartDate(time.Date(2025, time.June, 15, 0, 0, 0, 0, time.Local))

	c.mu.Lock()
	cleared := c.endDate == nil
	c.mu.Unlock()
	if !cleared {
		t.Fatal("end bound earlier than the new start must be cleared")
	}

	// The derived range stays on the start's calendar day
	start, end := c.DateRange()
	if start.Day() != 15 || end.Day() != 15 {
		t.Fatalf("derived range %s .. %s, want both on day 15", start, end)
	}
}

func TestConflictingEndClearsStart(t *testing.T) {
	c := NewController(nil)

	c.SetStartDate(time.Date(2025, time.June, 15, 0, 0, 0, 0, time.Local))
	c.SetEndDate(time.Date(2025, time.June, 10, 0, 0, 0, 0, time.Local))

	c.mu.Lock()
	cleared := c.startDate == nil
	c.mu.Unlock()
	if !cleared {
		t.Fatal("start bound later than the new end must be cleared")
	}
}

func TestDefaultsToToday(t *testing.T) {
	c := NewController(nil)

	start, end := c.DateRange()
	now := time.Now()
	if start.Year() != now.Year() || start.YearDay() != now.YearDay() {
		t.Fatalf("default start %s is not today", start)
	}
	if end.Hour() != 23 || end.Minute() != 59 || end.Second() != 59 {
		t.Fatalf("default end %s is not end of day", end)
	}
}

func TestClearFiltersKeepsTextQuery(t *testing.T) {
	status := gateway.StatusPending
	dentistID := uuid.New()
	c := NewController(nil)

	c.SetStatusFilter(&status)
	c.SetDentistFilter(&dentistID)
	c.SetPage(4)
	c.SetTextQuery("garcía")
	c.SetStartDate(time.Date(2025, time.January, 2, 0, 0, 0, 0, time.Local))

	c.ClearFilters()

	c.mu.Lock()
	query := c.buildQuery()
	text := c.textQuery
	c.mu.Unlock()

	if query.Status != nil || query.DentistID != nil {
		t.Fatal("status and dentist filters must clear")
	}
	if query.Page != 1 {
		t.Fatalf("page = %d, want reset to 1", query.Page)
	}
	now := time.Now()
	if query.StartDate.YearDay() != now.YearDay() {
		t.Fatalf("start date %s did not reset to today", query.StartDate)
	}
	if text != "garcía" {
		t.Fatal("free-text query must survive a filter reset")
	}
}

func TestFilterChangesResetPagination(t *testing.T) {
	c := NewController(nil)
	status := gateway.StatusCompleted

	c.SetPage(7)
	c.SetStatusFilter(&status)

	c.mu.Lock()
	page := c.page
	c.mu.Unlock()
	if page != 1 {
		t.Fatalf("page = %d, want 1 after a filter change", page)
	}
}

func TestRefreshReappliesTextFilterToNewMaster(t *testing.T) {
	lister := &fakeLister{pages: []*gateway.Page{
		pageOf(appt("Ana García", "Dr. Smith"), appt("John Doe", "Dr. Smith")),
		pageOf(appt("Luis García", "Dr. Smith"), appt("Pedro García", "Dr. Smith"), appt("Claire Dunn", "Dr. Smith")),
	}}
	c := NewController(lister)

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	c.SetTextQuery("garcía")
	if len(c.Displayed()) != 1 {
		t.Fatalf("displayed %d, want 1", len(c.Displayed()))
	}

	if err := c.Refresh(context.Background()); err != nil {
		t.Fatal(err)
	}
	if len(c.Displayed()) != 2 {
		t.Fatalf("displayed %d after refetch, want 2 matches in the new master", len(c.Displayed()))
	}
}
