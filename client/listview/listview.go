// Package listview reconciles a server-paginated appointment listing
// with a client-only free-text filter. The master set is whatever the
// gateway last returned for the current query; the displayed set is
// that master set narrowed by the text filter, recomputed locally and
// never refetched.
package listview

import (
	"context"
	"strings"
	"sync"
	"time"

	"dental-clinic-api/client/gateway"

	"github.com/google/uuid"
)

// Lister is the slice of the gateway the controller needs.
type Lister interface {
	ListAppointments(ctx context.Context, query gateway.Query) (*gateway.Page, error)
}

type Controller struct {
	lister Lister

	mu        sync.Mutex
	page      int
	pageSize  int
	sortField string
	sortDesc  bool
	status    *gateway.Status
	dentistID *uuid.UUID
	startDate *time.Time
	endDate   *time.Time
	textQuery string

	seq       uint64
	master    []gateway.Appointment
	total     int64
	displayed []gateway.Appointment
	lastErr   error
}

// NewController starts at page one with both date bounds on today.
func NewController(lister Lister) *Controller {
	today := time.Now()
	start := startOfDay(today)
	end := endOfDay(today)
	return &Controller{
		lister:    lister,
		page:      1,
		pageSize:  10,
		sortField: "dateTime",
		startDate: &start,
		endDate:   &end,
	}
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 999000000, t.Location())
}

// Refresh replaces the master set with a fresh page for the current
// query. Responses superseded by a newer request are discarded, and a
// failed fetch keeps the last-known-good master set.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	tag := c.nextSeq()
	query := c.buildQuery()
	c.mu.Unlock()

	page, err := c.lister.ListAppointments(ctx, query)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.apply(tag, page, err)
	return err
}

// nextSeq issues a new request tag. Callers hold the lock.
func (c *Controller) nextSeq() uint64 {
	c.seq++
	return c.seq
}

// apply installs a response unless its tag has been superseded. Callers
// hold the lock. Returns whether the master set was replaced.
func (c *Controller) apply(tag uint64, page *gateway.Page, err error) bool {
	if tag != c.seq {
		return false
	}
	if err != nil {
		c.lastErr = err
		return false
	}
	c.lastErr = nil
	c.master = page.Items
	c.total = page.TotalCount
	c.displayed = deriveDisplayed(c.master, c.textQuery)
	return true
}

// buildQuery snapshots the current server-side parameters, deriving a
// missing date bound from the other bound's calendar day. Callers hold
// the lock.
func (c *Controller) buildQuery() gateway.Query {
	start, end := c.effectiveRange()
	return gateway.Query{
		Page:      c.page,
		PageSize:  c.pageSize,
		SortField: c.sortField,
		SortDesc:  c.sortDesc,
		Status:    c.status,
		DentistID: c.dentistID,
		StartDate: start,
		EndDate:   end,
	}
}

func (c *Controller) effectiveRange() (*time.Time, *time.Time) {
	start, end := c.startDate, c.endDate
	if start != nil && end == nil {
		derived := endOfDay(*start)
		end = &derived
	}
	if end != nil && start == nil {
		derived := startOfDay(*end)
		start = &derived
	}
	return start, end
}

// Master returns the current server page.
func (c *Controller) Master() []gateway.Appointment {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.master
}

// Displayed returns the master set narrowed by the free-text filter.
func (c *Controller) Displayed() []gateway.Appointment {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.displayed
}

// TotalCount is the server-side row count across all pages.
func (c *Controller) TotalCount() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.total
}

// LastError reports the most recent fetch failure, nil after a success.
func (c *Controller) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// DateRange returns the effective bounds the next fetch will use.
func (c *Controller) DateRange() (*time.Time, *time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.effectiveRange()
}

// SetPage moves to another page of the same query.
func (c *Controller) SetPage(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if page < 1 {
		page = 1
	}
	c.page = page
}

// SetPageSize changes the page size and restarts at page one.
func (c *Controller) SetPageSize(size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if size < 1 {
		size = 10
	}
	c.pageSize = size
	c.page = 1
}

// SetSort changes the server-side ordering and restarts at page one.
func (c *Controller) SetSort(field string, descending bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sortField = field
	c.sortDesc = descending
	c.page = 1
}

// SetStatusFilter narrows to one status, nil for all.
func (c *Controller) SetStatusFilter(status *gateway.Status) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = status
	c.page = 1
}

// SetDentistFilter narrows to one dentist, nil for all.
func (c *Controller) SetDentistFilter(dentistID *uuid.UUID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dentistID = dentistID
	c.page = 1
}

// SetStartDate moves the lower bound to the start of the given day. An
// end bound now earlier than the start is cleared, not reordered.
func (c *Controller) SetStartDate(day time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	start := startOfDay(day)
	c.startDate = &start
	if c.endDate != nil && c.endDate.Before(start) {
		c.endDate = nil
	}
	c.page = 1
}

// SetEndDate moves the upper bound to the end of the given day. A start
// bound now later than the end is cleared, not reordered.
func (c *Controller) SetEndDate(day time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	end := endOfDay(day)
	c.endDate = &end
	if c.startDate != nil && c.startDate.After(end) {
		c.startDate = nil
	}
	c.page = 1
}

// ClearFilters resets the server-side query: dates back to today,
// status and dentist cleared, first page. The free-text query is kept
// and simply re-applies to the next master set.
func (c *Controller) ClearFilters() {
	c.mu.Lock()
	defer c.mu.Unlock()
	today := time.Now()
	start := startOfDay(today)
	end := endOfDay(today)
	c.startDate = &start
	c.endDate = &end
	c.status = nil
	c.dentistID = nil
	c.page = 1
}

// SetTextQuery changes the client-only filter and recomputes the
// displayed set synchronously. No gateway request is issued.
func (c *Controller) SetTextQuery(query string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.textQuery = query
	c.displayed = deriveDisplayed(c.master, c.textQuery)
}

// deriveDisplayed narrows a master set by a case-insensitive substring
// match on patient and dentist display names. An empty query returns
// the master set unchanged.
func deriveDisplayed(master []gateway.Appointment, query string) []gateway.Appointment {
	if query == "" {
		return master
	}
	needle := strings.ToLower(query)
	displayed := make([]gateway.Appointment, 0, len(master))
	for _, appointment := range master {
		if strings.Contains(strings.ToLower(appointment.Patient.Name), needle) ||
			strings.Contains(strings.ToLower(appointment.Dentist.Name), needle) {
			displayed = append(displayed, appointment)
		}
	}
	return displayed
}
