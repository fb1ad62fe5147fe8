package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LocalDateTimeLayout is the wire format for date parameters: ISO-8601
// local date-time, no offset, whole seconds.
const LocalDateTimeLayout = "2006-01-02T15:04:05"

// Client talks to the appointment API. It normalizes the server's
// response envelope into {items, totalCount} pages and maps every
// failure onto the error taxonomy in errors.go.
type Client struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// SetToken sets the bearer credential used on subsequent requests.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Wire shapes, private to the mapping layer.

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    *struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int   `json:"total_pages"`
	} `json:"meta"`
}

type wireAppointment struct {
	ID          uuid.UUID       `json:"id"`
	DateTime    time.Time       `json:"date_time"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Patient     struct {
		ID   uuid.UUID `json:"id"`
		Name string    `json:"name"`
	} `json:"patient"`
	Dentist struct {
		ID   uuid.UUID `json:"id"`
		Name string    `json:"name"`
	} `json:"dentist"`
	LineItems []struct {
		ID           uuid.UUID       `json:"id"`
		ServiceID    uuid.UUID       `json:"service_id"`
		ServiceName  string          `json:"service_name"`
		Quantity     int             `json:"quantity"`
		PriceApplied decimal.Decimal `json:"price_applied"`
		Paid         bool            `json:"paid"`
		PaymentDate  *time.Time      `json:"payment_date"`
	} `json:"line_items"`
}

func (w *wireAppointment) toAppointment() Appointment {
	items := make([]LineItem, len(w.LineItems))
	for i, wi := range w.LineItems {
		items[i] = LineItem{
			ID:           wi.ID,
			Service:      Ref{ID: wi.ServiceID, Name: wi.ServiceName},
			Quantity:     wi.Quantity,
			PriceApplied: wi.PriceApplied,
			Paid:         wi.Paid,
			PaymentDate:  wi.PaymentDate,
		}
	}
	return Appointment{
		ID:          w.ID,
		DateTime:    w.DateTime,
		Status:      Status(w.Status),
		TotalAmount: w.TotalAmount,
		Patient:     Ref{ID: w.Patient.ID, Name: w.Patient.Name},
		Dentist:     Ref{ID: w.Dentist.ID, Name: w.Dentist.Name},
		LineItems:   items,
	}
}

// ListAppointments fetches one page for the query.
func (c *Client) ListAppointments(ctx context.Context, query Query) (*Page, error) {
	params := url.Values{}
	if query.Page > 0 {
		params.Set("page", strconv.Itoa(query.Page))
	}
	if query.PageSize > 0 {
		params.Set("limit", strconv.Itoa(query.PageSize))
	}
	if query.SortField != "" {
		direction := "asc"
		if query.SortDesc {
			direction = "desc"
		}
		params.Set("sort", query.SortField+","+direction)
	}
	if query.Status != nil {
		params.Set("status", string(*query.Status))
	}
	if query.DentistID != nil {
		params.Set("dentist_id", query.DentistID.String())
	}
	if query.StartDate != nil {
		params.Set("start_date", query.StartDate.Format(LocalDateTimeLayout))
	}
	if query.EndDate != nil {
		params.Set("end_date", query.EndDate.Format(LocalDateTimeLayout))
	}

	env, err := c.do(ctx, http.MethodGet, "/appointments?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	var wireItems []wireAppointment
	if err := json.Unmarshal(env.Data, &wireItems); err != nil {
		return nil, &Error{Kind: ErrValidation, Message: "malformed list payload"}
	}

	page := &Page{Items: make([]Appointment, len(wireItems))}
	for i := range wireItems {
		page.Items[i] = wireItems[i].toAppointment()
	}
	if env.Meta != nil {
		page.TotalCount = env.Meta.Total
	} else {
		page.TotalCount = int64(len(page.Items))
	}

	return page, nil
}

// GetAppointment fetches a single appointment by ID.
func (c *Client) GetAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	env, err := c.do(ctx, http.MethodGet, "/appointments/"+id.String(), nil)
	if err != nil {
		return nil, err
	}
	return decodeAppointment(env.Data)
}

// CreateAppointment books an appointment. The date-time is sent as a
// local timestamp truncated to whole seconds.
func (c *Client) CreateAppointment(ctx context.Context, dateTime time.Time, patientID, dentistID uuid.UUID, items []NewLineItem) (*Appointment, error) {
	services := make([]map[string]interface{}, len(items))
	for i, item := range items {
		services[i] = map[string]interface{}{
			"service_id": item.ServiceID,
			"quantity":   item.Quantity,
		}
	}
	body := map[string]interface{}{
		"date_time":  dateTime.Truncate(time.Second).Format(LocalDateTimeLayout),
		"patient_id": patientID,
		"dentist_id": dentistID,
		"services":   services,
	}

	env, err := c.do(ctx, http.MethodPost, "/appointments", body)
	if err != nil {
		return nil, err
	}
	return decodeAppointment(env.Data)
}

// SetAppointmentStatus requests a lifecycle transition.
func (c *Client) SetAppointmentStatus(ctx context.Context, id uuid.UUID, status Status) (*Appointment, error) {
	body := map[string]interface{}{"status": string(status)}
	env, err := c.do(ctx, http.MethodPatch, "/appointments/"+id.String()+"/status", body)
	if err != nil {
		return nil, err
	}
	return decodeAppointment(env.Data)
}

// SettleAppointment marks the whole outstanding balance paid.
func (c *Client) SettleAppointment(ctx context.Context, id uuid.UUID) (*Appointment, error) {
	env, err := c.do(ctx, http.MethodPost, "/appointments/"+id.String()+"/settle", nil)
	if err != nil {
		return nil, err
	}
	return decodeAppointment(env.Data)
}

func decodeAppointment(data json.RawMessage) (*Appointment, error) {
	var wire wireAppointment
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, &Error{Kind: ErrValidation, Message: "malformed appointment payload"}
	}
	appointment := wire.toAppointment()
	return &appointment, nil
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (*envelope, error) {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Kind: ErrValidation, Message: err.Error()}
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &Error{Kind: ErrValidation, Message: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Kind: ErrNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, &Error{Kind: ErrNetwork, Message: fmt.Sprintf("malformed response (status %d)", resp.StatusCode)}
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &env, nil
	}

	return nil, &Error{Kind: kindForStatus(resp.StatusCode), Message: env.Message}
}

func kindForStatus(statusCode int) ErrorKind {
	switch statusCode {
	case http.StatusBadRequest, http.StatusConflict:
		return ErrValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrAuthorization
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnprocessableEntity:
		return ErrInvalidTransition
	default:
		return ErrInternal
	}
}
