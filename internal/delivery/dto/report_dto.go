package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DashboardStatsResponse mirrors the clinic dashboard: headline counters
// plus monthly and per-dentist breakdowns. Revenue figures are net
// (invoiced minus standard cost).
type DashboardStatsResponse struct {
	TotalPatients         int64           `json:"total_patients"`
	TotalAppointments     int64           `json:"total_appointments"`
	CompletedAppointments int64           `json:"completed_appointments"`
	UnpaidAppointments    int64           `json:"unpaid_appointments"`
	PendingAppointments   int64           `json:"pending_appointments"`
	TotalRevenue          decimal.Decimal `json:"total_revenue"`
	TotalInvoicing        decimal.Decimal `json:"total_invoicing"`
	TotalCost             decimal.Decimal `json:"total_cost"`
	PendingPayments       decimal.Decimal `json:"pending_payments"`
	MonthlyStats          []MonthlyStats  `json:"monthly_stats"`
	DentistStats          []DentistStats  `json:"dentist_stats"`
}

type MonthlyStats struct {
	Month        string          `json:"month"` // YYYY-MM
	Appointments int64           `json:"appointments"`
	Revenue      decimal.Decimal `json:"revenue"`
}

type DentistStats struct {
	DentistID    uuid.UUID       `json:"dentist_id"`
	DentistName  string          `json:"dentist_name"`
	Appointments int64           `json:"appointments"`
	Revenue      decimal.Decimal `json:"revenue"`
	Commission   decimal.Decimal `json:"commission"`
}
