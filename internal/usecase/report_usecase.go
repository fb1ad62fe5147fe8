package usecase

import (
	"context"
	"sort"
	"time"

	"dental-clinic-api/internal/delivery/dto"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/domain/repository"
	"dental-clinic-api/internal/service"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ReportUsecase interface {
	DashboardStats(ctx context.Context, year int) (*dto.DashboardStatsResponse, error)
}

type reportUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	reportCache     *service.ReportCache
}

func NewReportUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	reportCache *service.ReportCache,
) ReportUsecase {
	return &reportUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		reportCache:     reportCache,
	}
}

// DashboardStats aggregates the clinic dashboard for one calendar year.
// Invoicing counts money actually collected, cost is the standard cost
// of settled work, and revenue is the difference. Commission applies
// each dentist's rate to their collected revenue.
func (u *reportUsecase) DashboardStats(ctx context.Context, year int) (*dto.DashboardStatsResponse, error) {
	if cached := u.reportCache.Get(ctx, year); cached != nil {
		return cached, nil
	}

	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	end := time.Date(year, time.December, 31, 23, 59, 59, 999000000, time.Local)
	filter := &entity.AppointmentFilter{
		StartDate: &start,
		EndDate:   &end,
	}

	appointments, err := u.appointmentRepo.FindAllInRange(u.db.WithContext(ctx), filter)
	if err != nil {
		u.log.Warnf("Failed to load appointments for report: %+v", err)
		return nil, err
	}

	totalPatients, err := u.patientRepo.Count(ctx)
	if err != nil {
		u.log.Warnf("Failed to count patients: %+v", err)
		return nil, err
	}

	stats := &dto.DashboardStatsResponse{
		TotalPatients:     totalPatients,
		TotalAppointments: int64(len(appointments)),
		TotalRevenue:      decimal.Zero,
		TotalInvoicing:    decimal.Zero,
		TotalCost:         decimal.Zero,
		PendingPayments:   decimal.Zero,
	}

	monthly := make(map[string]*dto.MonthlyStats)
	byDentist := make(map[uuid.UUID]*dto.DentistStats)

	for i := range appointments {
		appointment := &appointments[i]

		switch appointment.Status {
		case entity.AppointmentStatusCompleted:
			stats.CompletedAppointments++
		case entity.AppointmentStatusPending:
			stats.PendingAppointments++
		}
		if appointment.HasOutstandingBalance() {
			stats.UnpaidAppointments++
		}

		paid := appointment.PaidTotal()
		pending := appointment.PendingTotal()
		cost := decimal.Zero
		for _, item := range appointment.LineItems {
			if item.Paid {
				cost = cost.Add(item.StandardCost.Mul(decimal.NewFromInt(int64(item.Quantity))))
			}
		}
		revenue := paid.Sub(cost)

		stats.TotalInvoicing = stats.TotalInvoicing.Add(paid)
		stats.TotalCost = stats.TotalCost.Add(cost)
		stats.TotalRevenue = stats.TotalRevenue.Add(revenue)
		stats.PendingPayments = stats.PendingPayments.Add(pending)

		month := appointment.DateTime.Format("2006-01")
		ms, ok := monthly[month]
		if !ok {
			ms = &dto.MonthlyStats{Month: month, Revenue: decimal.Zero}
			monthly[month] = ms
		}
		ms.Appointments++
		ms.Revenue = ms.Revenue.Add(revenue)

		ds, ok := byDentist[appointment.DentistID]
		if !ok {
			ds = &dto.DentistStats{
				DentistID:   appointment.DentistID,
				DentistName: appointment.Dentist.DisplayName(),
				Revenue:     decimal.Zero,
				Commission:  decimal.Zero,
			}
			byDentist[appointment.DentistID] = ds
		}
		ds.Appointments++
		ds.Revenue = ds.Revenue.Add(revenue)
		ds.Commission = ds.Commission.Add(revenue.Mul(appointment.Dentist.CommissionRate))
	}

	stats.MonthlyStats = make([]dto.MonthlyStats, 0, len(monthly))
	for _, ms := range monthly {
		stats.MonthlyStats = append(stats.MonthlyStats, *ms)
	}
	sort.Slice(stats.MonthlyStats, func(i, j int) bool {
		return stats.MonthlyStats[i].Month < stats.MonthlyStats[j].Month
	})

	stats.DentistStats = make([]dto.DentistStats, 0, len(byDentist))
	for _, ds := range byDentist {
		stats.DentistStats = append(stats.DentistStats, *ds)
	}
	sort.Slice(stats.DentistStats, func(i, j int) bool {
		if !stats.DentistStats[i].Revenue.Equal(stats.DentistStats[j].Revenue) {
			return stats.DentistStats[i].Revenue.GreaterThan(stats.DentistStats[j].Revenue)
		}
		return stats.DentistStats[i].DentistName < stats.DentistStats[j].DentistName
	})

	u.reportCache.Set(ctx, year, stats)

	return stats, nil
}
