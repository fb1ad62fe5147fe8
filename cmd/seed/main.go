package main

import (
	"fmt"
	"time"

	"dental-clinic-api/config"
	"dental-clinic-api/internal/domain/entity"
	"dental-clinic-api/internal/infrastructure/database"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const seedPassword = "password123"

// Seeds a development database with demo accounts, a service catalog
// and a spread of appointments around today.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	if err := database.RunMigrations(cfg.DB); err != nil {
		logrus.Fatalf("Failed to migrate database: %v", err)
	}

	db, err := database.NewPostgresConnection(cfg.DB)
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}

	var userCount int64
	if err := db.Model(&entity.User{}).Count(&userCount).Error; err != nil {
		logrus.Fatalf("Failed to inspect database: %v", err)
	}
	if userCount > 0 {
		logrus.Info("Database already seeded, nothing to do")
		return
	}

	gofakeit.Seed(42)

	if err := db.Transaction(seed); err != nil {
		logrus.Fatalf("Failed to seed database: %v", err)
	}

	logrus.Info("Database seeded successfully")
	logrus.Infof("Login with admin@clinic.local / %s", seedPassword)
}

func seed(tx *gorm.DB) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := entity.User{
		Email:    "admin@clinic.local",
		Password: string(hash),
		FullName: "Clinic Admin",
		Role:     entity.RoleAdmin,
	}
	receptionist := entity.User{
		Email:    "frontdesk@clinic.local",
		Password: string(hash),
		FullName: gofakeit.Name(),
		Role:     entity.RoleReceptionist,
	}
	if err := tx.Create(&admin).Error; err != nil {
		return err
	}
	if err := tx.Create(&receptionist).Error; err != nil {
		return err
	}

	specialties := []entity.Specialty{
		{Name: "General Dentistry", Description: "Checkups, cleanings and fillings"},
		{Name: "Orthodontics", Description: "Braces and aligners"},
		{Name: "Endodontics", Description: "Root canal treatment"},
		{Name: "Oral Surgery", Description: "Extractions and implants"},
	}
	if err := tx.Create(&specialties).Error; err != nil {
		return err
	}

	services := []entity.Service{
		{Name: "Dental Checkup", StandardCost: dec("10.00"), ListPrice: dec("35.00"), SpecialtyID: &specialties[0].ID},
		{Name: "Teeth Cleaning", StandardCost: dec("15.00"), ListPrice: dec("50.00"), SpecialtyID: &specialties[0].ID},
		{Name: "Composite Filling", StandardCost: dec("25.00"), ListPrice: dec("80.00"), SpecialtyID: &specialties[0].ID},
		{Name: "Braces Adjustment", StandardCost: dec("20.00"), ListPrice: dec("90.00"), SpecialtyID: &specialties[1].ID},
		{Name: "Root Canal", StandardCost: dec("60.00"), ListPrice: dec("220.00"), SpecialtyID: &specialties[2].ID},
		{Name: "Tooth Extraction", StandardCost: dec("30.00"), ListPrice: dec("120.00"), SpecialtyID: &specialties[3].ID},
	}
	if err := tx.Create(&services).Error; err != nil {
		return err
	}

	dentists := make([]entity.Dentist, 0, 4)
	for i := 0; i < 4; i++ {
		user := entity.User{
			Email:    fmt.Sprintf("dentist%d@clinic.local", i+1),
			Password: string(hash),
			FullName: "Dr. " + gofakeit.Name(),
			Role:     entity.RoleDentist,
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		dentist := entity.Dentist{
			UserID:         user.ID,
			LicenseNumber:  fmt.Sprintf("DDS-%05d", gofakeit.Number(10000, 99999)),
			CommissionRate: dec("0.30"),
			Specialties:    []entity.Specialty{specialties[i%len(specialties)]},
		}
		if err := tx.Create(&dentist).Error; err != nil {
			return err
		}
		dentist.User = user
		dentists = append(dentists, dentist)
	}

	patients := make([]entity.Patient, 0, 25)
	for i := 0; i < 25; i++ {
		birthDate := gofakeit.DateRange(
			time.Date(1950, 1, 1, 0, 0, 0, 0, time.Local),
			time.Date(2010, 12, 31, 0, 0, 0, 0, time.Local),
		)
		patients = append(patients, entity.Patient{
			Name:      gofakeit.Name(),
			Phone:     gofakeit.Phone(),
			Email:     gofakeit.Email(),
			BirthDate: &birthDate,
			Notes:     gofakeit.Sentence(8),
		})
	}
	if err := tx.Create(&patients).Error; err != nil {
		return err
	}

	// Appointments spread over the last month and the next two weeks,
	// inside clinic hours so the day grid has data.
	now := time.Now()
	for i := 0; i < 60; i++ {
		day := gofakeit.Number(-30, 14)
		hour := gofakeit.Number(8, 19)
		dateTime := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, time.Local).
			AddDate(0, 0, day)

		patient := patients[gofakeit.Number(0, len(patients)-1)]
		dentist := dentists[gofakeit.Number(0, len(dentists)-1)]

		itemCount := gofakeit.Number(1, 3)
		total := decimal.Zero
		items := make([]entity.AppointmentLineItem, 0, itemCount)
		for j := 0; j < itemCount; j++ {
			svc := services[gofakeit.Number(0, len(services)-1)]
			items = append(items, entity.AppointmentLineItem{
				ServiceID:    svc.ID,
				ServiceName:  svc.Name,
				Quantity:     1,
				PriceApplied: svc.ListPrice,
				StandardCost: svc.StandardCost,
				Position:     j,
			})
			total = total.Add(svc.ListPrice)
		}

		appointment := entity.Appointment{
			DateTime:    dateTime,
			Status:      entity.AppointmentStatusPending,
			TotalAmount: total,
			PatientID:   patient.ID,
			DentistID:   dentist.ID,
			LineItems:   items,
		}

		// Past appointments mostly completed and paid, some no-shows
		if dateTime.Before(now) {
			if gofakeit.Number(1, 10) <= 8 {
				appointment.Status = entity.AppointmentStatusCompleted
				paidAt := dateTime.Add(30 * time.Minute)
				for k := range appointment.LineItems {
					appointment.LineItems[k].Paid = true
					appointment.LineItems[k].PaymentDate = &paidAt
				}
			} else {
				appointment.Status = entity.AppointmentStatusNoShow
			}
		}

		if err := tx.Create(&appointment).Error; err != nil {
			return err
		}
	}

	return nil
}

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}
