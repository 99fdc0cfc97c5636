package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"salonbook/internal/database"
	"salonbook/internal/domain"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "salon.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.Appointment{},
		&domain.ReservationPointer{},
		&domain.ReservationRequest{},
		&domain.HistoryEntry{},
		&domain.BusinessSettings{},
		&domain.DayOverride{},
		&domain.SalonService{},
		&domain.Notification{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM history_entries")
	db.Exec("DELETE FROM reservation_requests")
	db.Exec("DELETE FROM reservation_pointers")
	db.Exec("DELETE FROM appointments")
	db.Exec("DELETE FROM day_overrides")
	db.Exec("DELETE FROM business_settings")
	db.Exec("DELETE FROM salon_services")
	db.Exec("DELETE FROM users")

	// ================== USERS ==================
	log.Println("Creating users...")

	ownerHash, _ := bcrypt.GenerateFromPassword([]byte("owner123"), bcrypt.DefaultCost)
	ownerUser := domain.User{
		Email:        "owner@salon.kz",
		PasswordHash: string(ownerHash),
		Role:         domain.RoleOwner,
		Name:         "Салтанат",
		Phone:        "+7 777 000 11 22",
	}
	db.Create(&ownerUser)
	log.Println("Owner created: owner@salon.kz / owner123")

	customerEmails := []string{"asel@mail.kz", "bekzat@gmail.com", "dina@yandex.kz"}
	for i, email := range customerEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("customer123"), bcrypt.DefaultCost)
		customer := domain.User{
			Email:        email,
			PasswordHash: string(hash),
			Role:         domain.RoleCustomer,
			Name:         fmt.Sprintf("Клиент %d", i+1),
			Phone:        fmt.Sprintf("+7 777 123 45%02d", i+67),
		}
		db.Create(&customer)
	}
	log.Printf("Customers created: %v / customer123", customerEmails)

	// ================== SCHEDULE ==================
	log.Println("Saving default working hours...")

	defaults := []string{
		"10:00", "11:00", "12:00", "13:00", "14:00",
		"15:00", "16:00", "17:00", "18:00",
	}
	db.Create(&domain.BusinessSettings{ID: 1, DefaultHours: defaults})

	// ================== SERVICES ==================
	log.Println("Creating service catalog...")

	services := []domain.SalonService{
		{ID: "haircut", Name: "Стрижка", DurationMin: 60, Position: 1},
		{ID: "coloring", Name: "Окрашивание", DurationMin: 120, Position: 2},
		{ID: "styling", Name: "Укладка", DurationMin: 30, Position: 3},
		{ID: "manicure", Name: "Маникюр", DurationMin: 60, Position: 4},
		{ID: "pedicure", Name: "Педикюр", DurationMin: 90, Position: 5},
	}
	for i := range services {
		db.Create(&services[i])
	}

	log.Println("Seed complete.")
}
