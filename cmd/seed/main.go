package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"hoteldesk/internal/database"
	"hoteldesk/internal/modules/customers"
	"hoteldesk/internal/modules/rooms"
	"hoteldesk/internal/modules/services"
	"hoteldesk/internal/pkg/staffauth"
	"hoteldesk/internal/repository"
)

// Seeds a demo hotel: room types, rooms, a small customer base and a service
// catalog, then prints a development staff token for the API.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "hoteldesk.db"
	}
	secret := os.Getenv("STAFF_JWT_SECRET")
	if secret == "" {
		log.Fatal("STAFF_JWT_SECRET is empty")
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.AutoMigrate(repository.AllModels()...); err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	roomStore := repository.NewRoomStore(db)

	total, err := roomStore.CountRooms(ctx)
	if err != nil {
		log.Fatal(err)
	}
	if total > 0 {
		log.Println("Database already seeded, skipping")
	} else {
		seed(ctx,
			rooms.NewService(roomStore),
			customers.NewService(repository.NewCustomerStore(db)),
			services.NewService(repository.NewServiceStore(db)),
		)
		log.Println("Seed data created")
	}

	auth := staffauth.New(secret, 30*24*time.Hour)
	token, err := auth.GenerateToken(1, "Front Desk")
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("Staff token (30 days): %s", token)
}

func seed(ctx context.Context, roomSvc *rooms.Service, custSvc *customers.Service, serviceSvc *services.Service) {
	standard, err := roomSvc.CreateRoomType(ctx, rooms.RoomTypeRequest{
		Name:          "Standard",
		Description:   "Cosy double room with a city view",
		PricePerNight: 2500,
		Capacity:      2,
	})
	if err != nil {
		log.Fatal(err)
	}
	deluxe, err := roomSvc.CreateRoomType(ctx, rooms.RoomTypeRequest{
		Name:          "Deluxe",
		Description:   "Spacious room with a balcony",
		PricePerNight: 4500,
		Capacity:      3,
	})
	if err != nil {
		log.Fatal(err)
	}
	suite, err := roomSvc.CreateRoomType(ctx, rooms.RoomTypeRequest{
		Name:          "Suite",
		Description:   "Two-room suite with a lounge area",
		PricePerNight: 8000,
		Capacity:      4,
	})
	if err != nil {
		log.Fatal(err)
	}

	roomSeeds := []rooms.RoomRequest{
		{RoomNumber: "101", RoomTypeID: standard.ID, Floor: 1, Amenities: []string{"wifi", "tv"}},
		{RoomNumber: "102", RoomTypeID: standard.ID, Floor: 1, Amenities: []string{"wifi", "tv"}},
		{RoomNumber: "201", RoomTypeID: deluxe.ID, Floor: 2, Amenities: []string{"wifi", "tv", "minibar"}},
		{RoomNumber: "202", RoomTypeID: deluxe.ID, Floor: 2, Amenities: []string{"wifi", "tv", "minibar"}},
		{RoomNumber: "301", RoomTypeID: suite.ID, Floor: 3, Amenities: []string{"wifi", "tv", "minibar", "jacuzzi"}},
	}
	for _, req := range roomSeeds {
		if _, err := roomSvc.CreateRoom(ctx, req); err != nil {
			log.Fatal(err)
		}
	}

	customerSeeds := []customers.CustomerRequest{
		{
			FirstName:      "Aidana",
			LastName:       "Serikova",
			Email:          "aidana.serikova@example.com",
			Phone:          "+7 701 111 2233",
			PassportNumber: "N12345678",
			Birthday:       "1992-04-17",
		},
		{
			FirstName:      "Marat",
			LastName:       "Abenov",
			Email:          "marat.abenov@example.com",
			Phone:          "+7 702 444 5566",
			PassportNumber: "N87654321",
			Birthday:       "1985-11-02",
		},
	}
	for _, req := range customerSeeds {
		if _, err := custSvc.Create(ctx, req); err != nil {
			log.Fatal(err)
		}
	}

	wellness, err := serviceSvc.CreateCategory(ctx, services.CategoryRequest{
		Name:        "Wellness",
		Description: "Spa and relaxation",
		SortOrder:   1,
	})
	if err != nil {
		log.Fatal(err)
	}

	serviceSeeds := []services.ServiceRequest{
		{
			Name:            "Massage",
			CategoryID:      wellness.ID,
			Description:     "Classic full-body massage",
			Price:           5000,
			DurationMinutes: 60,
			MaxCapacity:     1,
			MinBookingHours: 3,
			IsFeatured:      true,
			SortOrder:       1,
		},
		{
			Name:            "Sauna",
			CategoryID:      wellness.ID,
			Description:     "Private sauna session",
			Price:           3000,
			DurationMinutes: 90,
			MaxCapacity:     6,
			MinBookingHours: 1,
			SortOrder:       2,
		},
	}
	for _, req := range serviceSeeds {
		if _, err := serviceSvc.CreateService(ctx, req); err != nil {
			log.Fatal(err)
		}
	}
}
