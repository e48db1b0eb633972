package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/reserve-se/reserve-se/internal/config"
	"github.com/reserve-se/reserve-se/internal/models"
	"github.com/reserve-se/reserve-se/internal/storage"
	"github.com/reserve-se/reserve-se/pkg/crypto"
)

// Seeds a demo hotel with an admin account, two room types, two rate
// plans and 30 days of open inventory. Safe to re-run: existing slugs
// and emails are left alone.
func main() {
	var configFile string
	flag.StringVar(&configFile, "config", "config/booking-server.yml", "Configuration file path")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load(configFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if cfg.Database.DSN == "" {
		log.Fatal().Msg("DATABASE_URL is required for seeding")
	}

	store, err := storage.NewPostgresStore(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer store.Close()

	ctx := context.Background()

	tenant := &models.Tenant{
		Slug:         "hotel-luna",
		Name:         "Hotel Luna",
		BrandPrimary: "#1e3a8a",
		Currency:     "EUR",
		Timezone:     "Europe/Madrid",
	}
	if err := store.CreateTenant(ctx, tenant); err != nil {
		if err == storage.ErrDuplicateKey {
			existing, gerr := store.GetTenantBySlug(ctx, tenant.Slug)
			if gerr != nil {
				log.Fatal().Err(gerr).Msg("Failed to load existing tenant")
			}
			tenant = existing
			log.Info().Str("slug", tenant.Slug).Msg("Tenant already exists")
		} else {
			log.Fatal().Err(err).Msg("Failed to create tenant")
		}
	} else {
		log.Info().Str("slug", tenant.Slug).Msg("Created tenant")
	}

	hash, err := crypto.HashPassword("admin1234")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to hash password")
	}
	admin := &models.User{
		Email:        "admin@hotel-luna.example",
		Name:         "Luna Admin",
		PasswordHash: hash,
		Role:         "admin",
		IsActive:     true,
		TenantID:     tenant.ID,
	}
	if err := store.CreateUser(ctx, admin); err != nil {
		if err == storage.ErrDuplicateKey {
			log.Info().Str("email", admin.Email).Msg("Admin user already exists")
		} else {
			log.Fatal().Err(err).Msg("Failed to create admin user")
		}
	} else {
		log.Info().Str("email", admin.Email).Msg("Created admin user")
	}

	roomTypes := []*models.RoomType{
		{
			TenantModel: models.TenantModel{TenantID: tenant.ID},
			Name:        "Double Room",
			Description: "Queen bed, city view",
			MaxGuests:   2,
			IsActive:    true,
		},
		{
			TenantModel: models.TenantModel{TenantID: tenant.ID},
			Name:        "Family Suite",
			Description: "Two bedrooms, up to four guests",
			MaxGuests:   4,
			IsActive:    true,
		},
	}
	for _, rt := range roomTypes {
		if err := store.CreateRoomType(ctx, rt); err != nil {
			log.Fatal().Err(err).Str("name", rt.Name).Msg("Failed to create room type")
		}
		log.Info().Str("name", rt.Name).Msg("Created room type")
	}

	ratePlans := []*models.RatePlan{
		{
			TenantModel:     models.TenantModel{TenantID: tenant.ID},
			Name:            "Flexible",
			Description:     "Free cancellation up to 24 hours before checkin",
			IsRefundable:    true,
			CancellationHrs: 24,
			IsActive:        true,
		},
		{
			TenantModel: models.TenantModel{TenantID: tenant.ID},
			Name:        "Non-refundable",
			Description: "Best price, no cancellation",
			IsActive:    true,
		},
	}
	for _, rp := range ratePlans {
		if err := store.CreateRatePlan(ctx, rp); err != nil {
			log.Fatal().Err(err).Str("name", rp.Name).Msg("Failed to create rate plan")
		}
		log.Info().Str("name", rp.Name).Msg("Created rate plan")
	}

	// Prices per room type and rate plan, in cents
	prices := map[string]map[string]int{
		"Double Room":  {"Flexible": 12000, "Non-refundable": 9900},
		"Family Suite": {"Flexible": 21000, "Non-refundable": 17500},
	}

	today := models.Midnight(time.Now())
	count := 0
	for _, rt := range roomTypes {
		for _, rp := range ratePlans {
			for i := 0; i < 30; i++ {
				day := &models.InventoryDay{
					TenantModel: models.TenantModel{TenantID: tenant.ID},
					RoomTypeID:  rt.ID,
					RatePlanID:  rp.ID,
					Date:        today.AddDate(0, 0, i),
					Allotment:   5,
					PriceCents:  prices[rt.Name][rp.Name],
				}
				if err := store.UpsertInventoryDay(ctx, day); err != nil {
					log.Fatal().Err(err).Msg("Failed to upsert inventory day")
				}
				count++
			}
		}
	}

	log.Info().Int("days", count).Msg("Seeded inventory")
	log.Info().Msg("Seed complete")
}
