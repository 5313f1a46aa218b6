// cmd/seeder/main.go
package main

import (
	"context"
	"os"

	"github.com/unclebandit/customer-service/internal/config"
	"github.com/unclebandit/customer-service/internal/db"
	"github.com/unclebandit/customer-service/internal/logger"
	"github.com/unclebandit/customer-service/internal/model"
	"github.com/unclebandit/customer-service/internal/repository"
)

var seedCustomers = []model.Customer{
	{Name: "Maria Oliveira", Contact: "maria.oliveira@example.com", Status: model.StatusActive},
	{Name: "João Souza", Contact: "+55 11 91234-5678", Status: model.StatusActive},
	{Name: "Ana Costa", Contact: "ana.costa@example.com", Status: model.StatusInactive},
	{Name: "Carlos Lima", Contact: "carlos.lima@example.com", Status: model.StatusCanceled},
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		logger.NewLogger("seeder", "info").Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.NewLogger("seeder", cfg.LogLevel)
	ctx := log.WithContext(context.Background())

	conn, err := db.Open(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	defer conn.Close()

	if err := db.Migrate(conn); err != nil {
		log.Fatal().Err(err).Msg("failed to apply migrations")
	}

	repo := repository.NewCustomerRepository(conn)
	for i := range seedCustomers {
		saved, err := repo.Save(ctx, &seedCustomers[i])
		if err != nil {
			log.Fatal().Err(err).Str("name", seedCustomers[i].Name).Msg("failed to seed customer")
		}
		log.Info().Str("id", saved.ID).Str("name", saved.Name).Msg("seeded customer")
	}

	log.Info().Int("count", len(seedCustomers)).Msg("database seeding completed")
}
