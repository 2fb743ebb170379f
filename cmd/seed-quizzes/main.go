package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/geoquiz/geoquiz-backend/internal/config"
	"github.com/geoquiz/geoquiz-backend/internal/database"
	"github.com/geoquiz/geoquiz-backend/internal/geodata"
	"github.com/geoquiz/geoquiz-backend/internal/logger"
	"github.com/geoquiz/geoquiz-backend/internal/model"
	"github.com/geoquiz/geoquiz-backend/internal/repository"
)

// systemUser owns the pregenerated map quizzes. Its password is random
// and discarded — nobody logs in as it.
const systemUser = "geoquiz"

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	userRepo := repository.NewUserRepository(pool)

	fmt.Println("=== Seeding Pregenerated Map Quizzes ===")

	// System user
	exists, err := userRepo.Exists(ctx, systemUser)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to check system user")
	}
	if !exists {
		hash, err := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), cfg.BcryptCost)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to hash password")
		}
		if err := userRepo.Create(ctx, &model.User{Username: systemUser, Password: string(hash)}); err != nil {
			log.Fatal().Err(err).Msg("Failed to create system user")
		}
		fmt.Printf("Created system user '%s'\n", systemUser)
	}

	// One quiz per region for each mode. The quiz IDs are fixed: map
	// sessions submit scores against them by geodata.QuizID.
	seeded := 0
	for _, flags := range []bool{false, true} {
		for _, region := range geodata.Regions {
			id, ok := geodata.QuizID(region, flags)
			if !ok {
				log.Fatal().Str("region", region).Msg("No quiz ID for region")
			}

			display := titleCase(region)
			name := fmt.Sprintf("Map Quiz: %s", display)
			description := fmt.Sprintf("Find every country in %s on the map.", display)
			if flags {
				name = fmt.Sprintf("Flag Quiz: %s", display)
				description = fmt.Sprintf("Match every flag in %s to its country.", display)
			}

			tag, err := pool.Exec(ctx,
				`INSERT INTO quizzes (id, name, description, username, pregenerated)
				 VALUES ($1, $2, $3, $4, TRUE)
				 ON CONFLICT (id) DO NOTHING`,
				id, name, description, systemUser,
			)
			if err != nil {
				log.Fatal().Err(err).Int("quiz_id", id).Msg("Failed to seed quiz")
			}
			if tag.RowsAffected() > 0 {
				fmt.Printf("Seeded quiz %d: %s\n", id, name)
				seeded++
			}
		}
	}

	// Keep the sequence ahead of the fixed IDs so user quizzes don't
	// collide with seeded ones.
	if _, err := pool.Exec(ctx,
		`SELECT setval('quizzes_id_seq', GREATEST((SELECT MAX(id) FROM quizzes), 100))`,
	); err != nil {
		log.Fatal().Err(err).Msg("Failed to advance quiz sequence")
	}

	fmt.Printf("\nDone. %d quizzes seeded.\n", seeded)
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
