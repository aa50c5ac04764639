// Package main implements the seed tool: it loads a JSON lexicon of
// verbs and nouns into the database and can create an initial admin
// account. Existing entries are skipped, so seeding is safe to re-run.
package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/ruslex/ruslex-api/internal/config"
	"github.com/ruslex/ruslex-api/internal/domain"
	"github.com/ruslex/ruslex-api/internal/platform/logger"
	"github.com/ruslex/ruslex-api/internal/platform/postgres"
	"github.com/ruslex/ruslex-api/internal/service/auth"
	"github.com/ruslex/ruslex-api/internal/store"
)

// verbEntry mirrors one verb record of the lexicon file.
type verbEntry struct {
	VerbPairID      string          `json:"verb_pair_id"`
	ConjugationType int             `json:"conjugation_type"`
	Root            string          `json:"root"`
	StressPattern   string          `json:"stress_pattern"`
	Translations    json.RawMessage `json:"translations"`
	Imperfective    json.RawMessage `json:"imperfective"`
	Perfective      json.RawMessage `json:"perfective"`
}

// nounEntry mirrors one noun record of the lexicon file.
type nounEntry struct {
	Noun         string          `json:"noun"`
	Gender       string          `json:"gender"`
	Translations json.RawMessage `json:"translations"`
	Declension   json.RawMessage `json:"declension"`
}

func main() {
	verbsPath := flag.String("verbs", "", "path to a JSON file with verb entries")
	nounsPath := flag.String("nouns", "", "path to a JSON file with noun entries")
	adminName := flag.String("admin-name", "Administrator", "name for the initial admin account")
	adminUsername := flag.String("admin-username", "", "username for the initial admin account")
	adminEmail := flag.String("admin-email", "", "email for the initial admin account")
	adminPassword := flag.String("admin-password", "", "password for the initial admin account")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logg := logger.Setup(cfg.Server)

	if err := run(cfg, logg, seedParams{
		verbsPath:     *verbsPath,
		nounsPath:     *nounsPath,
		adminName:     *adminName,
		adminUsername: *adminUsername,
		adminEmail:    *adminEmail,
		adminPassword: *adminPassword,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}

type seedParams struct {
	verbsPath     string
	nounsPath     string
	adminName     string
	adminUsername string
	adminEmail    string
	adminPassword string
}

func run(cfg *config.Config, logg *slog.Logger, params seedParams) error {
	db, err := sql.Open("pgx", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database connection: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logg.Error("Error closing database connection", "error", err)
		}
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	if params.adminUsername != "" {
		if err := seedAdmin(ctx, db, logg, params); err != nil {
			return err
		}
	}
	if params.verbsPath != "" {
		if err := seedVerbs(ctx, db, logg, params.verbsPath); err != nil {
			return err
		}
	}
	if params.nounsPath != "" {
		if err := seedNouns(ctx, db, logg, params.nounsPath); err != nil {
			return err
		}
	}

	logg.Info("Seeding completed")
	return nil
}

func seedAdmin(ctx context.Context, db *sql.DB, logg *slog.Logger, params seedParams) error {
	if params.adminEmail == "" || params.adminPassword == "" {
		return errors.New("admin-email and admin-password are required with admin-username")
	}

	user, err := domain.NewUser(
		params.adminName,
		params.adminUsername,
		params.adminEmail,
		params.adminPassword,
		domain.RoleAdmin,
	)
	if err != nil {
		return fmt.Errorf("invalid admin account data: %w", err)
	}

	hashed, err := auth.NewBcryptHasher().Hash(params.adminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}
	user.HashedPassword = hashed
	user.Password = ""

	users := postgres.NewUserStore(db, logg)
	if err := users.Create(ctx, user); err != nil {
		if store.IsDuplicateError(err) {
			logg.Info("Admin account already exists, skipping",
				"username", params.adminUsername)
			return nil
		}
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	logg.Info("Admin account created", "username", params.adminUsername)
	return nil
}

func seedVerbs(ctx context.Context, db *sql.DB, logg *slog.Logger, path string) error {
	var entries []verbEntry
	if err := readJSONFile(path, &entries); err != nil {
		return fmt.Errorf("failed to read verb lexicon: %w", err)
	}

	created := 0
	// The batch is all-or-nothing: a half-loaded lexicon never persists.
	// Existing entries are detected with a lookup rather than a mapped
	// insert error, which would abort the whole transaction.
	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		verbs := postgres.NewVerbStore(db, logg).WithTx(tx)
		for _, entry := range entries {
			if _, err := verbs.GetByPairID(ctx, entry.VerbPairID); err == nil {
				logg.Debug("Verb already exists, skipping", "verb_pair_id", entry.VerbPairID)
				continue
			} else if !errors.Is(err, store.ErrVerbNotFound) {
				return fmt.Errorf("failed to look up verb %q: %w", entry.VerbPairID, err)
			}

			verb, err := domain.NewVerb(
				entry.VerbPairID,
				entry.ConjugationType,
				entry.Root,
				entry.Translations,
				entry.Imperfective,
				entry.Perfective,
			)
			if err != nil {
				return fmt.Errorf("invalid verb entry %q: %w", entry.VerbPairID, err)
			}
			verb.StressPattern = entry.StressPattern

			if err := verbs.Create(ctx, verb); err != nil {
				return fmt.Errorf("failed to create verb %q: %w", entry.VerbPairID, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return err
	}

	logg.Info("Verb lexicon seeded", "file", path, "created", created, "total", len(entries))
	return nil
}

func seedNouns(ctx context.Context, db *sql.DB, logg *slog.Logger, path string) error {
	var entries []nounEntry
	if err := readJSONFile(path, &entries); err != nil {
		return fmt.Errorf("failed to read noun lexicon: %w", err)
	}

	created := 0
	err := store.RunInTransaction(ctx, db, func(ctx context.Context, tx *sql.Tx) error {
		nouns := postgres.NewNounStore(db, logg).WithTx(tx)
		for _, entry := range entries {
			if _, err := nouns.GetByNoun(ctx, entry.Noun); err == nil {
				logg.Debug("Noun already exists, skipping", "noun", entry.Noun)
				continue
			} else if !errors.Is(err, store.ErrNounNotFound) {
				return fmt.Errorf("failed to look up noun %q: %w", entry.Noun, err)
			}

			noun, err := domain.NewNoun(
				entry.Noun,
				domain.Gender(entry.Gender),
				entry.Translations,
				entry.Declension,
			)
			if err != nil {
				return fmt.Errorf("invalid noun entry %q: %w", entry.Noun, err)
			}

			if err := nouns.Create(ctx, noun); err != nil {
				return fmt.Errorf("failed to create noun %q: %w", entry.Noun, err)
			}
			created++
		}
		return nil
	})
	if err != nil {
		return err
	}

	logg.Info("Noun lexicon seeded", "file", path, "created", created, "total", len(entries))
	return nil
}

func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
