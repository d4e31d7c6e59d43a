package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stemsi/academia-backend/internal/config"
	"github.com/stemsi/academia-backend/internal/database"
	"github.com/stemsi/academia-backend/internal/logger"
	"github.com/stemsi/academia-backend/internal/repository"
	"github.com/stemsi/academia-backend/internal/service"
	"golang.org/x/term"
)

func main() {
	var (
		fixturePath string
		reset       bool
		assumeYes   bool
	)
	flag.StringVar(&fixturePath, "file", "fixtures/seed.yaml", "YAML fixture to load")
	flag.BoolVar(&reset, "reset", false, "Truncate all tables before seeding")
	flag.BoolVar(&assumeYes, "yes", false, "Skip the confirmation prompt for -reset")
	flag.Parse()

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	file, err := os.Open(fixturePath)
	if err != nil {
		log.Fatal().Err(err).Str("file", fixturePath).Msg("Failed to open fixture")
	}
	fixture, err := LoadFixture(file)
	file.Close()
	if err != nil {
		log.Fatal().Err(err).Str("file", fixturePath).Msg("Invalid fixture")
	}

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	if reset {
		if !assumeYes && !confirm("This deletes every department, student and enrollment. Continue?") {
			fmt.Println("Aborted.")
			return
		}
		if err := truncateAll(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("Failed to reset tables")
		}
		fmt.Println("Tables truncated.")
	}

	seeder := &Seeder{
		Departments: service.NewDepartmentService(repository.NewDepartmentRepository(pool), log),
		Students:    service.NewStudentService(repository.NewStudentRepository(pool), log),
		Enrollments: service.NewEnrollmentService(repository.NewEnrollmentRepository(pool), log),
	}

	fmt.Printf("=== Seeding from %s ===\n", fixturePath)
	sum, err := seeder.Apply(ctx, fixture)
	if err != nil {
		log.Fatal().Err(err).Msg("Seed failed")
	}
	fmt.Printf("\nSeed completed! %d departments, %d students, %d enrollments.\n",
		sum.Departments, sum.Students, sum.Enrollments)
}

// confirm asks on an interactive terminal. Piped input never confirms,
// so scripted resets must pass -yes.
func confirm(question string) bool {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Println("stdin is not a terminal; pass -yes to reset non-interactively.")
		return false
	}
	fmt.Printf("%s [y/N]: ", question)
	answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func truncateAll(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, "TRUNCATE enrollments, students, departments RESTART IDENTITY CASCADE")
	return err
}
