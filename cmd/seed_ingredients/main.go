package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/pageza/ingredient-macros/backend/internal/database"
	"github.com/pageza/ingredient-macros/backend/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newCommand().Run(ctx, os.Args); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}
}

func newCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed_ingredients",
		Usage: "Import an ingredient dataset file into the database read by DATASET_SOURCE=database",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "dataset",
				Aliases:  []string{"d"},
				Required: true,
				Usage:    "Path to the dataset file (.json, .yaml or .yml)",
			},
			&cli.StringFlag{
				Name:    "driver",
				Value:   "postgres",
				Usage:   "Database driver: postgres or sqlite",
				Sources: cli.EnvVars("DATABASE_DRIVER"),
			},
			&cli.StringFlag{
				Name:     "dsn",
				Required: true,
				Usage:    "Database connection string",
				Sources:  cli.EnvVars("DATABASE_URL"),
			},
			&cli.BoolFlag{
				Name:  "reset",
				Usage: "Delete existing ingredients before importing",
			},
		},
		Action: run,
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	datasetPath := cmd.String("dataset")

	items, err := service.NewFileSource(datasetPath).Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", datasetPath, err)
	}

	db, err := database.Open(cmd.String("driver"), cmd.String("dsn"))
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.Migrate(db); err != nil {
		return err
	}

	if err := database.ImportIngredients(ctx, db, items, cmd.Bool("reset")); err != nil {
		return err
	}

	log.Printf("Seeded %d ingredients from %s", len(items), datasetPath)
	return nil
}
