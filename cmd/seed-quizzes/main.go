package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stemsi/quizzes/internal/config"
	"github.com/stemsi/quizzes/internal/database"
	"github.com/stemsi/quizzes/internal/logger"
	"github.com/stemsi/quizzes/internal/model"
	"github.com/stemsi/quizzes/internal/repository"
	"github.com/stemsi/quizzes/internal/service"
	"github.com/stemsi/quizzes/internal/validator"
)

var starterQuizzes = []model.Quiz{
	{Question: "Capital of Italy", Answer: "Rome"},
	{Question: "Capital of France", Answer: "Paris"},
	{Question: "Capital of Spain", Answer: "Madrid"},
	{Question: "Capital of Portugal", Answer: "Lisbon"},
	{Question: "Capital of Germany", Answer: "Berlin"},
	{Question: "Capital of Austria", Answer: "Vienna"},
	{Question: "Capital of Greece", Answer: "Athens"},
	{Question: "Capital of Poland", Answer: "Warsaw"},
	{Question: "Capital of Norway", Answer: "Oslo"},
	{Question: "Capital of Sweden", Answer: "Stockholm"},
	{Question: "Capital of Finland", Answer: "Helsinki"},
	{Question: "Capital of Ireland", Answer: "Dublin"},
	{Question: "Capital of Hungary", Answer: "Budapest"},
	{Question: "Capital of Egypt", Answer: "Cairo"},
	{Question: "Capital of Japan", Answer: "Tokyo"},
	{Question: "Capital of Indonesia", Answer: "Jakarta"},
}

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	validator.Setup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	quizService := service.NewQuizService(repository.NewQuizRepository(pool))

	fmt.Printf("=== Seeding %d quizzes ===\n", len(starterQuizzes))

	created, skipped := 0, 0
	for _, seed := range starterQuizzes {
		var id int
		err := pool.QueryRow(ctx, "SELECT id FROM quizzes WHERE question = $1 LIMIT 1", seed.Question).Scan(&id)
		if err == nil {
			skipped++
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			log.Fatal().Err(err).Msg("Failed to check existing quiz")
		}

		quiz := &model.Quiz{Question: seed.Question, Answer: seed.Answer}
		if err := quizService.Create(ctx, quiz); err != nil {
			fmt.Printf("Error creating quiz %q: %v\n", seed.Question, err)
			continue
		}
		created++
	}

	fmt.Printf("\nSeed completed! Created %d, skipped %d existing.\n", created, skipped)
}
