package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"matchpoint-api/internal/aggregator"
	"matchpoint-api/internal/config"
	"matchpoint-api/internal/models"
	"matchpoint-api/internal/scoring"
	"matchpoint-api/internal/sources"
	"matchpoint-api/pkg/httpclient"
)

func main() {
	var (
		query      = flag.String("query", "", "Search term passed to the providers")
		categories = flag.String("categories", "", "Comma-separated category ids (software-dev, design, ...)")
		skills     = flag.String("skills", "", "Comma-separated skill list (defaults to the built-in set)")
		minSalary  = flag.Int("min-salary", 0, "Keep only jobs with salaryMin at or above this value")
		recent     = flag.Bool("recent", false, "Keep only jobs posted within 7 days")
		output     = flag.String("output", "console", "Output format: console, json")
		verbose    = flag.Bool("verbose", false, "Verbose logging")
	)
	flag.Parse()

	if err := godotenv.Load(); err != nil && *verbose {
		fmt.Fprintf(os.Stderr, "Warning: could not load .env file: %v\n", err)
	}
	cfg := config.Load()

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	if *verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetOutput(io.Discard)
	}

	client := httpclient.NewHttpClient(cfg.Providers.RequestTimeout)
	scorer := scoring.New(time.Now().UnixNano())
	cache := aggregator.NewCache(cfg.Cache.MaxKeys, cfg.Cache.TTL)

	remotive := sources.NewRemotiveSource(client, scorer, cfg.Providers.RemotiveURL, cfg.Providers.RemotiveLimit)
	arbeitnow := sources.NewArbeitnowSource(client, scorer, cfg.Providers.ArbeitnowURL, cfg.Providers.ArbeitnowLimit)
	agg := aggregator.New(remotive, arbeitnow, scorer, cache, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	jobs, _ := agg.FetchAllJobs(ctx, *query, splitCSV(*categories), splitCSV(*skills), models.Filters{
		MinSalary: *minSalary,
		Recent:    *recent,
	})

	switch *output {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(jobs); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode jobs: %v\n", err)
			os.Exit(1)
		}
	default:
		printConsole(jobs)
	}
}

func printConsole(jobs []models.Job) {
	fmt.Printf("Found %d jobs\n\n", len(jobs))
	for _, j := range jobs {
		fmt.Printf("[%2d%%] %s — %s\n", j.Match, j.Title, j.Company)
		fmt.Printf("      %s | %s | %s", j.Location, j.JobType, j.Source)
		if j.Salary != "" {
			fmt.Printf(" | %s", j.Salary)
		}
		fmt.Println()
		if len(j.UserSkillMatch) > 0 {
			fmt.Printf("      matches: %s\n", strings.Join(j.UserSkillMatch, ", "))
		}
		fmt.Printf("      %s\n\n", j.URL)
	}
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
