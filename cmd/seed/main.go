package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/mtaafundi/fundi-finder/internal/config"
	"github.com/mtaafundi/fundi-finder/internal/db"
	"github.com/mtaafundi/fundi-finder/internal/seed"
	"github.com/mtaafundi/fundi-finder/internal/services/market"
	"github.com/mtaafundi/fundi-finder/internal/utils"
)

func main() {
	reset := flag.Bool("reset", false, "delete existing rows before seeding")
	flag.Parse()

	_ = godotenv.Load()
	cfg := config.Load()
	utils.InitLogger(cfg.LogLevel)

	gdb, err := db.Connect(cfg.DBDriver, cfg.DBDSN, false)
	if err != nil {
		slog.Error("database connect failed", "err", err)
		os.Exit(1)
	}
	if err := db.Migrate(gdb); err != nil {
		slog.Error("migrate failed", "err", err)
		os.Exit(1)
	}

	if *reset {
		if err := seed.Reset(gdb); err != nil {
			slog.Error("reset failed", "err", err)
			os.Exit(1)
		}
		slog.Info("existing rows cleared")
	}

	sum, err := seed.Run(context.Background(), market.NewService(gdb, nil))
	if err != nil {
		slog.Error("seed failed", "err", err)
		os.Exit(1)
	}

	fmt.Printf("Seeded %d users, %d jobs, %d quotes, %d reviews\n",
		len(sum.Users), len(sum.Jobs), len(sum.Quotes), len(sum.Reviews))
	for _, u := range sum.Users {
		fmt.Printf("  user   %-15s %-9s %s\n", u.Name, u.Role, u.Phone)
	}
	for _, j := range sum.Jobs {
		fmt.Printf("  job    %-35s by %-13s %s\n", j.Title, j.User.Name, j.Status)
	}
	for _, q := range sum.Quotes {
		fmt.Printf("  quote  %8.0f KES by %-13s for %q\n", q.Price, q.Fundi.Name, q.Job.Title)
	}
	for _, r := range sum.Reviews {
		fmt.Printf("  review %d/5 from %s to %s\n", r.Rating, r.Reviewer.Name, r.Reviewee.Name)
	}
}
