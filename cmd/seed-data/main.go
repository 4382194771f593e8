// Command seed-data fabricates a demo report payload and either prints it
// or posts it to a running service.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/salespulse/internal/seed"
	"github.com/okian/salespulse/pkg/logger"
)

const defaultTimeout = 30 * time.Second

func main() {
	baseURL := flag.String("url", "", "base URL of a running service; empty prints the payload to stdout")
	reps := flag.Int("reps", 8, "number of sales executives to fabricate")
	days := flag.Int("days", 14, "days of history to fabricate")
	randSeed := flag.Int64("seed", 42, "random seed for reproducible payloads")
	asOf := flag.String("as-of", "", "report as-of day (2006-01-02); empty means today")
	flag.Parse()

	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	cfg := &seed.Config{
		BaseURL: *baseURL,
		Reps:    *reps,
		Days:    *days,
		Seed:    *randSeed,
		Timeout: defaultTimeout,
		AsOf:    *asOf,
	}
	if err := seed.Run(context.Background(), cfg); err != nil {
		logger.Get().Error(context.Background(), "seed run failed", logger.Error(err))
		os.Exit(1)
	}
}
