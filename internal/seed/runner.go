package seed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/okian/salespulse/pkg/logger"
)

// Run generates one payload and either prints it to stdout or posts it to
// the report endpoint when a base URL is configured.
func Run(ctx context.Context, cfg *Config) error {
	stats := &Stats{StartTime: time.Now()}

	log := logger.Get()
	log.Info(ctx, "generating demo payload",
		logger.Int("reps", cfg.Reps),
		logger.Int("days", cfg.Days),
		logger.Any("seed", cfg.Seed),
	)

	payload := Generate(cfg, stats)

	if cfg.BaseURL == "" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(payload); err != nil {
			return fmt.Errorf("failed to write payload: %w", err)
		}
	} else if err := submit(ctx, cfg, payload); err != nil {
		return fmt.Errorf("payload submission failed: %w", err)
	}

	stats.Duration = time.Since(stats.StartTime)
	log.Info(ctx, "done",
		logger.Int("users", stats.Users),
		logger.Int("snapshots", stats.Snapshots),
		logger.Int("activities", stats.Activities),
		logger.Int("targets", stats.Targets),
		logger.Duration("took", stats.Duration),
	)
	return nil
}

// submit posts the payload and prints the returned report.
func submit(ctx context.Context, cfg *Config, payload *Payload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.BaseURL+"/v1/report", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: cfg.Timeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, out)
	}
	_, err = os.Stdout.Write(append(out, '\n'))
	return err
}
