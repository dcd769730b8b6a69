// Command smoke checks that the verification backend's route groups are
// reachable, the terminal counterpart of the portal's system status page.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"

	"pharmachain-portal/pkg/backend"
)

func main() {
	baseURL := flag.String("backend", envOr("PHARMA_BACKEND_URL", "http://localhost:8000"), "verification backend base URL")
	timeout := flag.Duration("timeout", 10*time.Second, "per-check timeout")
	flag.Parse()

	client := backend.New(*baseURL)

	checks := []struct {
		name  string
		probe func(context.Context) error
	}{
		{"manufacturer", client.Manufacturer.Health},
		{"pharmacy", client.Pharmacy.Health},
		{"ai agent", func(ctx context.Context) error {
			_, err := client.AI.AgentStatus(ctx)
			return err
		}},
		{"watchdog", func(ctx context.Context) error {
			_, err := client.Watchdog.Status(ctx)
			return err
		}},
	}

	fmt.Printf("Checking %s\n\n", *baseURL)

	ok := color.New(color.FgGreen, color.Bold)
	fail := color.New(color.FgRed, color.Bold)

	failures := 0
	for _, check := range checks {
		ctx, cancel := context.WithTimeout(context.Background(), *timeout)
		err := check.probe(ctx)
		cancel()

		if err != nil {
			fail.Printf("  ✗ %-14s", check.name)
			fmt.Printf(" %v\n", err)
			failures++
			continue
		}
		ok.Printf("  ✓ %-14s", check.name)
		fmt.Println(" reachable")
	}

	fmt.Println()
	if failures > 0 {
		fail.Printf("%d of %d checks failed\n", failures, len(checks))
		os.Exit(1)
	}
	ok.Println("All checks passed")
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
