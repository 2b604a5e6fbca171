package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/alexivanou/skycast/internal/config"
	"github.com/alexivanou/skycast/internal/database"
	"github.com/alexivanou/skycast/internal/stats"
	"go.uber.org/zap"
)

func main() {
	var (
		serverURL = flag.String("url", "", "Read /api/v1/stats from a running server instead of the gazetteer database")
		format    = flag.String("format", "", "Output format: json or text (default $OUTPUT_FORMAT or json)")
	)
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var statistics *stats.Stats
	if *serverURL != "" {
		logger.Info("Fetching statistics...", zap.String("url", *serverURL))
		statistics, err = fetchServerStats(ctx, *serverURL)
	} else {
		logger.Info("Collecting gazetteer statistics...", zap.String("db_type", string(cfg.DB.Type)))
		statistics, err = collectLocal(ctx, cfg)
	}
	if err != nil {
		logger.Fatal("Failed to collect statistics", zap.Error(err))
	}

	outputFormat := *format
	if outputFormat == "" {
		outputFormat = os.Getenv("OUTPUT_FORMAT")
	}
	if outputFormat == "" {
		outputFormat = "json"
	}

	switch outputFormat {
	case "json":
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(statistics); err != nil {
			logger.Fatal("Failed to encode statistics", zap.Error(err))
		}
	case "text", "human":
		printHumanReadable(statistics)
	default:
		logger.Fatal("Unknown output format", zap.String("format", outputFormat))
	}
}

func collectLocal(ctx context.Context, cfg *config.Config) (*stats.Stats, error) {
	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return stats.NewCollector(db, cfg.DB, string(config.GeocoderLocal)).Collect(ctx)
}

func fetchServerStats(ctx context.Context, baseURL string) (*stats.Stats, error) {
	endpoint := strings.TrimRight(baseURL, "/") + "/api/v1/stats"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d from %s", resp.StatusCode, endpoint)
	}

	var s stats.Stats
	if err := json.NewDecoder(resp.Body).Decode(&s); err != nil {
		return nil, fmt.Errorf("failed to decode statistics: %w", err)
	}
	return &s, nil
}

func printHumanReadable(s *stats.Stats) {
	fmt.Println("=== Skycast Statistics ===")
	fmt.Printf("Timestamp: %s\n", s.Timestamp.Format("2006-01-02 15:04:05"))
	fmt.Printf("Geocoder:  %s\n", s.Geocoder)
	fmt.Println()

	fmt.Println("--- Memory ---")
	fmt.Printf("Allocated:        %s\n", formatBytes(s.Memory.Alloc))
	fmt.Printf("Heap in use:      %s\n", formatBytes(s.Memory.HeapInuse))
	fmt.Printf("GC cycles:        %d\n", s.Memory.NumGC)
	fmt.Println()

	if s.Database != nil {
		fmt.Println("--- Gazetteer ---")
		fmt.Printf("Type:            %s\n", s.Database.Type)
		fmt.Printf("Size:            %s\n", formatBytes(uint64(s.Database.SizeBytes)))
		fmt.Printf("Countries:       %d\n", s.Database.CountriesCovered)
		for _, ts := range s.Database.TableStats {
			fmt.Printf("  %-12s: %10d rows\n", ts.Name, ts.RowCount)
		}
		fmt.Println()
	}

	fmt.Println("--- Runtime ---")
	fmt.Printf("Goroutines:      %d\n", s.Runtime.NumGoroutines)
	fmt.Printf("Uptime:          %ds\n", s.Runtime.UptimeSeconds)
}

func formatBytes(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
