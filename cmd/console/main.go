package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/alexivanou/skycast/internal/config"
	applog "github.com/alexivanou/skycast/internal/logger"
	"github.com/alexivanou/skycast/internal/model"
	"github.com/alexivanou/skycast/internal/provider"
	"github.com/alexivanou/skycast/internal/service"
	"github.com/alexivanou/skycast/internal/suggest"
	"github.com/alexivanou/skycast/internal/view"
	"go.uber.org/zap"
)

const help = `Type to search; every line replaces the input text.
Commands: /down /up /enter /esc /click /pick N /submit /quit`

// weatherLoader runs the weather flow and prints the result
type weatherLoader struct {
	svc    service.ServiceInterface
	out    *view.Console
	logger *zap.Logger
}

func (l *weatherLoader) Load(ctx context.Context, target model.WeatherTarget) {
	dashboard, err := l.svc.Dashboard(ctx, target)
	if err != nil {
		l.logger.Error("Failed to load weather", zap.String("location", target.Location), zap.Error(err))
		l.out.RenderNotFound()
		return
	}
	l.out.RenderDashboard(dashboard)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// console output belongs to the dashboard; logs go to stderr at warn
	cfg.Log.Development = true
	if cfg.Log.Level == "info" {
		cfg.Log.Level = "warn"
	}
	logger, err := applog.New(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	client := provider.NewClient(cfg.Provider.BaseURL, cfg.Provider.Timeout)
	svc := service.NewService(client, client, cfg.Dashboard, logger)
	out := view.NewConsole(os.Stdout)
	loader := &weatherLoader{svc: svc, out: out, logger: logger}

	opts := suggest.Options{
		Debounce:       cfg.Dashboard.Debounce,
		MinQueryLength: cfg.Dashboard.MinQueryLength,
		DefaultCountry: cfg.Dashboard.DefaultCountry,
	}
	box := suggest.NewSearchBox(client, loader, out, opts, logger)
	defer box.Close()

	if target, err := svc.DefaultTarget(); err == nil {
		loader.Load(context.Background(), target)
	}

	fmt.Println(help)
	run(os.Stdin, box)
}

func run(in io.Reader, box *suggest.SearchBox) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "/") {
			box.Type(line)
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "/down":
			box.Key(suggest.KeyDown)
		case "/up":
			box.Key(suggest.KeyUp)
		case "/enter":
			box.Key(suggest.KeyEnter)
		case "/esc":
			box.Key(suggest.KeyEscape)
		case "/click":
			box.ClickOutside()
		case "/submit":
			box.Submit()
		case "/pick":
			if len(fields) < 2 {
				fmt.Println("usage: /pick N")
				continue
			}
			n, err := strconv.Atoi(fields[1])
			if err != nil || !box.Pick(n-1) {
				fmt.Println("no such suggestion")
			}
		case "/quit":
			return
		default:
			fmt.Println(help)
		}
	}
}
