package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"reels-dash-go/pkg/cli"
	"reels-dash-go/pkg/cli/client"
	"reels-dash-go/pkg/cli/logger"
	"reels-dash-go/pkg/config"
	"reels-dash-go/pkg/models"
	"reels-dash-go/pkg/utils"

	"github.com/joho/godotenv"
)

func main() {
	var (
		// Jobs
		jobsMode     = flag.Bool("jobs", false, "List jobs")
		statusFilter = flag.String("status-filter", "", "Filter jobs by status (queued, processing, completed, failed, cancelled)")
		limit        = flag.Int("limit", 0, "Page size for --jobs and --results")
		offset       = flag.Int("offset", 0, "Page offset for --jobs and --results")
		jobID        = flag.String("job", "", "Show a job by id")
		createMode   = flag.Bool("create", false, "Create a job (use with --name and --urls)")
		name         = flag.String("name", "", "Job name for --create")
		urls         = flag.String("urls", "", "Comma or newline separated profile URLs")
		targetDate   = flag.String("target-date", "", "Target date for --create (YYYY-MM-DD)")
		concurrency  = flag.Int("concurrency", 0, "Concurrency for --create")
		mode         = flag.String("mode", "", "Extraction mode for --create (profile, main, comprehensive)")
		cancelID     = flag.String("cancel", "", "Cancel or remove a job by id")

		// Results
		resultsMode  = flag.Bool("results", false, "List results (use --job or --profile-url to filter)")
		profileURL   = flag.String("profile-url", "", "Filter --results by profile URL")
		resultID     = flag.String("result", "", "Show a result by profile id")
		exportID     = flag.String("export", "", "Export a job's results through the API")
		exportResult = flag.String("export-result", "", "Save a single result locally")
		exportFormat = flag.String("format", "json", "Export format (json or csv)")
		outPath      = flag.String("out", "", "Export destination ('-' for stdout)")

		// Monitoring
		statsMode     = flag.Bool("stats", false, "Show aggregate statistics")
		apiStatusMode = flag.Bool("api-status", false, "Show API status")
		healthMode    = flag.Bool("health", false, "Show monitoring health")
		logsMode      = flag.Bool("logs", false, "Show recent server logs")
		serverConfig  = flag.Bool("server-config", false, "Show the scraping service's configuration")
		watchMode     = flag.Bool("watch", false, "Poll status and stats until interrupted")
		interval      = flag.Duration("interval", 0, "Polling interval for --watch")

		validateInput = flag.String("validate", "", "Validate comma separated profile URLs")

		// Config commands
		configShow = flag.Bool("config-show", false, "Show current configuration")
		configSet  = flag.String("config-set", "", "Set a config value (format: section.key=value)")
		apiURL     = flag.String("api-url", "", "Override the API base URL")
	)
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *apiURL != "" {
		cfg.API.BaseURL = *apiURL
	}

	if err := logger.Init(cfg.Log.Dir, cfg.Log.Level); err != nil {
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
	}
	defer logger.CloseLog()

	app := cli.NewApp(cfg)

	// Config commands never touch the network
	if *configShow {
		exitOn(app.ShowConfig())
		return
	}
	if *configSet != "" {
		exitOn(app.SetConfig(*configSet))
		fmt.Println("Configuration updated successfully")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	format, ok := client.ParseExportFormat(*exportFormat)
	if !ok {
		exitOn(fmt.Errorf("invalid format %q: want json or csv", *exportFormat))
	}

	switch {
	case *createMode:
		exitOn(app.CreateJob(ctx, models.CreateJobParams{
			JobName:        strings.TrimSpace(*name),
			ProfileURLs:    utils.ParseURLList(*urls),
			TargetDate:     *targetDate,
			Concurrency:    *concurrency,
			ExtractionMode: models.ExtractionMode(*mode),
		}))
	case *cancelID != "":
		exitOn(app.CancelJob(ctx, *cancelID))
	case *exportID != "":
		exitOn(app.ExportJob(ctx, *exportID, format, *outPath))
	case *exportResult != "":
		exitOn(app.ExportResult(ctx, *exportResult, format, *outPath))
	case *resultsMode:
		exitOn(app.ListResults(ctx, models.ListResultsParams{JobID: *jobID, ProfileURL: strings.TrimSpace(*profileURL), Limit: *limit, Offset: *offset}))
	case *resultID != "":
		exitOn(app.ShowResult(ctx, *resultID))
	case *jobID != "":
		exitOn(app.ShowJob(ctx, *jobID))
	case *jobsMode:
		exitOn(app.ListJobs(ctx, models.ListJobsParams{Status: models.JobStatus(*statusFilter), Limit: *limit, Offset: *offset}))
	case *statsMode:
		exitOn(app.ShowStats(ctx))
	case *apiStatusMode:
		exitOn(app.ShowStatus(ctx))
	case *healthMode:
		exitOn(app.ShowHealth(ctx))
	case *logsMode:
		exitOn(app.ShowLogs(ctx, cfg.Dashboard.LogLines))
	case *serverConfig:
		exitOn(app.ShowServerConfig(ctx))
	case *validateInput != "":
		exitOn(app.ValidateProfiles(ctx, *validateInput))
	case *watchMode:
		exitOn(app.Watch(ctx, *interval))
	default:
		// Interactive dashboard
		exitOn(app.Run())
	}
}

func exitOn(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %s\n", client.UserMessage(err))
	logger.CloseLog()
	os.Exit(1)
}
