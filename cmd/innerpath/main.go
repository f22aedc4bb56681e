package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mattn/go-isatty"

	"github.com/innerpath-app/innerpath/internal/cli"
	"github.com/innerpath-app/innerpath/internal/cli/formatter"
	"github.com/innerpath-app/innerpath/internal/db"
	"github.com/innerpath-app/innerpath/internal/llm"
	"github.com/innerpath-app/innerpath/internal/mentor"
	"github.com/innerpath-app/innerpath/internal/notify"
	"github.com/innerpath-app/innerpath/internal/repository"
	"github.com/innerpath-app/innerpath/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.innerpath/innerpath.db
	dbPath := os.Getenv("INNERPATH_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".innerpath", "innerpath.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	goalRepo := repository.NewSQLiteGoalRepo(database)
	taskRepo := repository.NewSQLiteSubTaskRepo(database)
	slotRepo := repository.NewSQLiteSlotRepo(database)
	profileRepo := repository.NewSQLiteProfileRepo(database)
	recordRepo := repository.NewSQLiteRecordRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	notifier := notify.NewWriterNotifier(os.Stdout)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if os.Getenv("INNERPATH_DEBUG") == "true" {
		observer = service.NewLogUseCaseObserver(os.Stderr)
	}

	profileSvc := service.NewProfileService(profileRepo)

	app := &cli.App{
		Goals:     service.NewGoalService(goalRepo, taskRepo, uow),
		Timetable: service.NewTimetableService(slotRepo, uow),
		Tick:      service.NewTickService(uow, notifier, observer),
		Profile:   profileSvc,
		Status:    service.NewStatusService(goalRepo, taskRepo, slotRepo, profileRepo, recordRepo),
		Notifier:  notifier,
	}

	// Detect interactive terminal for forms and the focus view.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Wire mentor services (only when LLM is enabled)
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var llmObserver llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			llmObserver = llm.NewLogObserver(os.Stderr)
		}
		llmClient := llm.NewOllamaClient(llmCfg, llmObserver)

		app.Breakdown = mentor.NewBreakdownService(llmClient, llmObserver)
		app.Chat = mentor.NewChatService(llmClient, llmObserver)
		app.Briefing = mentor.NewBriefingService(llmClient, llmObserver)
		app.Suggest = mentor.NewSuggestService(llmClient, llmObserver)
	}

	// Apply streak decay for days away and pick up the saved theme
	// before anything renders.
	ctx := context.Background()
	if _, err := profileSvc.SyncOnOpen(ctx, time.Now()); err != nil {
		return fmt.Errorf("syncing profile: %w", err)
	}
	if profile, err := profileSvc.Get(ctx); err == nil {
		formatter.SetTheme(profile.Theme)
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
