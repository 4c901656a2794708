package main

import (
	"context"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/dvloznov/finance-twin/internal/api/handlers"
	"github.com/dvloznov/finance-twin/internal/api/middleware"
	"github.com/dvloznov/finance-twin/internal/finance"
	infraBQ "github.com/dvloznov/finance-twin/internal/infra/bigquery"
	"github.com/dvloznov/finance-twin/internal/logger"
	"github.com/dvloznov/finance-twin/internal/notify"
	"github.com/dvloznov/finance-twin/internal/repo"
	"github.com/dvloznov/finance-twin/internal/session"
)

func main() {
	var (
		port      = flag.String("port", "8080", "HTTP server port")
		project   = flag.String("project", os.Getenv("GCP_PROJECT"), "GCP project ID (or set GCP_PROJECT env)")
		dataset   = flag.String("dataset", os.Getenv("BQ_DATASET"), "BigQuery dataset ID (or set BQ_DATASET env)")
		userID    = flag.String("user-id", os.Getenv("DASHBOARD_USER_ID"), "Session user ID; empty runs the server unauthenticated on seed data")
		userEmail = flag.String("user-email", os.Getenv("DASHBOARD_USER_EMAIL"), "Session user email")
		userName  = flag.String("user-name", "", "Session user display name")
	)
	flag.Parse()

	log := logger.New()

	notionToken := os.Getenv("NOTION_API_TOKEN")
	notionDB := os.Getenv("NOTION_NOTIFICATIONS_DB")

	user := sessionUser(*userID, *userEmail, *userName)
	if user == nil {
		log.Warn().Msg("No session user configured - serving seed data, writes disabled")
	} else if *project == "" || *dataset == "" {
		log.Fatal().Msg("Authenticated sessions need --project and --dataset")
	}

	// Notification sinks: always log, additionally append to the Notion
	// audit database when configured.
	notifier := notify.Notifier(notify.NewLogNotifier(log))
	var notionNotifier *notify.NotionNotifier
	if notionToken != "" && notionDB != "" {
		notionNotifier = notify.NewNotionNotifier(notify.NewNotionPages(notionToken), notionDB, log)
		notifier = notify.NewMulti(notifier, notionNotifier)
	}

	factory := func(ctx context.Context, u *session.User) (repo.Repository, error) {
		if u == nil {
			return repo.NewSeedRepository(), nil
		}
		return infraBQ.NewRepository(ctx, infraBQ.Config{
			ProjectID: *project,
			DatasetID: *dataset,
		}, u.ID)
	}

	ctx := logger.WithContext(context.Background(), log)

	svc := finance.NewService(factory, notifier, log)
	if err := svc.Reload(ctx, user); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize dashboard service")
	}
	defer svc.Close()

	dashboard := handlers.NewDashboardHandler(svc, log)

	mux := http.NewServeMux()

	mux.HandleFunc("/api/summary", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			dashboard.Summary(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/session", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			dashboard.Session(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/transactions", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			dashboard.ListTransactions(w, r)
		case http.MethodPost:
			dashboard.AddTransaction(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/accounts", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			dashboard.ListAccounts(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/goals", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			dashboard.ListGoals(w, r)
		case http.MethodPost:
			dashboard.CreateGoal(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/goals/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
			return
		}
		// Path shape: /api/goals/{goalId}/progress
		rest := strings.TrimPrefix(r.URL.Path, "/api/goals/")
		goalID, action, ok := strings.Cut(rest, "/")
		if !ok || goalID == "" || action != "progress" {
			middleware.WriteError(w, http.StatusNotFound, "Not found")
			return
		}
		dashboard.UpdateGoalProgress(w, r, goalID)
	})

	mux.HandleFunc("/api/budgets", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			dashboard.ListBudgets(w, r)
		} else {
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/api/scenarios", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			dashboard.ListScenarios(w, r)
		case http.MethodPost:
			dashboard.RunScenario(w, r)
		default:
			middleware.WriteError(w, http.StatusMethodNotAllowed, "Method not allowed")
		}
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	handler := middleware.Recovery(log)(
		middleware.Logger(log)(
			middleware.RequestID(
				middleware.CORS(
					middleware.Session(session.NewStatic(user))(mux),
				),
			),
		),
	)

	server := &http.Server{
		Addr:         ":" + *port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", *port).Msg("Starting dashboard API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	if notionNotifier != nil {
		if err := notionNotifier.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to drain notification queue")
		}
	}

	log.Info().Msg("Server exited")
}

// sessionUser builds the configured identity, or nil when no user ID is set.
func sessionUser(id, email, name string) *session.User {
	if id == "" {
		return nil
	}
	return &session.User{ID: id, Email: email, Name: name}
}
