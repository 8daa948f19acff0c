package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/registry"
	"github.com/sells-group/outreach-cli/internal/routing"
	"github.com/sells-group/outreach-cli/internal/store"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start webhook server for routing requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		st, err := initStore(ctx)
		if err != nil {
			return eris.Wrap(err, "serve: init store")
		}
		defer st.Close() //nolint:errcheck

		roster, err := loadRoster(ctx, routing.DefaultRules)
		if err != nil {
			return eris.Wrap(err, "serve: load roster")
		}

		r := chi.NewRouter()
		r.Use(middleware.RequestID)
		r.Use(middleware.Recoverer)
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST"},
			AllowedHeaders: []string{"Content-Type"},
		}))

		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		r.Post("/webhook/route", func(w http.ResponseWriter, req *http.Request) {
			var body struct {
				CSV    string `json:"csv"`
				Output string `json:"output"`
			}
			if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
				return
			}
			if body.CSV == "" {
				writeJSON(w, http.StatusBadRequest, map[string]string{"error": "csv is required"})
				return
			}
			if body.Output == "" {
				body.Output = "contacts-routed.csv"
			}

			runID := startRun(ctx, st, "route", body.CSV)

			// Run routing asynchronously; poll GET /runs/{id} for the outcome.
			go runRouting(ctx, st, roster, runID, body.CSV, body.Output)

			writeJSON(w, http.StatusAccepted, map[string]string{
				"status": "accepted",
				"run_id": runID,
			})
		})

		r.Get("/runs/{id}", func(w http.ResponseWriter, req *http.Request) {
			run, err := st.GetRun(req.Context(), chi.URLParam(req, "id"))
			if err != nil {
				writeJSON(w, http.StatusNotFound, map[string]string{"error": "run not found"})
				return
			}
			writeJSON(w, http.StatusOK, run)
		})

		port := servePort
		if port == 0 {
			port = cfg.Server.Port
		}

		srv := &http.Server{
			Addr:    fmt.Sprintf(":%d", port),
			Handler: r,
		}

		// Graceful shutdown
		go func() {
			<-ctx.Done()
			zap.L().Info("shutting down server")
			_ = srv.Shutdown(context.Background())
		}()

		zap.L().Info("starting server", zap.Int("port", port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return eris.Wrap(err, "server listen")
		}

		return nil
	},
}

// runRouting executes one routing run end to end for the webhook.
func runRouting(ctx context.Context, st store.Store, roster *registry.Config, runID, source, output string) {
	contacts, err := loadContacts(ctx, source)
	if err != nil {
		zap.L().Error("webhook routing failed", zap.String("csv", source), zap.Error(err))
		finishRun(ctx, st, runID, &model.RunResult{Error: err.Error()})
		return
	}

	router := routing.New(routing.Config{
		Rules:   routing.DefaultRules,
		Senders: roster.Senders,
		Roster:  roster.Roster,
		HighICP: cfg.ICP.High,
	})
	for _, c := range contacts {
		if c.InSequence {
			router.SeedSequence(c.ID)
		}
	}
	routed := router.RouteAll(contacts)

	assigned, flagged := 0, 0
	for _, c := range routed {
		if c.RoutingStatus == model.RoutingAssigned {
			assigned++
		}
		if c.LeadershipReview {
			flagged++
		}
	}

	if err := writeContacts(output, routed); err != nil {
		zap.L().Error("webhook routing failed", zap.String("csv", source), zap.Error(err))
		finishRun(ctx, st, runID, &model.RunResult{ContactsIn: len(contacts), Error: err.Error()})
		return
	}

	finishRun(ctx, st, runID, &model.RunResult{
		ContactsIn:  len(contacts),
		ContactsOut: assigned,
		Flagged:     flagged,
		Output:      output,
	})
	zap.L().Info("webhook routing complete",
		zap.String("run_id", runID),
		zap.Int("assigned", assigned),
	)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	rootCmd.AddCommand(serveCmd)
}
