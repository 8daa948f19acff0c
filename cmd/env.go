package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/k-capehart/go-salesforce/v3"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/outreach-cli/internal/contactcsv"
	"github.com/sells-group/outreach-cli/internal/fetcher"
	"github.com/sells-group/outreach-cli/internal/model"
	"github.com/sells-group/outreach-cli/internal/registry"
	"github.com/sells-group/outreach-cli/internal/store"
	"github.com/sells-group/outreach-cli/pkg/notion"
	sfpkg "github.com/sells-group/outreach-cli/pkg/salesforce"
)

func initStore(ctx context.Context) (store.Store, error) {
	var (
		st  store.Store
		err error
	)
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "outreach.db"
		}
		st, err = store.NewSQLite(dsn)
	case "postgres":
		st, err = store.NewPostgres(ctx, cfg.Store.DatabaseURL, nil)
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}
	return st, nil
}

func initSalesforce() (sfpkg.Client, error) {
	if cfg.Salesforce.ClientID == "" {
		return nil, eris.New("salesforce client ID is required (OUTREACH_SALESFORCE_CLIENT_ID)")
	}

	pemData, err := os.ReadFile(cfg.Salesforce.KeyPath)
	if err != nil {
		return nil, eris.Wrap(err, "read salesforce JWT private key")
	}

	sf, err := salesforce.Init(salesforce.Creds{
		Domain:         cfg.Salesforce.LoginURL,
		Username:       cfg.Salesforce.Username,
		ConsumerKey:    cfg.Salesforce.ClientID,
		ConsumerRSAPem: string(pemData),
	})
	if err != nil {
		return nil, eris.Wrap(err, "init salesforce")
	}

	return sfpkg.NewClient(sf, sfpkg.WithRateLimit(cfg.Salesforce.RateLimit)), nil
}

// loadRoster resolves the configured roster source and validates the
// pools against the routing rules before any leads are assigned.
func loadRoster(ctx context.Context, rules map[model.SeniorityTier]model.RouteRule) (*registry.Config, error) {
	var source string
	switch cfg.Routing.RosterSource {
	case "", "fixture":
		source = ""
	case "file":
		source = cfg.Routing.RosterPath
	case "notion":
		source = "notion:" + cfg.Notion.RosterDB
	default:
		return nil, eris.Errorf("unsupported roster source: %s", cfg.Routing.RosterSource)
	}

	var client notion.Client
	if cfg.Notion.Token != "" {
		client = notion.NewClient(cfg.Notion.Token)
	}

	roster, err := registry.Load(ctx, source, client)
	if err != nil {
		return nil, err
	}
	if err := registry.Validate(roster, rules); err != nil {
		return nil, err
	}
	return roster, nil
}

// loadContacts fetches a contact list (local path, http(s):// or
// ftp:// URL) and parses it as CSV or XLSX by extension.
func loadContacts(ctx context.Context, source string) ([]model.Contact, error) {
	dir, err := os.MkdirTemp("", "outreach-fetch-")
	if err != nil {
		return nil, eris.Wrap(err, "create fetch dir")
	}
	defer os.RemoveAll(dir) //nolint:errcheck

	path, err := fetcher.Fetch(ctx, source, dir)
	if err != nil {
		return nil, err
	}

	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		rows, err := fetcher.ReadXLSX(path, fetcher.XLSXOptions{})
		if err != nil {
			return nil, err
		}
		return contactcsv.FromRows(rows)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open %s", path)
	}
	defer f.Close() //nolint:errcheck

	return contactcsv.Read(f)
}

func writeContacts(path string, contacts []model.Contact) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "create %s", path)
	}
	defer f.Close() //nolint:errcheck

	if err := contactcsv.Write(f, contacts); err != nil {
		return err
	}
	zap.L().Info("wrote contacts", zap.String("path", path), zap.Int("contacts", len(contacts)))
	return nil
}

// startRun records a pipeline stage execution and marks it running.
func startRun(ctx context.Context, st store.Store, stage, input string) string {
	run, err := st.CreateRun(ctx, stage, input)
	if err != nil {
		zap.L().Warn("create run record failed", zap.String("stage", stage), zap.Error(err))
		return ""
	}
	if err := st.UpdateRunStatus(ctx, run.ID, model.RunStatusRunning); err != nil {
		zap.L().Warn("update run status failed", zap.String("run_id", run.ID), zap.Error(err))
	}
	return run.ID
}

// finishRun stores the run outcome. A non-empty result.Error marks the
// run failed. Run-history failures are logged, never fatal.
func finishRun(ctx context.Context, st store.Store, runID string, result *model.RunResult) {
	if runID == "" {
		return
	}
	if err := st.UpdateRunResult(ctx, runID, result); err != nil {
		zap.L().Warn("update run result failed", zap.String("run_id", runID), zap.Error(err))
	}
}
