package cli

import (
	"github.com/marllondevsec/store-pos/internal/catalog"
	"github.com/marllondevsec/store-pos/internal/config"
	"github.com/marllondevsec/store-pos/internal/ledger"
	"github.com/marllondevsec/store-pos/internal/mailer"
	"github.com/marllondevsec/store-pos/internal/outbox"
	"github.com/marllondevsec/store-pos/internal/report"
	"github.com/marllondevsec/store-pos/internal/session"
)

// App wires the components over one workspace directory. Commands
// build a fresh App per invocation; state lives in the files, not here.
type App struct {
	Config   *config.Config
	Session  *session.Tracker
	Ledger   *ledger.Ledger
	Reporter *report.Reporter
	Outbox   *outbox.Outbox
	Sender   mailer.Sender
}

// newApp resolves the workspace at opts.Dir and constructs the
// component graph, creating the log and outbox directories if missing.
func newApp(opts *RootOptions) (*App, error) {
	cfg, err := config.Load(opts.Dir)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load workspace", err)
	}
	if err := cfg.EnsureDirs(); err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to prepare workspace", err)
	}

	lg := ledger.New(cfg.LogDir, cfg.StoreName)
	tr := session.New(cfg.SessionFile, cfg.StoreName)
	rp := report.New(lg)
	ob := outbox.New(cfg.OutboxDir)
	if opts.Now != nil {
		lg.Now = opts.Now
		tr.Now = opts.Now
		rp.Now = opts.Now
		ob.Now = opts.Now
	}

	sender := opts.Sender
	if sender == nil {
		sender = mailer.SMTPSender{}
	}

	return &App{
		Config:   cfg,
		Session:  tr,
		Ledger:   lg,
		Reporter: rp,
		Outbox:   ob,
		Sender:   sender,
	}, nil
}

// LoadCatalog reads the current product catalog from disk. Catalog
// state is re-read per operation; the file is the source of truth.
func (a *App) LoadCatalog() (*catalog.Catalog, error) {
	c, err := catalog.Load(a.Config.ProductsFile)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to load catalog", err)
	}
	return c, nil
}

// EmailConfig reads the current email configuration from disk.
func (a *App) EmailConfig() config.EmailConfig {
	return config.LoadEmailConfig(a.Config.EmailConfigFile)
}

// sessionDate returns the date sales and totals apply to: the current
// session record's date when one exists, otherwise today.
func (a *App) sessionDate() string {
	if rec, err := a.Session.Current(); err == nil && rec != nil {
		return rec.Date
	}
	return a.Session.Today()
}
