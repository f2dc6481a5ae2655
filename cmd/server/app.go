// cmd/server/app.go
package main

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/inteligenciarte/luxurystudio/internal/api/booking"
	"github.com/inteligenciarte/luxurystudio/internal/api/landing"
	domain "github.com/inteligenciarte/luxurystudio/internal/booking"
	"github.com/inteligenciarte/luxurystudio/internal/catalog"
	"github.com/inteligenciarte/luxurystudio/internal/config"
	appdb "github.com/inteligenciarte/luxurystudio/internal/db"
	"github.com/inteligenciarte/luxurystudio/internal/email"
	"github.com/inteligenciarte/luxurystudio/internal/ratelimit"
	"github.com/inteligenciarte/luxurystudio/internal/scheduler"
	"github.com/inteligenciarte/luxurystudio/internal/session"
)

// app holds the long-lived resources behind the handlers.
type app struct {
	sessions *session.Store
	limiter  *ratelimit.Limiter
	database *appdb.DB
	closed   bool
}

// newApp wires the booking components and registers the scheduled jobs.
// The scheduler must be initialized first.
func newApp(cfg *config.Config) (*app, error) {
	cat := catalog.Default()
	a := &app{}

	a.sessions = session.NewStore(session.Config{
		TTL: cfg.SessionTTL(),
		NewController: func() *domain.Controller {
			return domain.NewController(cat, cfg.Studio.Phone)
		},
	})
	if err := scheduler.RegisterSessionSweepJob(a.sessions, cfg.Session.SweepCron); err != nil {
		return nil, fmt.Errorf("register session sweep: %w", err)
	}

	a.limiter = ratelimit.New(&ratelimit.Config{
		SubmitCooldown:   time.Duration(cfg.RateLimit.SubmitCooldownSeconds) * time.Second,
		SubmitMaxPerHour: cfg.RateLimit.SubmitMaxPerHour,
	})

	deps := booking.Dependencies{
		Catalog:      cat,
		Sessions:     a.sessions,
		Limiter:      a.limiter,
		TrustProxy:   cfg.App.TrustProxy,
		SecureCookie: !cfg.IsDevelopment(),
	}

	if cfg.Leads.Enabled {
		database, err := appdb.New(cfg.Leads.Filename)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("open leads database: %w", err)
		}
		a.database = database
		deps.Leads = database
		if cfg.Leads.RetentionDays > 0 {
			if err := scheduler.RegisterLeadRetentionJob(database, cfg.LeadRetention(), cfg.Leads.RetentionCron); err != nil {
				a.Close()
				return nil, fmt.Errorf("register lead retention: %w", err)
			}
		}
		log.Info().Str("filename", cfg.Leads.Filename).Int("retention_days", cfg.Leads.RetentionDays).Msg("Lead log enabled")
	}

	if cfg.Email.Enabled {
		client, err := email.NewSESClient(cfg.Email.AccessKeyID, cfg.Email.SecretAccessKey, cfg.Email.Region, cfg.Email.Sender)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("create ses client: %w", err)
		}
		deps.Notifier = email.NewNotifier(client, cfg.Email.Recipient, cfg.Studio.Name)
		log.Info().Str("recipient", cfg.Email.Recipient).Msg("Lead email enabled")
	}

	booking.InitHandlers(deps)
	landing.InitHandlers(landing.Dependencies{
		Config:   cfg,
		Catalog:  cat,
		Sessions: a.sessions,
	})
	return a, nil
}

func (a *app) Close() {
	if a.closed {
		return
	}
	a.closed = true
	if a.limiter != nil {
		a.limiter.Close()
	}
	if a.database != nil {
		if err := a.database.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close leads database")
		}
	}
}
