// Package di builds the dependency graph shared by the binaries.
package di

import (
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/trezcool/funil/apps/api/echo"
	"github.com/trezcool/funil/apps/shared"
	"github.com/trezcool/funil/core"
	"github.com/trezcool/funil/core/account"
	"github.com/trezcool/funil/core/contact"
	"github.com/trezcool/funil/core/lead"
	"github.com/trezcool/funil/core/opportunity"
	"github.com/trezcool/funil/core/proposal"
	"github.com/trezcool/funil/core/student"
	"github.com/trezcool/funil/core/task"
	logsvc "github.com/trezcool/funil/services/logger"
	metricsvc "github.com/trezcool/funil/services/metrics"
	inmemdb "github.com/trezcool/funil/storage/database/inmem"
	"github.com/trezcool/funil/storage/seed"
)

// Services are the domain services built on one store.
type Services struct {
	dig.In

	Opportunities *opportunity.Service
	Proposals     *proposal.Service
	Leads         *lead.Service
	Accounts      *account.Service
	Contacts      *contact.Service
	Students      *student.Service
	Tasks         *task.Service
}

// New returns a container providing every dependency from `conf`.
// A nil logger stands for the rollbar logger writing to stdout.
func New(conf *core.Config, logger core.Logger) (*dig.Container, error) {
	c := dig.New()
	if logger == nil {
		logger = newLogger(conf)
	}

	providers := []interface{}{
		func() *core.Config { return conf },
		func() core.Logger { return logger },
		newValidator,
		newDB,
		newMetrics,
		func(m *metricsvc.PrometheusMetrics, conf *core.Config) core.Metrics {
			if !conf.Metrics.Enabled {
				return core.NopMetrics()
			}
			return m
		},
		newOpportunityService,
		newProposalService,
		newLeadService,
		newAccountService,
		newContactService,
		newStudentService,
		newTaskService,
		newServer,
	}
	for _, p := range providers {
		if err := c.Provide(p); err != nil {
			return nil, errors.Wrap(err, "providing dependency")
		}
	}
	return c, nil
}

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "FUNIL : ", log.LstdFlags|log.Lmicroseconds)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	logger.Enable(!conf.Debug && conf.RollbarToken != "")
	return logger
}

func newValidator() (*validator.Validate, ut.Translator) {
	return shared.NewValidator()
}

// newDB opens the store and loads the configured seed dataset into it.
func newDB(conf *core.Config, validate *validator.Validate, logger core.Logger) (*inmemdb.DB, error) {
	db := inmemdb.Open()
	ds, err := seed.Load(conf.Seed.Path)
	if err != nil {
		return nil, errors.Wrap(err, "loading seed dataset")
	}
	if err = seed.Apply(db, ds, validate, logger); err != nil {
		return nil, errors.Wrap(err, "seeding store")
	}
	return db, nil
}

func newMetrics(conf *core.Config, db *inmemdb.DB) *metricsvc.PrometheusMetrics {
	return metricsvc.NewPrometheusMetrics(conf.AppName, db.Counts)
}

func newOpportunityService(db *inmemdb.DB, logger core.Logger, metrics core.Metrics) *opportunity.Service {
	return opportunity.NewService(inmemdb.NewOpportunityRepository(db), logger, metrics)
}

func newProposalService(
	db *inmemdb.DB,
	opportunities *opportunity.Service,
	contacts *contact.Service,
	logger core.Logger,
	metrics core.Metrics,
) *proposal.Service {
	return proposal.NewService(inmemdb.NewProposalRepository(db), opportunities, contacts, logger, metrics)
}

func newLeadService(db *inmemdb.DB, logger core.Logger, metrics core.Metrics) *lead.Service {
	return lead.NewService(inmemdb.NewLeadRepository(db), logger, metrics)
}

func newAccountService(db *inmemdb.DB, contacts *contact.Service, metrics core.Metrics) *account.Service {
	return account.NewService(inmemdb.NewAccountRepository(db), contacts, metrics)
}

func newContactService(db *inmemdb.DB, metrics core.Metrics) *contact.Service {
	return contact.NewService(inmemdb.NewContactRepository(db), metrics)
}

func newStudentService(db *inmemdb.DB, metrics core.Metrics) *student.Service {
	return student.NewService(inmemdb.NewStudentRepository(db), metrics)
}

func newTaskService(
	db *inmemdb.DB,
	accounts *account.Service,
	contacts *contact.Service,
	opportunities *opportunity.Service,
	leads *lead.Service,
	metrics core.Metrics,
) *task.Service {
	return task.NewService(inmemdb.NewTaskRepository(db), map[string]task.NameFinder{
		task.RelatedAccount: func(id string) (string, bool) {
			a, ok := accounts.GetByID(id)
			return a.Name, ok
		},
		task.RelatedContact: func(id string) (string, bool) {
			c, ok := contacts.GetByID(id)
			return c.Name, ok
		},
		task.RelatedOpportunity: func(id string) (string, bool) {
			c, _, ok := opportunities.GetByID(id)
			return c.Name, ok
		},
		task.RelatedLead: func(id string) (string, bool) {
			c, _, ok := leads.GetByID(id)
			return c.Name, ok
		},
	}, metrics)
}

type serverParams struct {
	dig.In
	Services

	Conf       *core.Config
	Logger     core.Logger
	Validate   *validator.Validate
	Translator ut.Translator
	Metrics    *metricsvc.PrometheusMetrics
}

func newServer(p serverParams) *echoapi.Server {
	deps := echoapi.ServerDeps{
		Conf:           p.Conf,
		Logger:         p.Logger,
		OpportunitySvc: p.Opportunities,
		ProposalSvc:    p.Proposals,
		LeadSvc:        p.Leads,
		AccountSvc:     p.Accounts,
		ContactSvc:     p.Contacts,
		StudentSvc:     p.Students,
		TaskSvc:        p.Tasks,
		Validate:       p.Validate,
		Translator:     p.Translator,
	}
	if p.Conf.Metrics.Enabled {
		deps.MetricsHandler = p.Metrics.Handler()
	}
	return echoapi.NewServer(deps)
}
