package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/funil/core"
	"github.com/trezcool/funil/core/account"
	"github.com/trezcool/funil/core/contact"
	"github.com/trezcool/funil/core/lead"
	"github.com/trezcool/funil/core/opportunity"
	"github.com/trezcool/funil/core/proposal"
	"github.com/trezcool/funil/core/student"
	"github.com/trezcool/funil/core/task"
)

type (
	ServerDeps struct {
		Conf   *core.Config
		Logger core.Logger

		OpportunitySvc *opportunity.Service
		ProposalSvc    *proposal.Service
		LeadSvc        *lead.Service
		AccountSvc     *account.Service
		ContactSvc     *contact.Service
		StudentSvc     *student.Service
		TaskSvc        *task.Service

		Validate   *validator.Validate
		Translator ut.Translator

		// MetricsHandler is mounted on /metrics when set.
		MetricsHandler http.Handler
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator)
	s.app.Debug = conf.Debug

	s.app.GET("/", s.home)
	if s.deps.MetricsHandler != nil {
		s.app.GET("/metrics", echo.WrapHandler(s.deps.MetricsHandler))
	}

	g := s.app.Group("/api")
	registerOpportunityAPI(g, s.deps.OpportunitySvc, s.deps.ProposalSvc, s.deps.Validate)
	registerProposalAPI(g, s.deps.ProposalSvc, s.deps.Validate)
	registerLeadAPI(g, s.deps.LeadSvc, s.deps.Validate)
	registerAccountAPI(g, s.deps.AccountSvc, s.deps.Validate)
	registerContactAPI(g, s.deps.ContactSvc, s.deps.Validate)
	registerStudentAPI(g, s.deps.StudentSvc, s.deps.Validate)
	registerTaskAPI(g, s.deps.TaskSvc, s.deps.Validate)
}

// Start blocks serving requests; a listener failure is reported on Errors.
func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.deps.Conf.AppName+" API!")
}
