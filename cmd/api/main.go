package main

import (
	"context"
	"errors"
	"fmt"
	"medicore/cmd/internal/config"
	"medicore/cmd/internal/domain/memory"
	"medicore/cmd/internal/domain/sqlite"
	"medicore/cmd/internal/domain/sqlite/repository"
	"medicore/cmd/internal/routes"
	"medicore/cmd/internal/service"
	"medicore/cmd/internal/utils/validators"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "medicore",
		Short:        "Hospital appointment scheduling API",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.DBDriver == config.DriverMemory {
				return errors.New("nothing to migrate for the memory driver")
			}

			// Init migrates before returning
			if _, err = sqlite.Init(cfg); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
			log.Infof("migrated %s database %s", cfg.DBDriver, cfg.DBDSN)
			return nil
		},
	}
}

func runServer() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	clock := service.SystemClock(loc)

	validate := validator.New()
	registerValidators(validate)

	// Getting repositories
	repos, err := openRepositories(cfg)
	if err != nil {
		return err
	}

	// Getting services
	patientService := service.NewPatientService(repos.Patients, validate, clock)
	doctorService := service.NewDoctorService(repos, validate, clock)
	departmentService := service.NewDepartmentService(repos, validate)
	apptService := service.NewAppointmentService(repos, validate, clock, cfg.StrictTransitions)
	dashboardService := service.NewDashboardService(repos, clock)

	// Getting routes
	r := &routes.Routes{
		Patients:     routes.NewPatientDefault(patientService),
		Doctors:      routes.NewDoctorDefault(doctorService),
		Departments:  routes.NewDepartmentDefault(departmentService),
		Appointments: routes.NewAppointmentDefault(apptService),
		Dashboard:    routes.NewDashboardDefault(dashboardService),
	}

	e := echo.New()
	e.HideBanner = true
	e.Logger.SetLevel(log.Level())

	e.Use(middleware.Recover())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Infof("%s %s %d %s id=%s", v.Method, v.URI, v.Status, v.Latency, v.RequestID)
			return nil
		},
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete},
	}))

	r.Register(e)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Infof("listening on :%s (store=%s, strict transitions=%t)", cfg.Port, cfg.DBDriver, cfg.StrictTransitions)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorf("failed to serve: %v", err)
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err = cfg.Validate(); err != nil {
		return nil, err
	}
	log.SetLevel(logLevel(cfg.LogLevel))
	return cfg, nil
}

func openRepositories(cfg *config.Config) (*service.Repositories, error) {
	if cfg.DBDriver == config.DriverMemory {
		log.Warnf("using the in-memory store, records are lost on exit")
		return &service.Repositories{
			Patients:     memory.NewPatientRepository(),
			Doctors:      memory.NewDoctorRepository(),
			Departments:  memory.NewDepartmentRepository(),
			Appointments: memory.NewAppointmentRepository(),
		}, nil
	}

	db, err := sqlite.Init(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return &service.Repositories{
		Patients:     repository.NewPatientRepository(db),
		Doctors:      repository.NewDoctorRepository(db),
		Departments:  repository.NewDepartmentRepository(db),
		Appointments: repository.NewAppointmentRepository(db),
	}, nil
}

func registerValidators(validate *validator.Validate) {
	validators.Register(validate)
}

func logLevel(s string) log.Lvl {
	switch strings.ToLower(s) {
	case "debug":
		return log.DEBUG
	case "warn":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	}
	return log.INFO
}
