package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/martijn/roster/internal/core/domain"
	"github.com/martijn/roster/internal/core/notify"
	"github.com/martijn/roster/internal/core/service"
	"github.com/martijn/roster/internal/infrastructure/database"
	"github.com/martijn/roster/pkg/config"
	"github.com/martijn/roster/pkg/logger"
)

// app carries what PersistentPreRunE loaded for the running command.
type app struct {
	cfgFile string
	cfg     *config.Config
	log     zerolog.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	a := &app{log: logger.Nop()}

	rootCmd := &cobra.Command{
		Use:   "roster",
		Short: "Roster - client and employee records",
		Long: `Roster keeps a small register of clients (organization and project)
and the employees assigned to them.

It provides:
- Adding, editing, listing and removing clients
- Adding, editing, listing and removing employees
- Listing the employees of one client
- SQLite (default) or PostgreSQL storage`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip config loading for commands that don't need it
			if cmd.Name() == "help" {
				return nil
			}

			cfg, err := config.Load(a.cfgFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			a.cfg = cfg
			a.log = logger.New(cfg.LogLevel, cfg.LogFormat, cmd.ErrOrStderr())

			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.cfgFile, "config", "", "config file (default is ./roster.yml)")

	rootCmd.AddCommand(newClientsCmd(a))
	rootCmd.AddCommand(newEmployeesCmd(a))

	return rootCmd
}

// Execute runs the root command
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// Services holds all initialized services
type Services struct {
	DB              *database.DB
	ClientService   *service.ClientService
	EmployeeService *service.EmployeeService
	ClientChanges   *notify.Notifier
	EmployeeChanges *notify.Notifier
	Editor          *service.Editor
}

// initServices opens the store and wires the core for one command.
func (a *app) initServices(ctx context.Context) (*Services, error) {
	db, err := database.New(database.Driver(a.cfg.DBDriver), a.cfg.DBDSN)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	clientRepo := database.NewClientRepository(db)
	employeeRepo := database.NewEmployeeRepository(db)

	clientService := service.NewClientService(clientRepo, a.log)
	employeeService := service.NewEmployeeService(employeeRepo, a.log)

	clientChanges := notify.NewNotifier(a.log)
	employeeChanges := notify.NewNotifier(a.log)

	editor := service.NewEditor(clientService, employeeService, clientChanges, employeeChanges, a.log)

	// Every change is logged, independent of which views are open
	changeLog := notify.ListenerFunc(func(ctx context.Context, event notify.Event) error {
		a.log.Info().
			Str("event_id", event.ID.String()).
			Str("kind", string(event.Kind)).
			Str("op", string(event.Op)).
			Int64("id", event.EntityID).
			Msg("record changed")
		return nil
	})
	clientChanges.Subscribe(changeLog)
	employeeChanges.Subscribe(changeLog)

	a.log.Debug().
		Str("driver", string(db.Driver())).
		Str("config", a.cfg.ConfigPath).
		Msg("store opened")

	return &Services{
		DB:              db,
		ClientService:   clientService,
		EmployeeService: employeeService,
		ClientChanges:   clientChanges,
		EmployeeChanges: employeeChanges,
		Editor:          editor,
	}, nil
}

// Close closes all resources
func (s *Services) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}

func kindLabel(kind domain.Kind) string {
	switch kind {
	case domain.KindClient:
		return "Client"
	case domain.KindEmployee:
		return "Employee"
	default:
		return string(kind)
	}
}
