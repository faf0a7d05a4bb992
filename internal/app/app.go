package app

import (
	"os"

	"github.com/per2jensen/clonepulse/internal/config"
	"github.com/spf13/cobra"
)

const defaultConfigPath = "config/clonepulse.yaml"

// Application wires configuration, services, and the command tree.
type Application struct {
	cfg     config.Application
	rootCmd *cobra.Command
}

// NewApplication constructs the full CLI, ready to Run().
func NewApplication() (*Application, error) {
	configPath := os.Getenv("CLONEPULSE_CONFIG")
	if configPath == "" {
		configPath = defaultConfigPath
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	deps := BuildDependencies(cfg)

	rootCmd := &cobra.Command{
		Use:   "clonepulse",
		Short: "Track GitHub clone traffic and render a weekly dashboard",
		// errors are reported by main, which maps validation failures
		// to exit code 2
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.AddCommand(newFetchCmd(cfg, deps))
	rootCmd.AddCommand(newDashboardCmd(deps))

	return &Application{cfg: cfg, rootCmd: rootCmd}, nil
}

// Run executes the selected command and blocks until it finishes.
func (a *Application) Run() error {
	return a.rootCmd.Execute()
}
