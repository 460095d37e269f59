package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/hugo-lorenzo-mato/cadence/internal/config"
	"github.com/hugo-lorenzo-mato/cadence/internal/project"
)

var initWithConfig bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the default workflow state in this project",
	Long: `Creates .cadence/cadence.json seeded with the default plan. Running
init on an already initialized project is a no-op and leaves the existing
state untouched.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initWithConfig, "with-config", false,
		"also write a starter .cadence.yaml config file")
}

func runInit(cmd *cobra.Command, _ []string) error {
	cwd := "."
	root, err := project.ResolveOrStart(projectFlag, cwd)
	if err != nil {
		return err
	}

	store := openStore(root)
	created, err := store.CreateDefault(cmd.Context())
	if err != nil {
		return err
	}

	if created {
		log.WithOperation("init").Info("state created", "path", store.Path())
		fmt.Printf("initialized %s\n", store.Path())
	} else {
		fmt.Printf("already initialized: %s\n", store.Path())
	}

	if initWithConfig {
		cfgPath := filepath.Join(root, ".cadence.yaml")
		if err := config.WriteExample(cfgPath); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", cfgPath)
	}
	return nil
}
