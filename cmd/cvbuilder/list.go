package main

import (
	"context"

	"github.com/jonathan/cv-builder/internal/identity"
	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/storage"
	"github.com/spf13/cobra"
)

var resumesUser string

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the available templates",
	RunE: func(cmd *cobra.Command, _ []string) error {
		observability.NewPrinter(cmd.OutOrStdout()).PrintTemplates(rendering.Templates())
		return nil
	},
}

var resumesCmd = &cobra.Command{
	Use:   "resumes",
	Short: "List saved résumés",
	Long:  "Lists the résumés saved by a user in the configured store (PostgreSQL or the local data directory).",
	RunE:  runResumes,
}

func init() {
	resumesCmd.Flags().StringVar(&resumesUser, "user", identity.DemoUser.ID, "Owner of the résumés")
	rootCmd.AddCommand(templatesCmd, resumesCmd)
}

func runResumes(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	store, err := storage.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	list, err := store.List(ctx, resumesUser)
	if err != nil {
		return err
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintSavedResumes(list)
	return nil
}
