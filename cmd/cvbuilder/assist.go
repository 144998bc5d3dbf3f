package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jonathan/cv-builder/internal/assistant"
	"github.com/jonathan/cv-builder/internal/identity"
	"github.com/jonathan/cv-builder/internal/resume"
	"github.com/jonathan/cv-builder/internal/session"
	"github.com/jonathan/cv-builder/internal/storage"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/spf13/cobra"
)

var (
	assistSection string
	assistPrompt  string
	assistInput   string
	assistOutput  string
	assistSave    string
	assistUser    string
)

var assistCmd = &cobra.Command{
	Use:   "assist",
	Short: "Generate résumé content with the assistant",
	Long: `Generates a professional summary, experience bullets or a skill list
from a short prompt. Uses Gemini when GEMINI_API_KEY is set and a built-in
generator otherwise. With --in the content is applied to the résumé, which
can be written with --out or saved to the store with --save.`,
	RunE: runAssist,
}

func init() {
	assistCmd.Flags().StringVarP(&assistSection, "section", "s", "summary", "Section: summary, experience or skills")
	assistCmd.Flags().StringVarP(&assistPrompt, "prompt", "p", "", "What to write about (required)")
	assistCmd.Flags().StringVarP(&assistInput, "in", "i", "", "Résumé JSON file to apply the content to")
	assistCmd.Flags().StringVarP(&assistOutput, "out", "o", "", "Write the updated résumé to this file")
	assistCmd.Flags().StringVar(&assistSave, "save", "", "Save the updated résumé under this name")
	assistCmd.Flags().StringVar(&assistUser, "user", identity.DemoUser.ID, "Owner of saved résumés")
	if err := assistCmd.MarkFlagRequired("prompt"); err != nil {
		panic(fmt.Sprintf("failed to mark prompt flag as required: %v", err))
	}

	rootCmd.AddCommand(assistCmd)
}

func runAssist(cmd *cobra.Command, _ []string) error {
	section, err := assistant.ParseSection(assistSection)
	if err != nil {
		return err
	}
	if assistInput == "" && (assistOutput != "" || assistSave != "") {
		return fmt.Errorf("--out and --save require --in")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx := context.Background()
	gen, closeGen, err := assistant.New(ctx, cfg.GeminiAPIKey)
	if err != nil {
		return err
	}
	defer closeGen()

	content, err := gen.Generate(ctx, section, assistPrompt)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, content)

	if assistInput == "" {
		return nil
	}

	doc, err := resume.LoadFile(assistInput)
	if err != nil {
		return err
	}
	sess := session.New(nil)
	before := sess.Replace(doc)
	after, err := sess.Apply(func(d *types.ResumeDocument) (*types.ResumeDocument, error) {
		return assistant.Apply(d, section, content)
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "\nOverall score: %d → %d\n", before.Report.Overall, after.Report.Overall)

	if assistOutput != "" {
		f, err := os.Create(assistOutput)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", assistOutput, err)
		}
		if err := resume.Encode(f, after.Document); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		fmt.Fprintf(out, "Wrote %s\n", assistOutput)
	}

	if assistSave != "" {
		store, err := storage.Open(ctx, cfg)
		if err != nil {
			return err
		}
		defer store.Close()

		saved, err := sess.Save(ctx, store, assistUser, assistSave)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Saved %q as %s\n", saved.Name, saved.ID)
	}
	return nil
}
