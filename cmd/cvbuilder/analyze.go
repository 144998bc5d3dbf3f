package main

import (
	"encoding/json"
	"fmt"

	"github.com/jonathan/cv-builder/internal/analytics"
	"github.com/jonathan/cv-builder/internal/observability"
	"github.com/jonathan/cv-builder/internal/resume"
	"github.com/jonathan/cv-builder/internal/validation"
	"github.com/spf13/cobra"
)

var (
	analyzeInput string
	analyzeJSON  bool

	validateInput string
	validateJSON  bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Score a résumé and list suggestions",
	Long:  "Analyzes a résumé JSON file and prints its sub-scores, overall grade, metrics, strengths and suggestions.",
	RunE:  runAnalyze,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check a résumé for field errors",
	Long:  "Validates personal info, work experience and education entries of a résumé JSON file. Exits non-zero when any field fails.",
	RunE:  runValidate,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeInput, "in", "i", "", "Path to résumé JSON file (required)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the report as JSON")
	if err := analyzeCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	validateCmd.Flags().StringVarP(&validateInput, "in", "i", "", "Path to résumé JSON file (required)")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "Print the errors as JSON")
	if err := validateCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(analyzeCmd, validateCmd)
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func runAnalyze(cmd *cobra.Command, _ []string) error {
	doc, err := resume.LoadFile(analyzeInput)
	if err != nil {
		return err
	}

	report := analytics.NewAnalyzer(nil).Analyze(doc)
	if analyzeJSON {
		return writeJSON(cmd, report)
	}
	observability.NewPrinter(cmd.OutOrStdout()).PrintReport(report)
	return nil
}

func runValidate(cmd *cobra.Command, _ []string) error {
	doc, err := resume.LoadFile(validateInput)
	if err != nil {
		return err
	}

	errs := validation.ValidateResume(doc)
	if validateJSON {
		if err := writeJSON(cmd, errs); err != nil {
			return err
		}
	} else {
		observability.NewPrinter(cmd.OutOrStdout()).PrintValidation(errs)
	}

	if !errs.Empty() {
		return fmt.Errorf("validation failed")
	}
	return nil
}
