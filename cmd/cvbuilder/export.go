package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/jonathan/cv-builder/internal/export"
	"github.com/jonathan/cv-builder/internal/rendering"
	"github.com/jonathan/cv-builder/internal/resume"
	"github.com/jonathan/cv-builder/internal/types"
	"github.com/spf13/cobra"
)

var (
	exportInput    string
	exportTemplate string
	exportFormat   string
	exportOutput   string
	exportPrimary  string
	exportFont     string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render a résumé to PDF, PNG, HTML or text",
	Long: `Renders a résumé JSON file with one of the built-in templates and writes
it as pdf, png, html or txt. Format "all" writes both the PDF and the PNG.
PDF and PNG export need a local Chrome or Chromium (CHROME_PATH).`,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportInput, "in", "i", "", "Path to résumé JSON file (required)")
	exportCmd.Flags().StringVarP(&exportTemplate, "template", "t", rendering.DefaultTemplate, "Template id")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "pdf", "Output format: pdf, png, html, txt or all")
	exportCmd.Flags().StringVarP(&exportOutput, "out", "o", "", "Output file (default CV-<name>.<format>)")
	exportCmd.Flags().StringVar(&exportPrimary, "primary", "", "Primary color as #rrggbb")
	exportCmd.Flags().StringVar(&exportFont, "font", "", "Main font family")
	if err := exportCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, _ []string) error {
	format := strings.ToLower(exportFormat)
	switch format {
	case "pdf", "png", "html", "txt", "all":
	default:
		return fmt.Errorf("unsupported format %q", exportFormat)
	}
	if format == "all" && exportOutput != "" {
		return fmt.Errorf("--out cannot be used with format all")
	}

	doc, err := resume.LoadFile(exportInput)
	if err != nil {
		return err
	}

	opts := rendering.Options{
		Template:      exportTemplate,
		Theme:         rendering.ColorTheme{Primary: exportPrimary},
		Customization: rendering.Customization{MainFont: exportFont},
	}
	html, err := rendering.Render(doc, opts)
	if err != nil {
		return err
	}

	switch format {
	case "html":
		return writeOutput(cmd, doc, format, []byte(html))
	case "txt":
		text, err := rendering.PlainText(html)
		if err != nil {
			return err
		}
		return writeOutput(cmd, doc, format, []byte(text))
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if _, ok := export.FindChrome(cfg.ChromePath); !ok {
		return fmt.Errorf("no Chrome or Chromium found; set CHROME_PATH or use --format html")
	}
	exporter := export.New(cfg.ChromePath, cfg.PDFQuality)

	printable, err := export.Printable(html, "CV - "+rendering.Title(doc))
	if err != nil {
		return err
	}

	ctx := context.Background()
	switch format {
	case "pdf":
		data, err := exporter.PDF(ctx, printable)
		if err != nil {
			return err
		}
		return writeOutput(cmd, doc, format, data)
	case "png":
		data, err := exporter.PNG(ctx, html)
		if err != nil {
			return err
		}
		return writeOutput(cmd, doc, format, data)
	}

	artifacts, err := exporter.Bundle(ctx, printable)
	if err != nil {
		return err
	}
	if err := writeOutput(cmd, doc, "pdf", artifacts.PDF); err != nil {
		return err
	}
	return writeOutput(cmd, doc, "png", artifacts.PNG)
}

// writeOutput writes data to --out, or to the default file name for doc.
func writeOutput(cmd *cobra.Command, doc *types.ResumeDocument, ext string, data []byte) error {
	path := exportOutput
	if path == "" {
		path = export.FileName(doc, ext)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d bytes)\n", path, len(data))
	return nil
}
