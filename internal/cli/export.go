package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MimeLyc/tagged-doc-translator/internal/config"
	"github.com/MimeLyc/tagged-doc-translator/internal/document"
	"github.com/MimeLyc/tagged-doc-translator/internal/pipeline"
	"github.com/MimeLyc/tagged-doc-translator/pkg/log"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export plain-text renderings of all staged documents",
	Long: `Strip the line tags from every document in the staging
directory and write reader-facing plain text into the export directory,
paragraphs separated by blank lines.`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewFromEnv()
	if err != nil {
		return err
	}

	paths, err := pipeline.DiscoverDocuments(cfg.Staging.DocsDir)
	if err != nil {
		return err
	}

	for _, path := range paths {
		doc, err := document.Load(path)
		if err != nil {
			return err
		}
		if err := doc.ExportPlainText(cfg.Staging.ExportDir); err != nil {
			return err
		}
		log.Info("exported %s", filepath.Base(path))
	}
	log.Info("exported %d documents to %s", len(paths), cfg.Staging.ExportDir)
	return nil
}
