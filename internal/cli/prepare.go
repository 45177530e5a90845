package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MimeLyc/tagged-doc-translator/internal/config"
	"github.com/MimeLyc/tagged-doc-translator/internal/document"
	"github.com/MimeLyc/tagged-doc-translator/pkg/file"
	"github.com/MimeLyc/tagged-doc-translator/pkg/log"
)

var prepareCmd = &cobra.Command{
	Use:   "prepare [text_file...]",
	Short: "Tag raw text files and queue them for translation",
	Long: `Wrap every non-blank line of the given text files in a
<p data-line="N"> tag and write the result into the staging directory.
With no arguments, every .txt file in the staging directory's parent
queue is prepared.`,
	Args: cobra.ArbitraryArgs,
	RunE: runPrepare,
}

func init() {
	rootCmd.AddCommand(prepareCmd)

	prepareCmd.Flags().String("source-dir", "", "Prepare every .txt file in this directory")
}

func runPrepare(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewFromEnv()
	if err != nil {
		return err
	}

	inputs := args
	if sourceDir, _ := cmd.Flags().GetString("source-dir"); sourceDir != "" {
		found, err := file.ListWithExt(sourceDir, ".txt")
		if err != nil {
			return err
		}
		inputs = append(inputs, found...)
	}
	if len(inputs) == 0 {
		return fmt.Errorf("no input files: pass paths or --source-dir")
	}

	for _, input := range inputs {
		output := filepath.Join(cfg.Staging.DocsDir, file.ReplaceExt(filepath.Base(input), ".html"))
		count, err := document.Prepare(input, output)
		if err != nil {
			return fmt.Errorf("prepare %s: %w", input, err)
		}
		if err := seedGlossary(cfg.Staging.GlossaryDir, input); err != nil {
			return err
		}
		log.Info("prepared %s: %d tagged lines -> %s", filepath.Base(input), count, output)
	}
	return nil
}

// seedGlossary creates an empty per-document term store so a fresh
// document's first run starts from a well-formed file. Existing stores
// are left alone.
func seedGlossary(glossaryDir, input string) error {
	if err := os.MkdirAll(glossaryDir, 0755); err != nil {
		return fmt.Errorf("failed to create glossary directory: %w", err)
	}
	path := filepath.Join(glossaryDir, file.Stem(input)+"_dictionary.json")
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return os.WriteFile(path, []byte("[]\n"), 0644)
}
