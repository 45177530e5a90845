package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MimeLyc/tagged-doc-translator/internal/config"
	"github.com/MimeLyc/tagged-doc-translator/internal/glossary"
	"github.com/MimeLyc/tagged-doc-translator/pkg/log"
)

var glossaryCmd = &cobra.Command{
	Use:   "glossary",
	Short: "Glossary maintenance",
}

var glossaryCleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Drop sound dictionary entries that were never translated",
	Long: `Remove entries from the shared sound dictionary whose source
and target are the same string, which happens when the service echoes a
term back instead of translating it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.NewFromEnv()
		if err != nil {
			return err
		}
		path := filepath.Join(cfg.Staging.GlossaryDir, glossary.SoundFileName)
		removed, err := glossary.CleanIdenticalPairs(path)
		if err != nil {
			return err
		}
		log.Info("removed %d identical pairs from %s", removed, path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(glossaryCmd)
	glossaryCmd.AddCommand(glossaryCleanCmd)
}
