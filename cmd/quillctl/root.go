// Root command for the quillctl CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/quill/internal/paths"
	"github.com/mesh-intelligence/quill/pkg/quill"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// Global flag values.
var (
	flagConfigDir string
	flagDataDir   string
	flagJSON      bool
)

// db is the process-wide quillctl connection, opened by PersistentPreRunE
// and closed by PersistentPostRunE.
var db *quill.DB

var rootCmd = &cobra.Command{
	Use:     "quillctl",
	Short:   "quillctl drives Quill's demo shape against an embedded SQLite database",
	Version: version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "version" {
			return nil
		}

		configDir, err := paths.ResolveConfigDir(flagConfigDir)
		if err != nil {
			return err
		}
		cfg, err := loadConfig(configDir)
		if err != nil {
			return err
		}

		dataDir, err := paths.ResolveDataDir(flagDataDir, cfg.GetString(cfgKeyDataDir))
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dataDir, 0o755); err != nil {
			return fmt.Errorf("ensure data dir: %w", err)
		}

		quill.Init(quill.Serialized)
		opened, err := quill.Open(filepath.Join(dataDir, "quill.db"))
		if err != nil {
			return fmt.Errorf("open database: %w", err)
		}
		db = opened

		if err := quill.SetCacheSize(context.Background(), db.Handle(), cfg.GetInt64(cfgKeyCacheSize)); err != nil {
			return fmt.Errorf("apply cache size: %w", err)
		}
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if db != nil {
			db.Close()
			quill.Shutdown()
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagDataDir, "data-dir", "", "data directory holding quill.db (default: $(CWD)/.quill-db)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output as JSON")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(insertCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(pragmaCmd)
}
