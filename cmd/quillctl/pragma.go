package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/quill/pkg/quill"
	"github.com/mesh-intelligence/quill/pkg/quill/quilltest"
)

var pragmaCmd = &cobra.Command{
	Use:   "pragma",
	Short: "Administrative pragma utilities",
}

var pragmaIntegrityCheckCmd = &cobra.Command{
	Use:   "integrity-check",
	Short: "Run PRAGMA integrity_check",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := quill.IntegrityCheck(context.Background(), db.Handle()); err != nil {
			return err
		}
		fmt.Println("ok")
		return nil
	},
}

var pragmaRecordCountCmd = &cobra.Command{
	Use:   "record-count",
	Short: "Print the row count of the demo table",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, pretty, err := quill.RecordCount(context.Background(), db.Handle(), quilltest.Container)
		if err != nil {
			return err
		}
		fmt.Println(pretty)
		return nil
	},
}

var pragmaCacheSizeCmd = &cobra.Command{
	Use:   "cache-size [pages]",
	Short: "Get or set PRAGMA cache_size",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if len(args) == 0 {
			n, err := quill.CacheSize(ctx, db.Handle())
			if err != nil {
				return err
			}
			fmt.Println(n)
			return nil
		}
		var pages int64
		if _, err := fmt.Sscanf(args[0], "%d", &pages); err != nil {
			return fmt.Errorf("invalid page count %q: %w", args[0], err)
		}
		return quill.SetCacheSize(ctx, db.Handle(), pages)
	},
}

var pragmaSchemaVersionCmd = &cobra.Command{
	Use:   "schema-version [version]",
	Short: "Get or set PRAGMA user_version",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()
		if len(args) == 0 {
			v, err := quill.SchemaVersion(ctx, db.Handle())
			if err != nil {
				return err
			}
			fmt.Println(v)
			return nil
		}
		var v int64
		if _, err := fmt.Sscanf(args[0], "%d", &v); err != nil {
			return fmt.Errorf("invalid version %q: %w", args[0], err)
		}
		return quill.SetSchemaVersion(ctx, db.Handle(), v)
	},
}

var pragmaCreateIndexCmd = &cobra.Command{
	Use:   "create-index <name> <label...>",
	Short: "Create an index on the demo table",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return quill.CreateIndex(context.Background(), db.Handle(), args[0], quilltest.Container, args[1:]...)
	},
}

var pragmaDropIndexCmd = &cobra.Command{
	Use:   "drop-index <name>",
	Short: "Drop an index",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return quill.DropIndex(context.Background(), db.Handle(), args[0])
	},
}

func init() {
	pragmaCmd.AddCommand(pragmaIntegrityCheckCmd)
	pragmaCmd.AddCommand(pragmaRecordCountCmd)
	pragmaCmd.AddCommand(pragmaCacheSizeCmd)
	pragmaCmd.AddCommand(pragmaSchemaVersionCmd)
	pragmaCmd.AddCommand(pragmaCreateIndexCmd)
	pragmaCmd.AddCommand(pragmaDropIndexCmd)
}
