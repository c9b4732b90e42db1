package cmd

import (
	"fmt"

	"github.com/misterclayt0n/fittrack/internal/storage"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export [output-file]",
	Short: "Export all the database data to a TOML file",
	Args:  cobra.RangeArgs(0, 1),
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile, err := storage.GetDBExportPath()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			outputFile = args[0]
		}

		st, err := openStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.ExportTOML(cmd.Context(), outputFile); err != nil {
			return fmt.Errorf("error exporting database: %w", err)
		}

		fmt.Printf("✅ Database exported successfully to %s\n", outputFile)
		return nil
	},
}

var buildDBCmd = &cobra.Command{
	Use:   "build-db [dump-file]",
	Short: "Build the entire database from the given TOML dump file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStorage(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		if err := st.ImportTOML(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("Failed to build database: %w", err)
		}
		fmt.Println("✅ Database built successfully from TOML dump.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(buildDBCmd)
}
