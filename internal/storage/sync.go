package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/misterclayt0n/fittrack/internal/utils"
)

// ExportTOML dumps every known table into a single TOML file, one array of
// row tables per table. NULL columns are omitted from the row.
func (s *Storage) ExportTOML(ctx context.Context, outputPath string) error {
	dbDump := make(map[string][]map[string]interface{})

	for _, tableName := range knownTables {
		tableData, err := s.dumpTable(ctx, tableName)
		if err != nil {
			return err
		}
		dbDump[tableName] = tableData
	}

	var sb strings.Builder
	if err := toml.NewEncoder(&sb).Encode(dbDump); err != nil {
		return fmt.Errorf("encoding TOML: %w", err)
	}

	// Make the output path absolute relative to the current directory.
	outputPath, err := filepath.Abs(outputPath)
	if err != nil {
		return err
	}

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}

	s.log.Info("database exported", slog.String("path", outputPath))
	return nil
}

func (s *Storage) dumpTable(ctx context.Context, tableName string) ([]map[string]interface{}, error) {
	tableRows, err := s.DB.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s;", tableName))
	if err != nil {
		return nil, fmt.Errorf("querying table %s: %w", tableName, err)
	}
	defer tableRows.Close()

	cols, err := tableRows.Columns()
	if err != nil {
		return nil, fmt.Errorf("getting columns for table %s: %w", tableName, err)
	}

	var tableData []map[string]interface{}
	for tableRows.Next() {
		values := make([]interface{}, len(cols))
		valuePtrs := make([]interface{}, len(cols))
		for i := range values {
			valuePtrs[i] = &values[i]
		}

		if err := tableRows.Scan(valuePtrs...); err != nil {
			return nil, fmt.Errorf("scanning row in table %s: %w", tableName, err)
		}

		rowMap := make(map[string]interface{})
		for i, col := range cols {
			switch val := values[i].(type) {
			case nil:
			case []byte:
				rowMap[col] = string(val)
			default:
				rowMap[col] = val
			}
		}
		tableData = append(tableData, rowMap)
	}
	return tableData, tableRows.Err()
}

// GetDBExportPath returns ~/.config/fittrack/db_dump.toml.
func GetDBExportPath() (string, error) {
	dir, err := utils.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "db_dump.toml"), nil
}

// ImportTOML replaces the contents of every table present in the dump with
// the dump's rows, in a single transaction. Child tables of a replaced table
// are cleared too. Unknown tables are rejected.
func (s *Storage) ImportTOML(ctx context.Context, filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("Reading file %s: %w", filePath, err)
	}

	// The dump file is assumed to be a map from table names to an array of rows.
	var dbDump map[string][]map[string]interface{}
	if _, err := toml.Decode(string(data), &dbDump); err != nil {
		return fmt.Errorf("Decoding TOML: %w", err)
	}

	for table := range dbDump {
		if !isKnownTable(table) {
			return fmt.Errorf("unknown table %q in dump", table)
		}
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("Begin transaction: %w", err)
	}
	defer tx.Rollback()

	cleared := tablesToClear(dbDump)
	for i := len(knownTables) - 1; i >= 0; i-- {
		table := knownTables[i]
		if !cleared[table] {
			continue
		}
		if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s;", table)); err != nil {
			return fmt.Errorf("Clearing table %s: %w", table, err)
		}
	}

	for _, table := range knownTables {
		for _, row := range dbDump[table] {
			columns := make([]string, 0, len(row))
			for col := range row {
				if !validColumn(col) {
					return fmt.Errorf("invalid column %q in table %s", col, table)
				}
				columns = append(columns, col)
			}
			sort.Strings(columns)

			placeholders := make([]string, len(columns))
			values := make([]interface{}, len(columns))
			for i, col := range columns {
				placeholders[i] = "?"
				values[i] = row[col]
			}

			query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);", table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
			if _, err := tx.ExecContext(ctx, query, values...); err != nil {
				return fmt.Errorf("Inserting into table %s: %w", table, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("Committing transaction: %w", err)
	}

	s.log.Info("database rebuilt from dump", slog.String("path", filePath))
	return nil
}

// childTables maps a table to the tables whose rows point at it.
var childTables = map[string][]string{
	"workouts":        {"workout_exercises"},
	"training_groups": {"group_members"},
}

// tablesToClear is every table in the dump plus the children of those
// tables, so rows never outlive their parent.
func tablesToClear(dump map[string][]map[string]interface{}) map[string]bool {
	cleared := make(map[string]bool)
	var mark func(string)
	mark = func(table string) {
		if cleared[table] {
			return
		}
		cleared[table] = true
		for _, child := range childTables[table] {
			mark(child)
		}
	}
	for table := range dump {
		mark(table)
	}
	return cleared
}

func isKnownTable(name string) bool {
	for _, t := range knownTables {
		if t == name {
			return true
		}
	}
	return false
}

func validColumn(name string) bool {
	if name == "" {
		return false
	}
	for _, r := range name {
		if (r < 'a' || r > 'z') && r != '_' {
			return false
		}
	}
	return true
}
