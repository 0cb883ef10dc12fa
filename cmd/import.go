package cmd

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"os"

	"github.com/alphios72/NewsinsightUI/internal"
	"github.com/alphios72/NewsinsightUI/internal/permission"
	permissionPostgres "github.com/alphios72/NewsinsightUI/internal/permission/postgres"
	"github.com/alphios72/NewsinsightUI/internal/records"
	recordsPostgres "github.com/alphios72/NewsinsightUI/internal/records/postgres"
	"github.com/alphios72/NewsinsightUI/internal/schema"
	"github.com/alphios72/NewsinsightUI/pkg/logger"
	"github.com/spf13/cobra"
)

var (
	importTable string
	importFile  string
)

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a CSV file into one table",
	Long: `One-shot import of a CSV export (header row = column names) into a
single introspected table, one INSERT per row through the record service.`,
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVarP(&importTable, "table", "t", "", "target table name")
	importCmd.Flags().StringVarP(&importFile, "file", "f", "", "CSV file to import")
	importCmd.MarkFlagRequired("table")
	importCmd.MarkFlagRequired("file")
}

func runImport(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(".")
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := initDB(cfg.Database)
	if err != nil {
		log.Fatalf("failed to init db: %v", err)
	}
	gormDB, err := initGorm(db)
	if err != nil {
		log.Fatalf("failed to init gorm: %v", err)
	}

	lg := logger.LoggerWrapper()
	introspector := schema.NewIntrospector(db)
	permissionService := permission.NewService(permissionPostgres.NewPermissionRepository(gormDB), lg)
	recordService := records.NewService(introspector, permissionService, recordsPostgres.NewRecordRepository(db), lg)

	columns, err := introspector.ListColumns(ctx, importTable)
	if err != nil {
		return fmt.Errorf("table %q: %w", importTable, err)
	}
	known := make(map[string]bool, len(columns))
	for _, c := range columns {
		known[c.Name] = true
	}

	file, err := os.Open(importFile)
	if err != nil {
		return fmt.Errorf("open %s: %w", importFile, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}
	if len(rows) < 2 {
		return fmt.Errorf("csv has no data rows")
	}

	header := rows[0]
	for _, name := range header {
		if !known[name] && name != "id" {
			fmt.Printf("Skipping unknown column: %s\n", name)
		}
	}

	imported, failed := 0, 0
	for i, row := range rows[1:] {
		fields := map[string]interface{}{}
		for j, name := range header {
			// id columns are left to the database sequence
			if j >= len(row) || name == "id" || !known[name] {
				continue
			}
			if row[j] == "" {
				fields[name] = nil
			} else {
				fields[name] = row[j]
			}
		}
		if len(fields) == 0 {
			continue
		}

		if _, err := recordService.Create(ctx, internal.RoleAdmin, importTable, fields); err != nil {
			fmt.Printf("Row %d failed: %v\n", i+2, err)
			failed++
			continue
		}
		imported++
	}

	fmt.Printf("Imported %d rows into %s (%d failed)\n", imported, importTable, failed)
	return nil
}
