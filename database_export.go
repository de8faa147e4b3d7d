// database_export.go
package main

import (
	"fmt"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/kennedy-blip/Data-transformation/pipeline"
)

// connectDatabase opens the export target.
func connectDatabase(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
}

// exportToDatabase creates the table from the transformed rows' profiles and
// fills it in insert batches. Any existing table with that name is replaced.
func exportToDatabase(db *gorm.DB, tableName string, rows []pipeline.Row, columns []string) error {
	if len(columns) == 0 {
		return fmt.Errorf("no columns to export")
	}

	if tx := db.Exec("DROP TABLE IF EXISTS " + quoteIdentifier(tableName)); tx.Error != nil {
		return tx.Error
	}

	for _, statement := range splitStatements(exportSQL(tableName, rows, columns)) {
		if tx := db.Exec(statement); tx.Error != nil {
			return fmt.Errorf("export statement failed: %w", tx.Error)
		}
	}
	return nil
}

// splitStatements breaks the generated script on statement boundaries; the
// generator terminates every statement with ";\n".
func splitStatements(script string) []string {
	parts := strings.Split(script, ";\n")
	statements := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) == "" {
			continue
		}
		statements = append(statements, p)
	}
	return statements
}
