// This package has the target-server connection layer for apply mode. Never
// deal with statement rewriting here.
package database

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"gopkg.in/yaml.v2"
)

type Config struct {
	User     string
	Password string
	Host     string
	Port     int
	Socket   string
}

// GeneratorConfig holds settings read from a --config YAML file.
type GeneratorConfig struct {
	SkipTables []string
}

// Abstraction layer over the target server connection
type Database interface {
	DB() *sql.DB
	Close() error
}

// RunStatements applies translated statements to the target server inside a
// transaction. Comment and blank lines are presentation only and skipped.
func RunStatements(d Database, statements []string) error {
	transaction, err := d.DB().Begin()
	if err != nil {
		return err
	}
	for _, statement := range statements {
		trimmed := strings.TrimSpace(statement)
		if trimmed == "" || strings.HasPrefix(trimmed, "--") {
			continue
		}
		if _, err := transaction.Exec(strings.TrimSuffix(trimmed, ";")); err != nil {
			transaction.Rollback()
			return fmt.Errorf("failed to apply %q: %w", trimmed, err)
		}
	}
	return transaction.Commit()
}

func ParseGeneratorConfig(configFile string) GeneratorConfig {
	if configFile == "" {
		return GeneratorConfig{}
	}

	buf, err := os.ReadFile(configFile)
	if err != nil {
		log.Fatal(err)
	}

	var config struct {
		SkipTables string `yaml:"skip_tables"`
	}
	err = yaml.UnmarshalStrict(buf, &config)
	if err != nil {
		log.Fatal(err)
	}

	var skipTables []string
	if config.SkipTables != "" {
		skipTables = strings.Split(strings.Trim(config.SkipTables, "\n"), "\n")
	}

	return GeneratorConfig{
		SkipTables: skipTables,
	}
}
