package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseGeneratorConfigEmptyPath(t *testing.T) {
	config := ParseGeneratorConfig("")
	assert.Empty(t, config.SkipTables)
}

func TestParseGeneratorConfigSkipTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	content := "skip_tables: |\n  public.audit_log\n  public.sessions\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	config := ParseGeneratorConfig(path)
	assert.Equal(t, []string{"public.audit_log", "public.sessions"}, config.SkipTables)
}
