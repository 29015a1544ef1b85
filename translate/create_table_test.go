package translate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeMapping(t *testing.T) {
	tests := []struct {
		source string
		target string
	}{
		{"uuid", "varchar(36)"},
		{"boolean", "bool"},
		{"character varying(80)", "varchar(80)"},
		{"character varying", "longtext"},
		{"bytea", "BLOB"},
		{"jsonb", "json"},
		{"json", "json"},
		{"text", "longtext"},
		{"text[]", "longtext"},
		{"serial", "int"},
		{"bigserial", "bigint"},
		{"inet", "varchar(43)"},
		{"cidr", "varchar(43)"},
		{"macaddr", "varchar(17)"},
		{"money", "decimal(19,2)"},
		{"character(2)", "char(2)"},
		{"timestamp with time zone", "timestamp"},
		{"public.citext", "longtext"},
	}
	for _, test := range tests {
		t.Run(test.source, func(t *testing.T) {
			tr := New(Options{})
			out := runAll(t, tr, "CREATE TABLE public.one_col (\n    val "+test.source+"\n);\n")
			require.Len(t, out, 6)
			assert.Equal(t, "    `val` "+test.target, out[4])
		})
	}
}

func TestSchemaPairEmittedAtFirstTable(t *testing.T) {
	tr := New(Options{})
	out := runAll(t, tr, strings.Join([]string{
		"CREATE TABLE store.orders (",
		"    id integer",
		");",
		"CREATE TABLE store.items (",
		"    id integer",
		");",
		"CREATE TABLE billing.invoices (",
		"    id integer",
		");",
	}, "\n"))

	var pairs int
	for _, line := range out {
		if strings.HasPrefix(line, "DROP DATABASE") {
			pairs++
		}
	}
	assert.Equal(t, 2, pairs)
	assert.Equal(t, "DROP DATABASE IF EXISTS store;", out[0])
	assert.Equal(t, "CREATE DATABASE store;", out[1])
}

func TestSkippedTableIsSuppressedEntirely(t *testing.T) {
	warn := &recordingLogger{}
	tr := New(Options{SkipTables: []string{"public.audit_log"}, Warnings: warn})
	out := runAll(t, tr, strings.Join([]string{
		"CREATE TABLE public.audit_log (",
		"    id integer,",
		"    message text",
		");",
	}, "\n"))

	// The schema's database pair still appears; the table does not.
	require.Len(t, out, 3)
	assert.Equal(t, "DROP DATABASE IF EXISTS public;", out[0])
	for _, line := range out {
		assert.NotContains(t, line, "audit_log")
	}
	require.NotEmpty(t, warn.msgs)
	assert.Contains(t, warn.msgs[0], "public.audit_log")
}

func TestUnsignedIntegerSpelling(t *testing.T) {
	tr := New(Options{})
	out := runAll(t, tr, "CREATE TABLE public.t (\n    n integer unsigned,\n    m bigint unsigned\n);")
	assert.Equal(t, "    `n` int UNSIGNED,", out[4])
	assert.Equal(t, "    `m` bigint UNSIGNED", out[5])
}

func TestSequenceDefaultStrippedAtCreation(t *testing.T) {
	tr := New(Options{})
	out := runAll(t, tr, "CREATE TABLE public.t (\n    id integer DEFAULT nextval('public.t_id_seq'::regclass) NOT NULL\n);")
	assert.Equal(t, "    `id` integer NOT NULL", out[4])
}

func TestNumericCastDefaultBecomesBareLiteral(t *testing.T) {
	tr := New(Options{})
	out := runAll(t, tr, "CREATE TABLE public.t (\n    lvl smallint DEFAULT '-1'::integer NOT NULL\n);")
	assert.Equal(t, "    `lvl` smallint DEFAULT -1 NOT NULL", out[4])
}

func TestNotNullTimestampGetsZeroDefault(t *testing.T) {
	tr := New(Options{})
	out := runAll(t, tr, "CREATE TABLE public.t (\n    updated_at timestamp without time zone NOT NULL,\n    seen_at timestamp without time zone\n);")
	assert.Equal(t, "    `updated_at` timestamp NOT NULL DEFAULT '0000-00-00 00:00:00',", out[4])
	assert.Equal(t, "    `seen_at` timestamp", out[5])
}

func TestTimestampDefaultOffsetStripped(t *testing.T) {
	tr := New(Options{})
	out := runAll(t, tr, "CREATE TABLE public.t (\n    at timestamp with time zone DEFAULT '2020-01-01 00:00:00+00'\n);")
	assert.Equal(t, "    `at` timestamp DEFAULT '2020-01-01 00:00:00'", out[4])
}

func TestLongtextDefaultDropped(t *testing.T) {
	tr := New(Options{})
	out := runAll(t, tr, "CREATE TABLE public.t (\n    notes text DEFAULT 'none'::text NOT NULL,\n    extra text DEFAULT ''::text\n);")
	assert.Equal(t, "    `notes` longtext NOT NULL,", out[4])
	assert.Equal(t, "    `extra` longtext", out[5])
}

func TestJSONBuildObjectDefaultMapped(t *testing.T) {
	tr := New(Options{})
	out := runAll(t, tr, "CREATE TABLE public.t (\n    meta jsonb DEFAULT json_build_object() NOT NULL\n);")
	assert.Equal(t, "    `meta` json DEFAULT json_object() NOT NULL", out[4])
}

func TestColumnNamedAfterBooleanTypeKeptIntact(t *testing.T) {
	tr := New(Options{})
	out := runAll(t, tr, "CREATE TABLE public.t (\n    boolean_flag boolean NOT NULL\n);")
	assert.Equal(t, "    `boolean_flag` bool NOT NULL", out[4])
}

func TestQuotedTableNameStrippedOnEmission(t *testing.T) {
	tr := New(Options{})
	out := runAll(t, tr, "CREATE TABLE public.\"Users\" (\n    id integer\n);")
	assert.Equal(t, "CREATE TABLE public.Users (", out[3])
}

func TestDegenerateCreateTableOpenerDropped(t *testing.T) {
	warn := &recordingLogger{}
	tr := New(Options{Warnings: warn})
	out, err := tr.Translate("CREATE TABLE (", "")

	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, ContextNone, tr.context)
	require.Len(t, warn.msgs, 1)
	assert.Contains(t, warn.msgs[0], "unrecognized")
}

func TestQuotedIdentifierBecomesBacktick(t *testing.T) {
	tr := New(Options{})
	out := runAll(t, tr, "CREATE TABLE public.t (\n    \"order\" integer\n);")
	assert.Equal(t, "    `order` integer", out[4])
}

func TestConstraintLinesNotColumnQuoted(t *testing.T) {
	tr := New(Options{})
	out := runAll(t, tr, "CREATE TABLE public.t (\n    id integer,\n    PRIMARY KEY (id)\n);")
	assert.Equal(t, "    PRIMARY KEY (id)", out[5])
}

func TestRewriteRuleOrderIsStable(t *testing.T) {
	// The pipeline order is part of the contract: type mapping must run
	// before default repair, identifier quoting last.
	names := make([]string, len(createTableRules))
	for i, rule := range createTableRules {
		names[i] = rule.name
	}
	assert.Equal(t, "unsigned integers", names[0])
	assert.Equal(t, "column quoting", names[len(names)-1])
	assert.Less(t, indexOf(names, "text columns"), indexOf(names, "longtext defaults"))
	assert.Less(t, indexOf(names, "time zone qualifiers"), indexOf(names, "zero timestamp defaults"))
}

func indexOf(names []string, name string) int {
	for i, n := range names {
		if n == name {
			return i
		}
	}
	return -1
}
