// Package translate implements the line-driven rewrite engine that turns a
// PostgreSQL plain-text dump into statements a MySQL-family server accepts.
// It never builds a parse tree: each physical line is classified by the
// opening pattern of the statement it belongs to, rewritten with a fixed
// sequence of rules for that statement kind, and re-emitted or suppressed.
package translate

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// Context identifies which multi-line statement kind is currently open.
// Index creation and sequence-value statements are single-line and never
// leave a persistent context behind.
type Context int

const (
	ContextNone Context = iota
	ContextTableCreation
	ContextTableAlteration
	ContextRowInsertion
	ContextTransactionalBlock
)

func (c Context) String() string {
	switch c {
	case ContextTableCreation:
		return "table creation"
	case ContextTableAlteration:
		return "table alteration"
	case ContextRowInsertion:
		return "row insertion"
	case ContextTransactionalBlock:
		return "transactional block"
	default:
		return "none"
	}
}

// Logger receives human-readable diagnostics for skipped or unrecognized
// input. It is a side channel and must never be wired to the primary output
// stream.
type Logger interface {
	Printf(format string, v ...any)
}

// NullLogger discards all diagnostics.
type NullLogger struct{}

func (NullLogger) Printf(format string, v ...any) {}

// Options configures a Translator for one run. All fields are immutable
// after New.
type Options struct {
	// SkipTables lists schema-qualified table names whose statements are
	// suppressed instead of translated.
	SkipTables []string
	// InsertIgnore rewrites INSERT INTO to INSERT IGNORE INTO so duplicate
	// rows don't abort the load.
	InsertIgnore bool
	// Strict promotes CREATE TYPE declarations from a warning to an error.
	Strict bool
	// Warnings is the diagnostic sink. Defaults to NullLogger.
	Warnings Logger
}

// Translator is the statement dispatcher plus all per-run state: the open
// statement context, the skip set, the set of schemas already declared, and
// the buffer of deferred AUTO_INCREMENT statements. One Translator handles
// exactly one dump; it is not safe for concurrent use.
type Translator struct {
	context    Context
	skipTables map[string]bool
	seenSchema map[string]bool
	deferred   []string

	// alterBuf holds the rewritten lines of the open table alteration until
	// its closing line settles whether the statement is emitted at all.
	alterBuf []string

	// suppressed is true while every line of the currently open statement
	// must be swallowed (its table is in the skip set).
	suppressed bool

	// quoteParity tracks the parity of single-quote characters seen so far
	// in an open row-insertion statement. A line ending in ");" terminates
	// the statement only when the parity is even, since literal values may
	// contain substrings that merely look like a terminator.
	quoteParity int

	insertIgnore bool
	strict       bool
	warn         Logger

	// Stats counted for the end-of-run summary.
	Stats Stats
}

// Stats summarizes one run.
type Stats struct {
	Lines        int
	Emitted      int
	Suppressed   int
	Unrecognized int
	Schemas      int
	Deferred     int
}

// New returns a Translator for a single dump stream.
func New(opts Options) *Translator {
	warn := opts.Warnings
	if warn == nil {
		warn = NullLogger{}
	}
	skip := make(map[string]bool, len(opts.SkipTables))
	for _, name := range opts.SkipTables {
		skip[strings.TrimSpace(name)] = true
	}
	return &Translator{
		skipTables:   skip,
		seenSchema:   map[string]bool{},
		insertIgnore: opts.InsertIgnore,
		strict:       opts.Strict,
		warn:         warn,
	}
}

var (
	beginRe       = regexp.MustCompile(`^\s*(BEGIN|START TRANSACTION)\s*;?\s*$`)
	endTxRe       = regexp.MustCompile(`^\s*(COMMIT|ROLLBACK)\s*;?\s*$`)
	setvalRe      = regexp.MustCompile(`setval\(`)
	createTableRe = regexp.MustCompile(`^CREATE TABLE `)
	alterTableRe  = regexp.MustCompile(`^ALTER TABLE `)
	insertRe      = regexp.MustCompile(`^INSERT INTO `)
	createIndexRe = regexp.MustCompile(`^CREATE (?:UNIQUE )?INDEX `)
	createTypeRe  = regexp.MustCompile(`^CREATE TYPE `)
)

// Preamble returns the lines emitted before any translated statement.
func (t *Translator) Preamble() []string {
	return []string{
		"-- Converted from a PostgreSQL dump by pg2mysql.",
		"-- Foreign key checks are disabled for the duration of the load.",
		"SET FOREIGN_KEY_CHECKS = 0;",
		"",
	}
}

// Translate classifies line, applies the rewrite pipeline of its statement
// kind, and returns the lines to emit (none when the line is suppressed or
// dropped). next is the one-line lookahead, empty at end of input. The
// returned error is fatal: an unparseable sequence-value statement, or a
// CREATE TYPE declaration in strict mode.
func (t *Translator) Translate(line, next string) ([]string, error) {
	t.Stats.Lines++
	out, err := t.dispatch(line, next)
	if err != nil {
		return nil, err
	}
	t.Stats.Emitted += len(out)
	return out, nil
}

// dispatch routes line to its handler. The precedence order matters because
// several statement kinds share keywords: an INSERT inside a transactional
// block must stay suppressed, and setval lines start with SELECT which no
// other handler claims.
func (t *Translator) dispatch(line, next string) ([]string, error) {
	switch {
	case t.context == ContextTransactionalBlock || beginRe.MatchString(line):
		return t.transactionalBlock(line), nil
	case t.context == ContextNone && setvalRe.MatchString(line):
		return t.sequenceValue(line)
	case t.context == ContextTableCreation || createTableRe.MatchString(line):
		return t.createTable(line), nil
	case t.context == ContextTableAlteration || alterTableRe.MatchString(line):
		return t.alterTable(line, next), nil
	case t.context == ContextRowInsertion || insertRe.MatchString(line):
		return t.insert(line), nil
	case createIndexRe.MatchString(line):
		return t.createIndex(line), nil
	case createTypeRe.MatchString(line):
		if t.strict {
			return nil, fmt.Errorf("user-defined types cannot be translated: %q", line)
		}
		t.warn.Printf("ignoring user-defined type declaration: %s", line)
		t.Stats.Unrecognized++
		return nil, nil
	case strings.TrimSpace(line) == "" || strings.HasPrefix(line, "--"):
		// Blank lines and dump comments carry no statement; drop silently.
		return nil, nil
	default:
		slog.Debug("unrecognized line", "line", line)
		t.warn.Printf("unrecognized statement dropped: %s", line)
		t.Stats.Unrecognized++
		return nil, nil
	}
}

// Open reports whether a multi-line statement is still in progress. The
// apply path uses it to find statement boundaries when batching execution.
func (t *Translator) Open() bool {
	return t.context != ContextNone
}

// Finish returns the deferred AUTO_INCREMENT statements followed by the
// closing lines. It must be called exactly once, after the input is
// exhausted: MySQL can only mark a column auto-incrementing once the column
// is part of a key, which the source dump establishes in a later ALTER.
func (t *Translator) Finish() []string {
	out := make([]string, 0, len(t.deferred)+2)
	out = append(out, t.deferred...)
	out = append(out, "", "SET FOREIGN_KEY_CHECKS = 1;")
	t.Stats.Deferred = len(t.deferred)
	return out
}

// transactionalBlock suppresses every line from BEGIN through COMMIT or
// ROLLBACK. Row insertions inside such a block would otherwise desynchronize
// statement-context tracking, so nothing in the block is rewritten.
func (t *Translator) transactionalBlock(line string) []string {
	if t.context != ContextTransactionalBlock {
		t.context = ContextTransactionalBlock
	} else if endTxRe.MatchString(line) {
		t.context = ContextNone
	}
	t.warn.Printf("suppressing transactional block line: %s", line)
	t.Stats.Suppressed++
	return nil
}

// skip reports whether table (schema-qualified, quotes already stripped) is
// excluded from the output.
func (t *Translator) skip(table string) bool {
	return t.skipTables[table]
}

// stripIdentQuotes removes PostgreSQL double quotes from a possibly
// schema-qualified identifier.
func stripIdentQuotes(ident string) string {
	return strings.ReplaceAll(ident, `"`, "")
}

// splitQualified splits "schema.table" into its parts; schema is empty when
// the name is unqualified.
func splitQualified(ident string) (schema, table string) {
	if i := strings.IndexByte(ident, '.'); i >= 0 {
		return ident[:i], ident[i+1:]
	}
	return "", ident
}
