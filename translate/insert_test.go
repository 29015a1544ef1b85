package translate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInsertColumnsQuoted(t *testing.T) {
	tr := New(Options{})
	out := runAll(t, tr, "INSERT INTO public.users (id, email) VALUES (1, 'a@example.com');")
	require.Len(t, out, 1)
	assert.Equal(t, "INSERT INTO public.users (`id`, `email`) VALUES (1, 'a@example.com');", out[0])
}

func TestInsertWithoutColumnList(t *testing.T) {
	tr := New(Options{})
	out := runAll(t, tr, "INSERT INTO public.users VALUES (1, 'a@example.com');")
	require.Len(t, out, 1)
	assert.Equal(t, "INSERT INTO public.users VALUES (1, 'a@example.com');", out[0])
}

func TestQuotedInsertTableNameStrippedOnEmission(t *testing.T) {
	tr := New(Options{})
	out := runAll(t, tr, "INSERT INTO public.\"Users\" (id) VALUES (1);")
	require.Len(t, out, 1)
	assert.Equal(t, "INSERT INTO public.Users (`id`) VALUES (1);", out[0])
}

func TestQuoteParityKeepsStatementOpen(t *testing.T) {
	tr := New(Options{})
	input := strings.Join([]string{
		"INSERT INTO public.posts (id, body) VALUES (1, 'looks closed );",
		"but it is not );",
		"done');",
	}, "\n")
	out := runAll(t, tr, input)

	// All three physical lines belong to one logical statement: the first
	// two end in ");" inside an open literal and must not close it.
	require.Len(t, out, 3)
	assert.Equal(t, "done');", out[2])
	assert.Equal(t, ContextNone, tr.context)
}

func TestQuoteParityMidStatement(t *testing.T) {
	tr := New(Options{})
	_, err := tr.Translate("INSERT INTO public.posts (id, body) VALUES (1, 'open", "")
	require.NoError(t, err)
	assert.Equal(t, ContextRowInsertion, tr.context)

	// A continuation line with an odd quote count closes the literal, so a
	// trailing ");" now ends the statement.
	_, err = tr.Translate("closed');", "")
	require.NoError(t, err)
	assert.Equal(t, ContextNone, tr.context)
}

func TestInsertIgnoreKeyword(t *testing.T) {
	tr := New(Options{InsertIgnore: true})
	out := runAll(t, tr, "INSERT INTO public.users (id) VALUES (1);")
	assert.Equal(t, "INSERT IGNORE INTO public.users (`id`) VALUES (1);", out[0])
}

func TestSkippedTableInsertSuppressed(t *testing.T) {
	warn := &recordingLogger{}
	tr := New(Options{SkipTables: []string{"public.users"}, Warnings: warn})
	out := runAll(t, tr, strings.Join([]string{
		"INSERT INTO public.users (id, bio) VALUES (1, 'line one",
		"line two');",
	}, "\n"))
	assert.Empty(t, out)
	assert.Equal(t, ContextNone, tr.context)
}

func TestTimestampLiteralOffsetStripped(t *testing.T) {
	tr := New(Options{})
	out := runAll(t, tr, "INSERT INTO public.events (at) VALUES ('2023-01-02 03:04:05.123456+00');")
	assert.Equal(t, "INSERT INTO public.events (`at`) VALUES ('2023-01-02 03:04:05.123456');", out[0])
}

func TestHexLiteralRewritten(t *testing.T) {
	tr := New(Options{})
	out := runAll(t, tr, `INSERT INTO public.files (data) VALUES ('\x48656c6c6f');`)
	assert.Equal(t, "INSERT INTO public.files (`data`) VALUES (X'48656c6c6f');", out[0])
}

func TestBackslashEscapesDoubled(t *testing.T) {
	assert.Equal(t, `a\\tb`, rewriteInsertLiterals(`a\tb`))
	assert.Equal(t, `a\\nb`, rewriteInsertLiterals(`a\nb`))
	assert.Equal(t, `a\\"b`, rewriteInsertLiterals(`a\"b`))
}

func TestEscapedQuoteBeforeDoubledQuote(t *testing.T) {
	// Longstanding converter behavior, preserved as-is: the backslash is
	// doubled so it cannot cancel the doubled quote that follows it.
	assert.Equal(t, `\\'''`, rewriteInsertLiterals(`\'''`))
}
