package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckConstraintAnyArrayBecomesIn(t *testing.T) {
	line := `    CONSTRAINT status_check CHECK (((status)::text = ANY ((ARRAY['new'::character varying, 'done'::character varying])::text[])))`
	expected := `    CONSTRAINT status_check CHECK ((status) IN ('new', 'done'))`
	assert.Equal(t, expected, rewriteCheckConstraint(line))
}

func TestCheckConstraintCastStripped(t *testing.T) {
	line := `    CONSTRAINT code_check CHECK (((code)::text <> ''::text))`
	out := rewriteCheckConstraint(line)
	assert.NotContains(t, out, "::")
	assert.Equal(t, countRunes(out, '('), countRunes(out, ')'))
}

func TestCheckConstraintInsideCreateTable(t *testing.T) {
	tr := New(Options{})
	out := runAll(t, tr, "CREATE TABLE public.t (\n    kind text,\n    CONSTRAINT kind_check CHECK (((kind)::text = ANY ((ARRAY['a'::character varying, 'b'::character varying])::text[])))\n);")
	assert.Equal(t, "    CONSTRAINT kind_check CHECK ((kind) IN ('a', 'b'))", out[5])
	assert.Equal(t, ");", out[6])
}

func TestTrimUnbalancedParens(t *testing.T) {
	assert.Equal(t, "CHECK ((x > 0))", trimUnbalancedParens("CHECK ((x > 0)))"))
	assert.Equal(t, "CHECK (x),", trimUnbalancedParens("CHECK (x)),"))
	assert.Equal(t, "CHECK (x)", trimUnbalancedParens("CHECK (x)"))
}

func countRunes(s string, r rune) int {
	n := 0
	for _, c := range s {
		if c == r {
			n++
		}
	}
	return n
}
