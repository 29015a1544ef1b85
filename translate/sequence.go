package translate

import (
	"fmt"
	"regexp"
)

// The sequence name in a pg_dump setval call is <table>_<column>_seq; the
// final two underscore-separated tokens are peeled off to recover the table.
var setvalCallRe = regexp.MustCompile(`setval\('"?(?:([A-Za-z_][A-Za-z0-9_$]*)"?\."?)?([A-Za-z_][A-Za-z0-9_$]*)_[A-Za-z0-9$]+_seq"?'\s*,\s*([0-9]+)`)

// sequenceValue rewrites a "SELECT pg_catalog.setval(...)" statement into
// the equivalent AUTO_INCREMENT assignment. A setval line that cannot be
// decomposed is a fatal error: without it the translated dump would restart
// every key at 1.
func (t *Translator) sequenceValue(line string) ([]string, error) {
	m := setvalCallRe.FindStringSubmatch(line)
	if m == nil {
		return nil, fmt.Errorf("cannot decompose sequence-value statement: %q", line)
	}

	table := m[2]
	if m[1] != "" {
		table = m[1] + "." + m[2]
	}
	if t.skip(table) {
		t.warn.Printf("skipping sequence value for table %s", table)
		t.Stats.Suppressed++
		return nil, nil
	}
	return []string{fmt.Sprintf("ALTER TABLE %s AUTO_INCREMENT = %s;", table, m[3])}, nil
}
