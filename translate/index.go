package translate

import "regexp"

var (
	indexOnRe     = regexp.MustCompile(` ON ([^\s(]+)`)
	usingMethodRe = regexp.MustCompile(` USING [a-z_]+`)
	patternOpsRe  = regexp.MustCompile(` (?:varchar|text|bpchar)_pattern_ops`)
)

// createIndex handles single-line CREATE INDEX statements. The index method
// and pattern-matching operator classes mean nothing to MySQL and are
// dropped. Column names inside the index are left unquoted; see README.
func (t *Translator) createIndex(line string) []string {
	if m := indexOnRe.FindStringSubmatch(line); m != nil && t.skip(stripIdentQuotes(m[1])) {
		t.warn.Printf("skipping index on table %s", stripIdentQuotes(m[1]))
		t.Stats.Suppressed++
		return nil
	}
	line = usingMethodRe.ReplaceAllString(line, "")
	line = patternOpsRe.ReplaceAllString(line, "")
	return []string{line}
}
