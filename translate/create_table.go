package translate

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	createTableOpenRe = regexp.MustCompile(`^CREATE TABLE (?:IF NOT EXISTS )?([^\s(]+)`)
	checkClauseRe     = regexp.MustCompile(`\bCHECK \(`)
)

// createTable handles every line of a CREATE TABLE statement. The opening
// line declares the owning schema the first time it appears (a MySQL
// database drop-and-recreate pair) and settles the skip verdict for the
// whole statement; each line then runs through createTableRules.
func (t *Translator) createTable(line string) []string {
	var out []string

	if t.context != ContextTableCreation {
		m := createTableOpenRe.FindStringSubmatch(line)
		if m == nil {
			t.warn.Printf("unrecognized statement dropped: %s", line)
			t.Stats.Unrecognized++
			return nil
		}
		t.context = ContextTableCreation

		name := stripIdentQuotes(m[1])
		// MySQL rejects double-quoted identifiers without ANSI_QUOTES.
		line = strings.Replace(line, m[1], name, 1)
		schema, _ := splitQualified(name)
		if schema != "" && !t.seenSchema[schema] {
			t.seenSchema[schema] = true
			t.Stats.Schemas++
			out = append(out,
				fmt.Sprintf("DROP DATABASE IF EXISTS %s;", schema),
				fmt.Sprintf("CREATE DATABASE %s;", schema),
				"",
			)
		}

		t.suppressed = t.skip(name)
		if t.suppressed {
			t.warn.Printf("skipping creation of table %s", name)
		}
	}

	if strings.HasSuffix(strings.TrimRight(line, " "), ");") {
		t.context = ContextNone
	}

	if t.suppressed {
		t.Stats.Suppressed++
		return out
	}

	if checkClauseRe.MatchString(line) {
		return append(out, rewriteCheckConstraint(line))
	}

	for _, rule := range createTableRules {
		line = rule.apply(line)
	}
	return append(out, line)
}
