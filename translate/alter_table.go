package translate

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	alterOpenRe     = regexp.MustCompile(`^ALTER TABLE (?:ONLY )?([^\s;]+)`)
	ownerToRe       = regexp.MustCompile(`\bOWNER TO\b`)
	referencesRe    = regexp.MustCompile(`\bREFERENCES ([^\s(;]+)`)
	setSeqDefaultRe = regexp.MustCompile(`^ALTER TABLE (?:ONLY )?([^\s;]+) ALTER COLUMN "?([A-Za-z_][A-Za-z0-9_$]*)"? SET DEFAULT nextval\(`)
	deferrableRe    = regexp.MustCompile(` (?:NOT )?DEFERRABLE(?: INITIALLY (?:DEFERRED|IMMEDIATE))?`)
	usingIndexRe    = regexp.MustCompile(` USING [a-z_]+;$`)
	keyColumnsRe    = regexp.MustCompile(`(PRIMARY KEY|UNIQUE) \(([^)]*)\)`)
	fkTerminatorRe  = regexp.MustCompile(` ?;$`)
)

// alterTable handles ALTER TABLE statements. The statement opens on its
// first line and closes on a trailing semicolon; because a continuation line
// can still veto the whole statement (a foreign key pointing at an excluded
// table), rewritten lines are buffered and only released once the closing
// line settles the verdict.
func (t *Translator) alterTable(line, next string) []string {
	if t.context != ContextTableAlteration {
		if ownerToRe.MatchString(line) {
			// MySQL has no table ownership.
			t.warn.Printf("dropping ownership assignment: %s", strings.TrimSpace(line))
			t.Stats.Suppressed++
			return nil
		}

		if m := setSeqDefaultRe.FindStringSubmatch(line); m != nil {
			return t.deferAutoIncrement(stripIdentQuotes(m[1]), m[2])
		}

		m := alterOpenRe.FindStringSubmatch(line)
		if m == nil {
			t.warn.Printf("unrecognized statement dropped: %s", line)
			t.Stats.Unrecognized++
			return nil
		}
		table := stripIdentQuotes(m[1])
		t.suppressed = t.skip(table)
		if t.suppressed {
			t.warn.Printf("skipping alteration of table %s", table)
		} else if ref := referencesRe.FindStringSubmatch(next); ref != nil && t.skip(stripIdentQuotes(ref[1])) {
			// The foreign key on the next line would point at a dropped table.
			t.suppressed = true
			t.warn.Printf("skipping alteration of table %s: it references skipped table %s",
				table, stripIdentQuotes(ref[1]))
		}

		line = strings.Replace(line, "ALTER TABLE ONLY ", "ALTER TABLE ", 1)
		t.context = ContextTableAlteration
		t.alterBuf = t.alterBuf[:0]
	} else if ref := referencesRe.FindStringSubmatch(line); ref != nil && t.skip(stripIdentQuotes(ref[1])) {
		t.suppressed = true
		t.warn.Printf("skipping foreign key to skipped table %s", stripIdentQuotes(ref[1]))
	}

	closed := alterClosed(line)
	if closed {
		t.context = ContextNone
	}

	if t.suppressed {
		t.Stats.Suppressed++
		if closed {
			t.Stats.Suppressed += len(t.alterBuf)
			t.alterBuf = t.alterBuf[:0]
		}
		return nil
	}

	line = deferrableRe.ReplaceAllString(line, "")
	line = usingIndexRe.ReplaceAllString(line, ";")
	line = keyColumnsRe.ReplaceAllStringFunc(line, func(m string) string {
		sub := keyColumnsRe.FindStringSubmatch(m)
		return sub[1] + " (" + quoteColumnList(sub[2]) + ")"
	})
	if strings.Contains(line, "FOREIGN KEY") {
		line = fkTerminatorRe.ReplaceAllString(line, ";")
	}

	t.alterBuf = append(t.alterBuf, line)
	if !closed {
		return nil
	}
	out := append([]string(nil), t.alterBuf...)
	t.alterBuf = t.alterBuf[:0]
	return out
}

// alterClosed reports whether line terminates the open alteration. Foreign
// key lines are closed even with a single space before the semicolon, a
// formatting quirk some pg_dump versions produce.
func alterClosed(line string) bool {
	if strings.Contains(line, "FOREIGN KEY") {
		return fkTerminatorRe.MatchString(line)
	}
	return strings.HasSuffix(line, ";")
}

// deferAutoIncrement records an AUTO_INCREMENT conversion for the end of the
// run instead of emitting it inline. MySQL only accepts the modifier once
// the column is part of a key, and the source dump adds the key in a later
// alteration statement.
func (t *Translator) deferAutoIncrement(table, column string) []string {
	if t.skip(table) {
		t.warn.Printf("skipping alteration of table %s", table)
		t.Stats.Suppressed++
		return nil
	}
	t.deferred = append(t.deferred,
		fmt.Sprintf("ALTER TABLE %s MODIFY `%s` int AUTO_INCREMENT;", table, column))
	return nil
}
