package translate

import (
	"regexp"
	"strings"
)

var (
	insertOpenRe      = regexp.MustCompile(`^INSERT INTO ([^\s(]+) \(([^)]*)\) VALUES `)
	insertBareRe      = regexp.MustCompile(`^INSERT INTO ([^\s(]+) VALUES `)
	tsLiteralOffsetRe = regexp.MustCompile(`([0-9]{2}:[0-9]{2}:[0-9]{2}\.[0-9]+)[+-][0-9]{2}(?::?[0-9]{2})?'`)
	hexLiteralRe      = regexp.MustCompile(`'\\x([0-9a-fA-F]*)'`)
)

// insert handles INSERT INTO statements. A row value may span lines and may
// contain text that looks like a statement terminator, so the close decision
// rests on the quote parity accumulated since the opening line: a line
// ending in ");" terminates the statement only when every single-quoted
// literal opened so far has been closed again.
func (t *Translator) insert(line string) []string {
	opening := t.context != ContextRowInsertion
	if opening {
		// Identifier quotes are stripped on emission too: MySQL rejects
		// double-quoted names without ANSI_QUOTES.
		var table, rewritten string
		if m := insertOpenRe.FindStringSubmatch(line); m != nil {
			table = stripIdentQuotes(m[1])
			rewritten = table + " (" + quoteColumnList(m[2]) + ") VALUES " + line[len(m[0]):]
		} else if m := insertBareRe.FindStringSubmatch(line); m != nil {
			// pg_dump without --column-inserts omits the column list.
			table = stripIdentQuotes(m[1])
			rewritten = table + " VALUES " + line[len(m[0]):]
		} else {
			t.warn.Printf("unrecognized insertion dropped: %s", line)
			t.Stats.Unrecognized++
			return nil
		}

		t.suppressed = t.skip(table)
		if t.suppressed {
			t.warn.Printf("skipping insertion into table %s", table)
		}

		keyword := "INSERT INTO"
		if t.insertIgnore {
			keyword = "INSERT IGNORE INTO"
		}
		line = keyword + " " + rewritten
		t.quoteParity = 0
	}

	// Parity is counted on the line before literal rewriting: the rewrites
	// below add and remove quote characters of their own.
	t.quoteParity = (t.quoteParity + strings.Count(line, "'")) % 2

	if strings.HasSuffix(line, ");") && t.quoteParity == 0 {
		t.context = ContextNone
	} else {
		t.context = ContextRowInsertion
	}

	if t.suppressed {
		t.Stats.Suppressed++
		return nil
	}
	return []string{rewriteInsertLiterals(line)}
}

// rewriteInsertLiterals repairs literal values for MySQL's escaping rules.
// The escaped-quote handling deliberately mirrors long-standing converter
// behavior, quirks included; consumers depend on the exact output.
func rewriteInsertLiterals(line string) string {
	line = tsLiteralOffsetRe.ReplaceAllString(line, "$1'")
	line = strings.ReplaceAll(line, `\t`, `\\t`)
	line = strings.ReplaceAll(line, `\n`, `\\n`)
	line = hexLiteralRe.ReplaceAllString(line, "X'$1'")
	line = strings.ReplaceAll(line, `\'''`, `\\'''`)
	line = strings.ReplaceAll(line, `\"`, `\\"`)
	return line
}
