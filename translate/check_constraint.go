package translate

import (
	"regexp"
	"strings"
)

var (
	checkCastParenRe = regexp.MustCompile(`\(([^()]*)\)::"?[a-z_]+"?(?: varying| precision)?(?:\([0-9, ]*\))?(?:\[\])?`)
	checkCastRe      = regexp.MustCompile(`::"?[a-z_]+"?(?: varying| precision)?(?:\([0-9, ]*\))?(?:\[\])?`)
	checkAnyArrayRe  = regexp.MustCompile(`= ANY \(\(?ARRAY\[(.*?)\]\)?\)`)
)

// rewriteCheckConstraint turns a PostgreSQL CHECK clause into one MySQL
// accepts. Cast annotations are stripped iteratively because casts nest
// (a parenthesized cast can wrap another cast); "= ANY (ARRAY[...])"
// becomes "IN (...)". The iterative passes can leave one close-paren too
// many behind, so the final step trims trailing parens until the counts
// match.
func rewriteCheckConstraint(line string) string {
	for checkCastParenRe.MatchString(line) {
		line = checkCastParenRe.ReplaceAllString(line, "($1)")
	}
	for checkCastRe.MatchString(line) {
		line = checkCastRe.ReplaceAllString(line, "")
	}
	line = checkAnyArrayRe.ReplaceAllString(line, "IN ($1)")
	line = strings.Replace(line, "((", "(", 1)
	line = strings.Replace(line, "))", ")", 1)
	return trimUnbalancedParens(line)
}

// trimUnbalancedParens removes trailing close-parens that have no matching
// open-paren, preserving a trailing separator.
func trimUnbalancedParens(line string) string {
	body := strings.TrimRight(line, " ")
	tail := ""
	if strings.HasSuffix(body, ",") || strings.HasSuffix(body, ";") {
		tail = body[len(body)-1:]
		body = body[:len(body)-1]
	}
	for strings.Count(body, ")") > strings.Count(body, "(") && strings.HasSuffix(body, ")") {
		body = body[:len(body)-1]
	}
	return body + tail
}
