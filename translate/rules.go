package translate

import (
	"regexp"
	"strings"
)

// rewriteRule is one step of a statement kind's rewrite pipeline. Rules are
// applied in slice order; earlier rules must not corrupt the patterns later
// rules match, so the order is part of the contract and is exercised
// directly by tests.
type rewriteRule struct {
	name  string
	apply func(string) string
}

func regexpRule(name, pattern, replacement string) rewriteRule {
	re := regexp.MustCompile(pattern)
	return rewriteRule{name, func(line string) string {
		return re.ReplaceAllString(line, replacement)
	}}
}

var (
	reUnsignedInt    = regexp.MustCompile(`\b(smallint|integer|bigint|int)\s+unsigned\b`)
	reBoolCol        = regexp.MustCompile(`\bboolean\b`)
	reBoolDefault    = regexp.MustCompile(`DEFAULT (true|false)`)
	reCastDefault    = regexp.MustCompile(`DEFAULT \(?'?(-?[0-9]+(?:\.[0-9]+)?)'?\)?::(?:smallint|integer|bigint|numeric|real|double precision)`)
	reNextvalDefault = regexp.MustCompile(` DEFAULT nextval\('[^']+'(?:::regclass)?\)`)
	reCastSuffix     = regexp.MustCompile(`::"?[a-z_]+"?(?: varying| precision)?(?:\([0-9, ]*\))?(?:\[\])?`)
	reTimestampTZ    = regexp.MustCompile(` with(?:out)? time zone`)
	reNowDefault     = regexp.MustCompile(`DEFAULT now\(\)`)
	reTSOffset       = regexp.MustCompile(`(DEFAULT '[0-9]{4}-[0-9]{2}-[0-9]{2}[ T][0-9]{2}:[0-9]{2}:[0-9]{2}(?:\.[0-9]+)?)[+-][0-9]{2}(?::?[0-9]{2})?'`)
	reTimestampCol   = regexp.MustCompile(`\btimestamp\b`)
	reNotNullTail    = regexp.MustCompile(`NOT NULL(,?)\s*$`)
	reFnDefault      = regexp.MustCompile(` DEFAULT ([a-z_][a-z0-9_]*)\([^()]*\)`)
	reFieldName      = regexp.MustCompile(`^(\s*)(?:"([^"]+)"|([A-Za-z_][A-Za-z0-9_$]*))`)
)

// createTableRules is the fixed rewrite pipeline for every line of a CREATE
// TABLE statement. Type mappings come first, default-value repairs second,
// identifier quoting last, so a mapped type name never confuses a later
// default rule.
var createTableRules = []rewriteRule{
	{"unsigned integers", func(line string) string {
		return reUnsignedInt.ReplaceAllStringFunc(line, func(m string) string {
			base := strings.Fields(m)[0]
			if base == "integer" {
				base = "int"
			}
			return base + " UNSIGNED"
		})
	}},
	regexpRule("bigserial columns", `\bbigserial\b`, "bigint"),
	regexpRule("serial columns", `\bserial\b`, "int"),
	regexpRule("uuid columns", `\buuid\b`, "varchar(36)"),
	regexpRule("bytea columns", `\bbytea\b`, "BLOB"),
	{"boolean columns", func(line string) string {
		line = reBoolCol.ReplaceAllString(line, "bool")
		return reBoolDefault.ReplaceAllStringFunc(line, func(m string) string {
			if strings.HasSuffix(m, "true") {
				return "DEFAULT '1'"
			}
			return "DEFAULT '0'"
		})
	}},
	regexpRule("jsonb columns", `\bjsonb\b`, "json"),
	regexpRule("text array columns", `\btext\[\]`, "longtext"),
	regexpRule("sized varying character arrays", `character varying\([0-9]+\)\[\]`, "longtext"),
	regexpRule("sized varying characters", `character varying\(([0-9]+)\)`, "varchar($1)"),
	regexpRule("unsized varying characters", `character varying`, "longtext"),
	regexpRule("sized characters", `\bcharacter\(([0-9]+)\)`, "char($1)"),
	regexpRule("unsized characters", `\bcharacter\b`, "char(1)"),
	regexpRule("text columns", `\btext\b`, "longtext"),
	regexpRule("inet columns", `\binet\b`, "varchar(43)"),
	regexpRule("cidr columns", `\bcidr\b`, "varchar(43)"),
	regexpRule("macaddr columns", `\bmacaddr\b`, "varchar(17)"),
	regexpRule("money columns", `\bmoney\b`, "decimal(19,2)"),
	regexpRule("numeric cast defaults", reCastDefault.String(), "DEFAULT $1"),
	regexpRule("sequence defaults", reNextvalDefault.String(), ""),
	regexpRule("cast suffixes", reCastSuffix.String(), ""),
	regexpRule("time zone qualifiers", reTimestampTZ.String(), ""),
	regexpRule("current timestamp defaults", reNowDefault.String(), "DEFAULT CURRENT_TIMESTAMP"),
	regexpRule("timestamp zone offsets", reTSOffset.String(), "$1'"),
	{"zero timestamp defaults", zeroTimestampDefault},
	{"longtext defaults", dropLongtextDefault},
	{"function defaults", rewriteFunctionDefault},
	regexpRule("citext columns", `\bpublic\.citext\b`, "longtext"),
	regexpRule("hstore columns", `\bpublic\.hstore\b`, "longtext"),
	{"column quoting", quoteColumnName},
}

// zeroTimestampDefault gives NOT NULL timestamp columns without a default an
// explicit zero default. MySQL refuses a timestamp column that has neither a
// default nor an implicit one.
func zeroTimestampDefault(line string) string {
	if !reTimestampCol.MatchString(line) || strings.Contains(line, "DEFAULT") {
		return line
	}
	return reNotNullTail.ReplaceAllString(line, "NOT NULL DEFAULT '0000-00-00 00:00:00'$1")
}

// dropLongtextDefault removes the default from a longtext column, keeping a
// trailing NOT NULL. MySQL text columns may not carry defaults.
func dropLongtextDefault(line string) string {
	i := strings.Index(line, "longtext DEFAULT")
	if i < 0 {
		return line
	}
	rest := line[i+len("longtext DEFAULT"):]
	out := line[:i] + "longtext"
	if strings.Contains(rest, "NOT NULL") {
		out += " NOT NULL"
	}
	if strings.HasSuffix(strings.TrimRight(rest, " "), ",") {
		out += ","
	}
	return out
}

// rewriteFunctionDefault maps json_build_object defaults to MySQL's
// json_object and strips defaults calling functions MySQL has no
// equivalent for.
func rewriteFunctionDefault(line string) string {
	line = strings.ReplaceAll(line, "json_build_object(", "json_object(")
	return reFnDefault.ReplaceAllStringFunc(line, func(m string) string {
		name := reFnDefault.FindStringSubmatch(m)[1]
		if name == "json_object" {
			return m
		}
		return ""
	})
}

// quoteColumnName wraps the bare column-name token of a field-definition
// line in backticks. Lines that open or close the statement, or declare
// table-level constraints, have no leading column name and pass through.
func quoteColumnName(line string) string {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "" || trimmed == "(":
		return line
	case strings.HasPrefix(trimmed, "CREATE TABLE"),
		strings.HasPrefix(trimmed, "CONSTRAINT"),
		strings.HasPrefix(trimmed, "PRIMARY KEY"),
		strings.HasPrefix(trimmed, "UNIQUE"),
		strings.HasPrefix(trimmed, ")"),
		strings.HasPrefix(trimmed, "`"):
		return line
	}
	return reFieldName.ReplaceAllString(line, "${1}`$2$3`")
}

// quoteColumnList backticks every name in a comma-separated column list,
// dropping any PostgreSQL double quotes on the way.
func quoteColumnList(list string) string {
	parts := strings.Split(list, ",")
	for i, part := range parts {
		name := strings.Trim(strings.TrimSpace(part), `"`)
		parts[i] = "`" + name + "`"
	}
	return strings.Join(parts, ", ")
}
