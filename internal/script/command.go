// Package script implements the keystroke-injection engine: two command
// dialects, a table-driven dispatcher, the modifier/key sequencing state
// machine, and the line-oriented interpreter driver.
package script

import "strings"

// Dialect selects which grammar a script line is parsed with.
type Dialect int

const (
	// DialectDucky is the space-delimited `COMMAND params` grammar with
	// REM comments.
	DialectDucky Dialect = iota
	// DialectCustom is the colon-delimited `COMMAND:params` grammar with
	// # comments.
	DialectCustom
)

func (d Dialect) String() string {
	if d == DialectCustom {
		return "custom"
	}
	return "ducky"
}

// Command is one normalized script line. Name is upper-cased at parse time;
// Params keeps the original case and interior whitespace.
type Command struct {
	Name    string
	Params  string
	Dialect Dialect
}

// Parse tokenizes a trimmed line with the given dialect. The second return
// value is false when the line is blank or consumed entirely as a comment.
func Parse(line string, d Dialect) (Command, bool) {
	if d == DialectCustom {
		return parseCustom(line)
	}
	return parseDucky(line)
}

func parseDucky(line string) (Command, bool) {
	if line == "" {
		return Command{}, false
	}
	name, params, _ := strings.Cut(line, " ")
	name = strings.ToUpper(name)
	if name == "REM" {
		return Command{}, false
	}
	// Chord lines (CTRL+ALT+DELETE, SHIFT+TAB, ...) are resolved as a whole
	// by the dispatcher; anything after the chord is not a parameter.
	if strings.Contains(name, "+") {
		return Command{Name: name, Dialect: DialectDucky}, true
	}
	return Command{Name: name, Params: strings.TrimSpace(params), Dialect: DialectDucky}, true
}

func parseCustom(line string) (Command, bool) {
	if line == "" || strings.HasPrefix(line, "#") {
		return Command{}, false
	}
	name, params, found := strings.Cut(line, ":")
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return Command{}, false
	}
	if !found {
		return Command{Name: name, Dialect: DialectCustom}, true
	}
	return Command{Name: name, Params: strings.TrimSpace(params), Dialect: DialectCustom}, true
}

// IsComment reports whether a trimmed line is a comment for the dialect.
// The driver counts comment lines as skipped without dispatching them.
func IsComment(line string, d Dialect) bool {
	if d == DialectCustom {
		return strings.HasPrefix(line, "#")
	}
	word, _, _ := strings.Cut(line, " ")
	return strings.EqualFold(word, "REM")
}
