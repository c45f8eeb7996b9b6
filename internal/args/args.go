// Package args describes command grammars as ordered schemas and turns them
// into argument lists.
//
// A Schema is a command name, a list of checks and a list of parts. Checks are
// evaluated first; the first failing check aborts the build before a single
// token is produced. Parts are then emitted in order, each one contributing
// its tokens only when present.
package args

import (
	"errors"
	"strings"
)

var (
	ErrInvalid     = errors.New("invalid argument")
	ErrUnsupported = errors.New("unsupported value")
)

// Error is returned when a command cannot be built from its parameters.
type Error struct {
	Cmd    string
	Reason string

	base error
}

func (e *Error) Error() string {
	return "redis-stack: " + e.Cmd + ": " + e.Reason
}

func (e *Error) Unwrap() error {
	return e.base
}

// Part is one element of a command grammar.
type Part struct {
	keyword  string
	values   []interface{}
	children []Part
	present  bool
	counted  bool
}

// Pos is a required positional group, always emitted.
func Pos(values ...interface{}) Part {
	return Part{values: values, present: true}
}

// Flag is a bare keyword emitted when on is true.
func Flag(keyword string, on bool) Part {
	return Part{keyword: keyword, present: on}
}

// Opt is a keyword followed by its values, emitted when on is true.
func Opt(keyword string, on bool, values ...interface{}) Part {
	return Part{keyword: keyword, values: values, present: on}
}

// List is a keyword followed by values, emitted when values is not empty.
func List(keyword string, values ...interface{}) Part {
	return Part{keyword: keyword, values: values, present: len(values) > 0}
}

// Counted is a keyword, the number of values and the values, emitted when
// values is not empty.
func Counted(keyword string, values ...interface{}) Part {
	return Part{keyword: keyword, values: values, present: len(values) > 0, counted: true}
}

// Group emits its children, in order, when on is true.
func Group(on bool, children ...Part) Part {
	return Part{children: children, present: on}
}

func (p Part) appendTo(dst []interface{}) []interface{} {
	if !p.present {
		return dst
	}
	if p.keyword != "" {
		dst = append(dst, p.keyword)
	}
	if p.counted {
		dst = append(dst, len(p.values))
	}
	dst = append(dst, p.values...)
	for _, child := range p.children {
		dst = child.appendTo(dst)
	}
	return dst
}

func (p Part) size() int {
	if !p.present {
		return 0
	}
	n := len(p.values)
	if p.keyword != "" {
		n++
	}
	if p.counted {
		n++
	}
	for _, child := range p.children {
		n += child.size()
	}
	return n
}

// Check is a precondition of a Schema.
type Check struct {
	failed bool
	reason string
	base   error
}

// Require fails with reason unless ok.
func Require(ok bool, reason string) Check {
	return Check{failed: !ok, reason: reason, base: ErrInvalid}
}

// Exclusive fails when more than one of the options is set.
func Exclusive(reason string, options ...bool) Check {
	n := 0
	for _, on := range options {
		if on {
			n++
		}
	}
	return Check{failed: n > 1, reason: reason, base: ErrInvalid}
}

// NonEmpty fails when a required collection has no elements.
func NonEmpty(name string, n int) Check {
	return Check{failed: n == 0, reason: name + " must not be empty", base: ErrInvalid}
}

// NonNegative fails when v is negative.
func NonNegative(name string, v float64) Check {
	return Check{failed: v < 0, reason: name + " must not be negative", base: ErrInvalid}
}

// Supported fails with ErrUnsupported unless ok.
func Supported(ok bool, what string) Check {
	return Check{failed: !ok, reason: "unsupported " + what, base: ErrUnsupported}
}

// Schema is the grammar of one command invocation. Name may hold a
// container command and its subcommand separated by a space, e.g.
// "TFUNCTION LOAD".
type Schema struct {
	Name   string
	Checks []Check
	Parts  []Part
}

// Build validates the schema and returns the full argument list, command
// name tokens first.
func (s Schema) Build() ([]interface{}, error) {
	for _, check := range s.Checks {
		if check.failed {
			return nil, &Error{Cmd: s.Name, Reason: check.reason, base: check.base}
		}
	}

	name := strings.Fields(s.Name)
	n := len(name)
	for _, part := range s.Parts {
		n += part.size()
	}

	out := make([]interface{}, 0, n)
	for _, tok := range name {
		out = append(out, tok)
	}
	for _, part := range s.Parts {
		out = part.appendTo(out)
	}
	return out, nil
}

// Fail returns an argument error for cmd without building anything.
func Fail(cmd, reason string) error {
	return &Error{Cmd: cmd, Reason: reason, base: ErrInvalid}
}

func Strings(ss []string) []interface{} {
	out := make([]interface{}, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

func Floats(fs []float64) []interface{} {
	out := make([]interface{}, len(fs))
	for i, f := range fs {
		out[i] = f
	}
	return out
}

func Ints(is []int64) []interface{} {
	out := make([]interface{}, len(is))
	for i, v := range is {
		out[i] = v
	}
	return out
}
