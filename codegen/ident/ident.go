// Package ident provides name handling shared by every emitter: turning a
// Thrift field name into its exported Go setter/accessor spelling, and
// allocating collision-free local variable names for generated statement
// blocks (the "fresh name allocator" constrender.RenderInit, writer and
// reader all depend on).
package ident

import "strconv"

// goReserved holds Go's keywords and the handful of predeclared
// identifiers emitted code is most likely to collide with as a local
// variable name.
var goReserved = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
	"error": true, "len": true, "nil": true, "true": true, "false": true,
}

// Exported converts a Thrift identifier (snake_case, camelCase, or
// already PascalCase) into its exported Go spelling: "user_id" and
// "userId" both become "UserId".
func Exported(name string) string {
	out := make([]byte, 0, len(name))
	upperNext := true
	for i := 0; i < len(name); i++ {
		c := name[i]
		if c == '_' {
			upperNext = true
			continue
		}
		if upperNext && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		upperNext = false
		out = append(out, c)
	}
	return string(out)
}

// Allocator hands out local variable names that never collide with each
// other or with a Go reserved word, appending a numeric suffix on reuse.
// One Allocator is shared across a single generated function body.
type Allocator struct {
	seen   map[string]int
	issued map[string]bool
}

// NewAllocator returns an empty Allocator.
func NewAllocator() *Allocator {
	return &Allocator{seen: make(map[string]int), issued: make(map[string]bool)}
}

// Alloc returns a name derived from hint that hasn't been handed out
// before by this Allocator, escaping it first if hint is a Go reserved
// word.
func (a *Allocator) Alloc(hint string) string {
	if goReserved[hint] {
		hint = hint + "_"
	}
	for {
		n := a.seen[hint]
		a.seen[hint] = n + 1
		name := hint
		if n > 0 {
			name = hint + strconv.Itoa(n)
		}
		if !a.issued[name] {
			a.issued[name] = true
			return name
		}
	}
}
