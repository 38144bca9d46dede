// Package demo is the todo-list application served and exported by the
// feather CLI. It shows the usual shapes: a store whose values interpolate
// through fmt.Stringer, lists of nested renders, components with
// lifecycle callbacks, and a full document shell.
package demo
