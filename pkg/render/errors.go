package render

import stderrors "errors"

var (
	// ErrTemplateArity is returned when segments and values do not
	// interleave (len(segments) != len(values)+1).
	ErrTemplateArity = stderrors.New("render: template arity mismatch")

	// ErrSegmentType is returned when HTML finds a non-string literal.
	ErrSegmentType = stderrors.New("render: template segment is not a string")

	// ErrOutsideComponent is returned when a lifecycle callback is
	// registered with no render materializing and no component scope open.
	ErrOutsideComponent = stderrors.New("render: lifecycle callback outside component")

	// ErrDanglingPlaceholder is returned by Materialize when markup holds a
	// placeholder id with no pending nested render.
	ErrDanglingPlaceholder = stderrors.New("render: dangling placeholder")

	// ErrMarkup is returned by Materialize when the markup cannot be parsed.
	ErrMarkup = stderrors.New("render: unparseable markup")
)
