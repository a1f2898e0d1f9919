package gen

import (
	"errors"
	"fmt"
)

// ErrFatal matches every error that aborts a compilation.
var ErrFatal = errors.New("fatal compilation error")

// locatable errors get the emission path filled in by the first Emit frame
// they pass through.
type locatable interface {
	locate(path string)
}

// UnsupportedKindError reports a block kind with no registered rule.
type UnsupportedKindError struct {
	Kind string
	Path string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("unsupported block kind %q at %s", e.Kind, e.Path)
}

func (e *UnsupportedKindError) Is(target error) bool { return target == ErrFatal }

func (e *UnsupportedKindError) locate(path string) {
	if e.Path == "" {
		e.Path = path
	}
}

// AccessError reports a (mode, anchor) pair the access table or the
// container cannot serve.
type AccessError struct {
	Mode      Mode
	Anchor    Anchor
	Container string // what the container could not do, if that was the cause
	Path      string
}

func (e *AccessError) Error() string {
	msg := fmt.Sprintf("invalid access configuration (%s, %s)", e.Mode, e.Anchor)
	if e.Container != "" {
		msg += " on " + e.Container
	}
	if e.Path != "" {
		msg += " at " + e.Path
	}
	return msg
}

func (e *AccessError) Is(target error) bool { return target == ErrFatal }

func (e *AccessError) locate(path string) {
	if e.Path == "" {
		e.Path = path
	}
}

// FieldError reports a field holding a value its block does not accept.
type FieldError struct {
	Kind  string
	Field string
	Value string
	Path  string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("block %s: invalid %s value %q at %s", e.Kind, e.Field, e.Value, e.Path)
}

func (e *FieldError) Is(target error) bool { return target == ErrFatal }

func (e *FieldError) locate(path string) {
	if e.Path == "" {
		e.Path = path
	}
}

// ShapeError reports a statement block plugged into a value slot.
type ShapeError struct {
	Kind string
	Path string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("block %q at %s produces a statement where a value is expected", e.Kind, e.Path)
}

func (e *ShapeError) Is(target error) bool { return target == ErrFatal }

func (e *ShapeError) locate(path string) {
	if e.Path == "" {
		e.Path = path
	}
}
