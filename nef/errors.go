package nef

import (
	"errors"
	"fmt"
)

// A ValidationError reports a parsed tree that violates the NEF or
// NMR-STAR conventions. Context holds the names of the enclosing
// elements at the point of failure, outermost first.
type ValidationError struct {
	Msg     string
	Context []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("nef: %s (context %v)", e.Msg, e.Context)
}

// Errors reported by Importer operations, wrapped with the failing name.
var (
	ErrNoData            = errors.New("no data block")
	ErrMultipleBlocks    = errors.New("more than one data block")
	ErrFrameNotFound     = errors.New("saveframe not found")
	ErrFrameExists       = errors.New("saveframe already exists")
	ErrTableNotFound     = errors.New("table not found")
	ErrAttributeNotFound = errors.New("attribute not found")
)
