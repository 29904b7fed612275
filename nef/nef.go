/*
Package nef restricts generically parsed STAR trees to the NEF and
NMR-STAR conventions used for NMR data exchange.

Both dialects require every data block to hold saveframes only, every
saveframe to carry sf_category and sf_framecode items, and all item tags
of a frame (and all column names of a loop) to share one dot-separated
prefix. ParseNmrStar and ParseNef run the generic parse, validate those
rules, and return a converted tree: prefixes stripped, frames renamed to
their framecode, and unquoted values coerced to Go types. NEF adds the
rule that a framecode starts with its category and the tag prefix equals
the category.

The Importer on top of that is a document handle for whole NEF files:
loading, saving, category-based access, and frame editing, with the nef_
category prefix hidden from names by default.
*/
package nef

import (
	"os"
	"strings"

	"github.com/tliron/commonlog"

	star "github.com/nefkit/go-star"
)

type config struct {
	mode              star.Mode
	wrap              bool
	strictColumnNames bool

	// Importer settings; parsing ignores them.
	policy         ErrorPolicy
	logger         commonlog.Logger
	hidePrefix     bool
	safeWrites     bool
	program        string
	programVersion string
}

func newConfig(opts []Option) config {
	cfg := config{
		mode:           star.Standard,
		logger:         log,
		hidePrefix:     true,
		program:        "Unknown",
		programVersion: "Unknown",
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// Option configures dialect parsing and the Importer. Options that do
// not apply to the receiving call are ignored.
type Option func(*config)

// WithMode sets the strictness profile of the underlying generic parse.
func WithMode(m star.Mode) Option {
	return func(c *config) { c.mode = m }
}

// WithWrapInDataBlock wraps input that holds saveframes but no data
// block in a dummy one, so that headless frame fragments still parse.
func WithWrapInDataBlock() Option {
	return func(c *config) { c.wrap = true }
}

// WithStrictColumnNames rejects loop column names that are not purely
// alphabetic after prefix stripping, instead of slugifying them.
func WithStrictColumnNames() Option {
	return func(c *config) { c.strictColumnNames = true }
}

// ParseNmrStar parses text as NMR-STAR: a generic parse followed by the
// dialect validation and conversion passes. Validation failures are
// returned as a *ValidationError before any converted tree exists.
func ParseNmrStar(text string, opts ...Option) (*star.DataExtent, error) {
	return parseDialect(text, fileTypeStar, newConfig(opts))
}

// ParseNef parses text as NEF. On top of the NMR-STAR rules, every
// saveframe's code must start with its category and the shared tag
// prefix must equal the category.
func ParseNef(text string, opts ...Option) (*star.DataExtent, error) {
	return parseDialect(text, fileTypeNef, newConfig(opts))
}

// ParseNmrStarFile reads and parses an NMR-STAR file.
func ParseNmrStarFile(name string, opts ...Option) (*star.DataExtent, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return ParseNmrStar(string(data), opts...)
}

// ParseNefFile reads and parses a NEF file.
func ParseNefFile(name string, opts ...Option) (*star.DataExtent, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return ParseNef(string(data), opts...)
}

func parseDialect(text, fileType string, cfg config) (*star.DataExtent, error) {
	if cfg.wrap && strings.Contains(text, "save_") && !strings.Contains(text, "data_") {
		text = "data_dummy \n\n" + text
	}
	extent, err := star.Parse(text, star.WithMode(cfg.mode))
	if err != nil {
		return nil, err
	}
	conv := &converter{fileType: fileType, renameColumns: !cfg.strictColumnNames}
	if err := conv.preValidate(extent); err != nil {
		return nil, err
	}
	return conv.convert(extent)
}
