package star

import "os"

// Parse parses STAR text into a DataExtent tree.
//
// The default Standard mode follows the IUCr specification except that
// values starting with [ or ] are allowed; pass WithMode to change the
// profile. Block, saveframe, and tag names are lowercased unless
// WithKeepCase is given. Errors carry the position and context of the
// offending token as a *SyntaxError.
func Parse(text string, opts ...Option) (*DataExtent, error) {
	p := newParser(text)
	for _, opt := range opts {
		opt(p)
	}
	return p.parse()
}

// ParseFile reads and parses a STAR file.
func ParseFile(name string, opts ...Option) (*DataExtent, error) {
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return Parse(string(data), opts...)
}
