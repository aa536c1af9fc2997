package extract

import (
	"sync"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/vcd"
)

// Capability holds the outcome of constructing the full VCD decoder. It
// is resolved at most once per process and read-only afterwards, so it
// is safe to share between concurrent extractions.
type Capability struct {
	parser *vcd.Parser
	err    error
}

var (
	capOnce     sync.Once
	capResolved *Capability
)

// ResolveCapability builds the decoder grammar on first use and caches
// the result for the process lifetime.
func ResolveCapability() *Capability {
	capOnce.Do(func() {
		parser, err := vcd.NewParser()
		capResolved = &Capability{parser: parser, err: err}
	})
	return capResolved
}

// Err returns why the decoder is unavailable, or nil.
func (c *Capability) Err() error {
	return c.err
}

// Parser returns the shared decoder, or nil when unavailable.
func (c *Capability) Parser() *vcd.Parser {
	return c.parser
}
