// Package extract drives VCD signal extraction: it validates the input
// file, attempts the decode strategies in order, rescales every sample
// time to nanoseconds, and returns a name-sorted, UI-ready result.
package extract

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/OpenTraceLab/OpenTraceWave/pkg/vcd"
)

// DefaultMaxSize bounds accepted input files (10 MiB).
const DefaultMaxSize = 10 << 20

// Sample is one normalized observation: time in nanoseconds and the
// value in textual form.
type Sample struct {
	Time  float64 `json:"time"`
	Value string  `json:"value"`
}

// Signal is one extracted signal with its normalized samples. Data is
// never nil: a declared signal with no recorded changes keeps an empty
// slice.
type Signal struct {
	Name string   `json:"name"`
	Data []Sample `json:"data"`
}

// Result is the terminal output of an extraction. Signals are sorted by
// name; Timescale is always the post-normalization 1 ns descriptor since
// every sample time has already been rescaled.
type Result struct {
	Signals   []Signal      `json:"signals"`
	Timescale vcd.Timescale `json:"timescale"`
	Message   string        `json:"message"`
}

// Options configures an Extractor.
type Options struct {
	// Disabled switches decoding off by policy; Extract then fails with
	// a ConfigurationError before touching the file.
	Disabled bool
	// MaxSize is the largest accepted file in bytes. Zero means
	// DefaultMaxSize.
	MaxSize int64
	// Logger receives decode warnings. Nil means slog.Default().
	Logger *slog.Logger
	// Capability overrides the process-wide decoder capability,
	// for tests. Nil means ResolveCapability().
	Capability *Capability
}

// Extractor runs the two-tier decode pipeline. Safe for concurrent use.
type Extractor struct {
	opts       Options
	logger     *slog.Logger
	capability *Capability
}

// New creates an Extractor.
func New(opts Options) *Extractor {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.MaxSize <= 0 {
		opts.MaxSize = DefaultMaxSize
	}
	capability := opts.Capability
	if capability == nil {
		capability = ResolveCapability()
	}
	return &Extractor{opts: opts, logger: opts.Logger, capability: capability}
}

// Extract decodes and normalizes the VCD file at path.
//
// Failure modes: ConfigurationError when decoding is disabled or the
// decoder could not be built; ValidationError when the file is missing,
// empty, oversize, or not a .vcd; ParseError when both decode
// strategies failed. Per-record anomalies never surface here — they are
// logged and skipped inside the decoders.
func (e *Extractor) Extract(path string) (*Result, error) {
	if e.opts.Disabled {
		return nil, &ConfigurationError{Reason: "decoding disabled by policy"}
	}
	if err := e.capability.Err(); err != nil {
		return nil, &ConfigurationError{Reason: err.Error()}
	}
	if err := e.validate(path); err != nil {
		return nil, err
	}

	strategies := []Strategy{
		&primaryStrategy{parser: e.capability.Parser()},
		&fallbackStrategy{logger: e.logger},
	}

	var lastErr error
	for _, s := range strategies {
		dec, err := s.Decode(path)
		if err != nil {
			e.logger.Warn("decode strategy failed", "strategy", s.Name(), "error", err)
			lastErr = err
			continue
		}
		return e.normalize(dec), nil
	}

	return nil, e.parseFailure(path, lastErr)
}

// validate re-checks the caller's preconditions defensively.
func (e *Extractor) validate(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &ValidationError{Reason: fmt.Sprintf("file does not exist: %s", path)}
	}
	if info.Size() == 0 {
		return &ValidationError{Reason: "empty file"}
	}
	if info.Size() > e.opts.MaxSize {
		return &ValidationError{Reason: fmt.Sprintf("file size %d exceeds limit %d", info.Size(), e.opts.MaxSize)}
	}
	if strings.ToLower(filepath.Ext(path)) != ".vcd" {
		return &ValidationError{Reason: "only .vcd files are allowed"}
	}
	return e.checkEncoding(path)
}

// checkEncoding sniffs the first kilobyte for decodable text. VCD is a
// text format; binary content is a precondition failure, not a parse
// failure.
func (e *Extractor) checkEncoding(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return &ValidationError{Reason: fmt.Sprintf("file is not readable: %v", err)}
	}
	defer file.Close()

	buf := make([]byte, 1024)
	n, err := io.ReadFull(file, buf)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return &ValidationError{Reason: fmt.Sprintf("file is not readable: %v", err)}
	}
	chunk := buf[:n]
	if n == len(buf) {
		// The window may end mid-rune; ignore a trailing partial
		// sequence.
		for i := 0; i < utf8.UTFMax-1 && !utf8.Valid(chunk); i++ {
			chunk = chunk[:len(chunk)-1]
		}
	}
	if !utf8.Valid(chunk) {
		return &ValidationError{Reason: "unreadable encoding: not valid UTF-8 text"}
	}
	return nil
}

// normalize applies the timescale once to every sample, renders values
// to text, and sorts signals by name. The result is fully normalized
// before it leaves this package.
func (e *Extractor) normalize(dec *Decoded) *Result {
	factor := dec.Timescale.ScaleFactor()

	signals := make([]Signal, 0, len(dec.Signals))
	for _, src := range dec.Signals {
		data := make([]Sample, 0, len(src.Changes))
		for _, ch := range src.Changes {
			data = append(data, Sample{
				Time:  float64(ch.Tick) * factor,
				Value: ch.Value.String(),
			})
		}
		signals = append(signals, Signal{Name: src.Name, Data: data})
	}
	// Stable so duplicate names keep declaration order.
	sort.SliceStable(signals, func(i, j int) bool {
		return signals[i].Name < signals[j].Name
	})

	return &Result{
		Signals:   signals,
		Timescale: vcd.DefaultTimescale(),
		Message:   dec.Message,
	}
}

// headerMarkers are the commands a VCD file can legitimately open with.
var headerMarkers = []string{
	"$date", "$version", "$comment", "$timescale",
	"$scope", "$var", "$enddefinitions",
}

// parseFailure builds the terminal error after both strategies failed,
// preferring the missing-header diagnostic when the first line shows no
// recognized command.
func (e *Extractor) parseFailure(path string, lastErr error) error {
	if !firstLineHasMarker(path) {
		return &ParseError{Reason: "not a valid VCD file: missing header"}
	}
	if lastErr != nil {
		return &ParseError{Reason: lastErr.Error()}
	}
	return &ParseError{Reason: "unknown decode failure"}
}

func firstLineHasMarker(path string) bool {
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()

	line, err := bufio.NewReader(file).ReadString('\n')
	if err != nil && err != io.EOF {
		return false
	}
	line = strings.ToLower(line)
	for _, m := range headerMarkers {
		if strings.Contains(line, m) {
			return true
		}
	}
	return false
}

// LooksLikeVCD sniffs the first kilobyte of r the way the upload form
// does: the content must start with $date or mention $version. Callers
// can use it as a cheap pre-upload check; extraction does not depend on
// it.
func LooksLikeVCD(r io.Reader) bool {
	buf := make([]byte, 1024)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return false
	}
	head := string(buf[:n])
	return strings.HasPrefix(strings.TrimSpace(head), "$date") ||
		strings.Contains(head, "$version")
}
