package vcd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/participle/v2"
)

// endDefinitions separates the declaration section from the value-change
// section of a VCD file.
const endDefinitions = "$enddefinitions"

// File is the decoded form of a VCD file: its header, the canonical
// timescale, and the declared signals (in declaration order) with their
// raw value changes.
type File struct {
	Header    *Header
	Timescale Timescale
	Signals   []*Signal
}

// Parser is a full-featured VCD reader. The header is parsed with a
// grammar built once per Parser; the value-change section is streamed.
// A Parser is safe for reuse across files.
type Parser struct {
	parser *participle.Parser[Header]
	logger *slog.Logger
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger routes decode warnings to the given logger instead of
// slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Parser) {
		if l != nil {
			p.logger = l
		}
	}
}

// NewParser creates a new VCD parser instance.
func NewParser(opts ...Option) (*Parser, error) {
	parser, err := participle.Build[Header](
		participle.Lexer(HeaderLexer),
		participle.Elide("Whitespace"),
		participle.UseLookahead(2),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to build parser: %w", err)
	}

	p := &Parser{parser: parser, logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Parse decodes a VCD file from a reader.
func (p *Parser) Parse(r io.Reader) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return p.parse(string(data))
}

// ParseString decodes a VCD file from a string.
func (p *Parser) ParseString(input string) (*File, error) {
	return p.parse(input)
}

// ParseFile decodes a VCD file from a file path.
func (p *Parser) ParseFile(filename string) (*File, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return p.Parse(file)
}

func (p *Parser) parse(input string) (*File, error) {
	headerText, bodyText, err := splitAtEndDefinitions(input)
	if err != nil {
		return nil, err
	}

	header, err := p.parser.ParseString("", headerText)
	if err != nil {
		return nil, fmt.Errorf("header parse error: %w", err)
	}

	table := buildSignalTable(header, p.logger)

	dec := &bodyDecoder{table: table, logger: p.logger}
	if err := dec.decode(strings.NewReader(bodyText)); err != nil {
		return nil, fmt.Errorf("value-change decode error: %w", err)
	}

	return &File{
		Header:    header,
		Timescale: ResolveTimescale(header.TimescaleParts(), p.logger),
		Signals:   table.signals,
	}, nil
}

// splitAtEndDefinitions cuts the input after the $end that closes
// $enddefinitions. Everything before the cut is header text for the
// grammar; everything after is the value-change stream.
//
// The scan is token-wise and tracks the open command: $enddefinitions
// only counts in command position, not as a word inside a $comment (or
// any other command body).
func splitAtEndDefinitions(input string) (header, body string, err error) {
	open := false
	pos := 0
	for {
		word, end := nextWord(input, pos)
		if word == "" {
			return "", "", fmt.Errorf("missing %s command", endDefinitions)
		}
		pos = end
		low := strings.ToLower(word)
		switch {
		case low == "$end":
			open = false
		case open:
			// command body content; words shaped like commands included
		case low == endDefinitions:
			for {
				next, nend := nextWord(input, pos)
				if next == "" {
					return "", "", fmt.Errorf("unterminated %s command", endDefinitions)
				}
				pos = nend
				if strings.ToLower(next) == "$end" {
					return input[:pos], input[pos:], nil
				}
			}
		case strings.HasPrefix(low, "$"):
			open = true
		}
	}
}

// nextWord returns the next whitespace-delimited word at or after pos
// and the offset just past it, or "" at end of input.
func nextWord(s string, pos int) (word string, end int) {
	for pos < len(s) && isSpaceByte(s[pos]) {
		pos++
	}
	start := pos
	for pos < len(s) && !isSpaceByte(s[pos]) {
		pos++
	}
	return s[start:pos], pos
}

func isSpaceByte(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\v', '\f':
		return true
	}
	return false
}
