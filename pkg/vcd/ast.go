package vcd

import "strings"

// Header represents the parsed declaration section of a VCD file,
// from the first command up to $enddefinitions $end.
type Header struct {
	Sections []*Section `parser:"@@*"`
	EndDefs  bool       `parser:"@KwEndDefs KwEnd"`
}

// Section represents one header command block.
// Exactly one field is populated per section.
//
// Command bodies are delimited by $end alone, so free text and variable
// fields accept ANY other token, keyword-shaped words included: comments
// may mention commands, and identifier codes are arbitrary printable
// ASCII and can start with '$'.
type Section struct {
	Date      []string       `parser:"  KwDate ( @~KwEnd )* KwEnd"`
	Version   []string       `parser:"| KwVersion ( @~KwEnd )* KwEnd"`
	Comment   []string       `parser:"| KwComment ( @~KwEnd )* KwEnd"`
	Timescale *TimescaleDecl `parser:"| KwTimescale @@"`
	Scope     *ScopeDecl     `parser:"| @@"`
	Upscope   bool           `parser:"| @KwUpscope KwEnd"`
	Var       *VarDecl       `parser:"| @@"`
	Unknown   []string       `parser:"| Directive ( @~KwEnd )* KwEnd"`
}

// TimescaleDecl captures the raw words of a $timescale block, e.g.
// ["1", "ns"], ["10ps"] or ["1e-9"]. Interpretation happens in
// ResolveTimescale; keeping the grammar loose means a malformed
// declaration degrades to the default instead of failing the parse.
type TimescaleDecl struct {
	Parts []string `parser:"( @~KwEnd )* KwEnd"`
}

// ScopeDecl represents a $scope block.
// Example: $scope module cpu $end
type ScopeDecl struct {
	Kind string `parser:"KwScope @Word"`
	Name string `parser:"@Word? KwEnd"`
}

// VarDecl represents a $var block.
// Example: $var wire 8 # data [7:0] $end
//
// Everything after the type is captured loosely so that a declaration with
// missing or extra fields is skipped by the table builder with a warning
// rather than aborting the whole header parse. Identifier codes can be
// any printable ASCII, '$'-prefixed ones included, so Rest takes any
// token short of $end.
type VarDecl struct {
	Type string   `parser:"KwVar @Word?"`
	Rest []string `parser:"( @~KwEnd )* KwEnd"`
}

// Size returns the declared bit width field, or "" when absent.
func (v *VarDecl) Size() string {
	if len(v.Rest) < 1 {
		return ""
	}
	return v.Rest[0]
}

// Code returns the identifier code field, or "" when absent.
func (v *VarDecl) Code() string {
	if len(v.Rest) < 2 {
		return ""
	}
	return v.Rest[1]
}

// Reference returns the variable name, joined with its optional bit index
// ("data" + "[7:0]" -> "data[7:0]"), or "" when absent.
func (v *VarDecl) Reference() string {
	if len(v.Rest) < 3 {
		return ""
	}
	return strings.Join(v.Rest[2:], "")
}

// TimescaleParts returns the raw words of the first $timescale section,
// or nil when the header does not declare one.
func (h *Header) TimescaleParts() []string {
	for _, s := range h.Sections {
		if s.Timescale != nil {
			return s.Timescale.Parts
		}
	}
	return nil
}

// DateText returns the free text of the $date section, if any.
func (h *Header) DateText() string {
	for _, s := range h.Sections {
		if s.Date != nil {
			return strings.Join(s.Date, " ")
		}
	}
	return ""
}

// VersionText returns the free text of the $version section, if any.
func (h *Header) VersionText() string {
	for _, s := range h.Sections {
		if s.Version != nil {
			return strings.Join(s.Version, " ")
		}
	}
	return ""
}
