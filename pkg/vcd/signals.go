package vcd

import (
	"log/slog"
	"strconv"
	"strings"
)

// Signal is one declared variable with its recorded value changes.
// Name is the fully qualified, dot-joined scope path. Names are not
// guaranteed unique by the format; duplicates stay distinct entries in
// declaration order. Several signals may share one identifier code (the
// format uses this for aliases), in which case a change record fans out
// to all of them.
type Signal struct {
	Name    string
	Code    string
	Type    string
	Width   int
	Changes []Change
}

// Change is one raw value change: the simulation tick it occurred at and
// the decoded value. Ticks are pre-normalization; scaling to nanoseconds
// happens in the extraction layer.
type Change struct {
	Tick  uint64
	Value Value
}

// signalTable holds the declared signals in declaration order plus the
// identifier-code index the body decoder resolves references through.
type signalTable struct {
	signals []*Signal
	byCode  map[string][]*Signal
}

// buildSignalTable walks the header sections in order, maintaining the
// scope stack and turning each $var into a Signal. Malformed or unnamed
// declarations are skipped with a warning; they never fail the build.
func buildSignalTable(h *Header, logger *slog.Logger) *signalTable {
	t := &signalTable{byCode: make(map[string][]*Signal)}
	var scopes []string

	for _, sec := range h.Sections {
		switch {
		case sec.Scope != nil:
			if sec.Scope.Name == "" {
				logger.Warn("unnamed scope declaration", "kind", sec.Scope.Kind)
			}
			scopes = append(scopes, sec.Scope.Name)

		case sec.Upscope:
			if len(scopes) == 0 {
				logger.Warn("unbalanced $upscope, ignoring")
				continue
			}
			scopes = scopes[:len(scopes)-1]

		case sec.Var != nil:
			sig := declToSignal(sec.Var, scopes, logger)
			if sig == nil {
				continue
			}
			t.signals = append(t.signals, sig)
			t.byCode[sig.Code] = append(t.byCode[sig.Code], sig)
		}
	}
	return t
}

func declToSignal(v *VarDecl, scopes []string, logger *slog.Logger) *Signal {
	code := v.Code()
	ref := v.Reference()
	if code == "" || ref == "" {
		logger.Warn("skipping malformed variable declaration",
			"type", v.Type, "fields", strings.Join(v.Rest, " "))
		return nil
	}
	width, err := strconv.Atoi(v.Size())
	if err != nil || width <= 0 {
		logger.Warn("variable declaration with unparseable width, assuming 1",
			"reference", ref, "width", v.Size())
		width = 1
	}
	return &Signal{
		Name:  qualifiedName(scopes, ref),
		Code:  code,
		Type:  v.Type,
		Width: width,
	}
}

// qualifiedName flattens the scope stack into a dot-joined prefix,
// skipping unnamed scopes.
func qualifiedName(scopes []string, ref string) string {
	parts := make([]string, 0, len(scopes)+1)
	for _, s := range scopes {
		if s != "" {
			parts = append(parts, s)
		}
	}
	parts = append(parts, ref)
	return strings.Join(parts, ".")
}
