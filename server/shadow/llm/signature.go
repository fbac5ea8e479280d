package llm

import (
	"fmt"
	"strings"
)

// Field is one labeled input or output slot of a Signature.
type Field struct {
	Name string
	Desc string
}

// Signature is a declarative prompt: a natural-language instruction plus the
// labeled input fields the caller fills and the labeled output fields the
// model is asked to produce. Rendering into a provider prompt is the
// completer's concern, which keeps orchestration backend-agnostic.
type Signature struct {
	Instruction string
	Inputs      []Field
	Outputs     []Field
}

// Values carries field values keyed by field name.
type Values map[string]string

func title(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// renderSystem builds the system prompt: the instruction followed by a
// field-format contract the parser relies on.
func renderSystem(sig Signature) string {
	var b strings.Builder
	b.WriteString(strings.TrimSpace(sig.Instruction))
	b.WriteString("\n\nFollow the following format.\n")
	for _, f := range sig.Inputs {
		fmt.Fprintf(&b, "\n%s: %s", title(f.Name), f.Desc)
	}
	for _, f := range sig.Outputs {
		fmt.Fprintf(&b, "\n%s: %s", title(f.Name), f.Desc)
	}
	return b.String()
}

// renderUser lays out the filled inputs and cues the first output field.
func renderUser(sig Signature, in Values) string {
	var b strings.Builder
	for _, f := range sig.Inputs {
		fmt.Fprintf(&b, "%s: %s\n\n", title(f.Name), in[f.Name])
	}
	if len(sig.Outputs) > 0 {
		fmt.Fprintf(&b, "%s:", title(sig.Outputs[0].Name))
	}
	return b.String()
}

// parseOutputs scans the completion for "Field:" markers and captures each
// field's text up to the next marker. A completion with no markers at all is
// taken wholesale as the final output field; models frequently answer without
// repeating the labels.
func parseOutputs(sig Signature, completion string) Values {
	out := Values{}
	text := strings.TrimSpace(completion)

	markers := make([]string, len(sig.Outputs))
	for i, f := range sig.Outputs {
		markers[i] = title(f.Name) + ":"
	}

	positions := make([]int, len(markers))
	for i, m := range markers {
		positions[i] = indexMarker(text, m)
	}

	for i, f := range sig.Outputs {
		start := positions[i]
		if start < 0 {
			continue
		}
		valStart := start + len(markers[i])
		end := len(text)
		for j, p := range positions {
			if j == i || p < 0 {
				continue
			}
			if p > start && p < end {
				end = p
			}
		}
		out[f.Name] = strings.TrimSpace(text[valStart:end])
	}

	if len(out) == 0 && len(sig.Outputs) > 0 {
		out[sig.Outputs[len(sig.Outputs)-1].Name] = text
	}
	return out
}

// indexMarker finds a field label at the start of the text or of a line.
func indexMarker(text, marker string) int {
	if strings.HasPrefix(text, marker) {
		return 0
	}
	if idx := strings.Index(text, "\n"+marker); idx >= 0 {
		return idx + 1
	}
	return -1
}
