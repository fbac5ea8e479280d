package llm

import (
	"context"
	"fmt"

	"museai_server/server/shadow/domain"
)

// Completer is the provider seam: one system+user exchange in, completion
// text out. OpenAI and Anthropic backends implement it.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Generator executes signature prompts. Predict asks for the output fields
// directly; ChainOfThought has the model produce a reasoning field before the
// declared outputs, which measurably helps chat, search synthesis and mission
// crafting but would contaminate strict-JSON outputs.
type Generator interface {
	Predict(ctx context.Context, sig Signature, in Values) (Values, error)
	ChainOfThought(ctx context.Context, sig Signature, in Values) (Values, error)
}

const reasoningField = "reasoning"

type SignatureGenerator struct {
	completer Completer
}

func NewGenerator(c Completer) *SignatureGenerator {
	return &SignatureGenerator{completer: c}
}

func (g *SignatureGenerator) Predict(ctx context.Context, sig Signature, in Values) (Values, error) {
	completion, err := g.completer.Complete(ctx, renderSystem(sig), renderUser(sig, in))
	if err != nil {
		return nil, fmt.Errorf("complete %q: %w", firstOutputName(sig), err)
	}
	return parseOutputs(sig, completion), nil
}

func (g *SignatureGenerator) ChainOfThought(ctx context.Context, sig Signature, in Values) (Values, error) {
	cot := Signature{
		Instruction: sig.Instruction,
		Inputs:      sig.Inputs,
		Outputs: append([]Field{
			{Name: reasoningField, Desc: "Think step by step before producing the remaining fields."},
		}, sig.Outputs...),
	}
	out, err := g.Predict(ctx, cot, in)
	if err != nil {
		return nil, err
	}
	delete(out, reasoningField)

	// A reasoning-only completion still has to yield the declared output.
	if len(sig.Outputs) == 1 {
		if _, ok := out[sig.Outputs[0].Name]; !ok {
			return nil, fmt.Errorf("%w: completion missing field %q", domain.ErrMalformedOutput, sig.Outputs[0].Name)
		}
	}
	return out, nil
}

func firstOutputName(sig Signature) string {
	if len(sig.Outputs) == 0 {
		return ""
	}
	return sig.Outputs[0].Name
}
