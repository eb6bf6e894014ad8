package athena

import "context"

const genericResponse = "Hearken, mortal soul, though the divine channels are clouded today, I sense the weight of your words. Your reflection speaks of deep contemplation, and I offer you this wisdom: in times of uncertainty, trust in your inner strength and seek guidance from within. The path forward may not always be clear, but your courage will light the way. May wisdom guide your path. - Athena"

// GenericFallback returns one fixed, sentiment-agnostic reply. It is the
// terminal tier: it must always succeed so the pipeline can guarantee a
// displayable result to its caller.
type GenericFallback struct{}

func (GenericFallback) Generate(ctx context.Context, input Input) (string, error) {
	_ = ctx
	_ = input
	return genericResponse, nil
}

var _ Generator = GenericFallback{}
