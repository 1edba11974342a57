// Package explain renders human-readable explanations of analysis
// results. This is the deterministic collaborator implementation; an
// LLM-backed generator can replace it behind the same interface.
package explain

import (
	"context"
	"fmt"
	"strings"

	"github.com/greencart/backend/internal/domain"
)

// TemplateGenerator produces fixed-template explanations
type TemplateGenerator struct {
	messageType string
}

// NewTemplateGenerator creates a generator for the given message type.
// Unknown types fall back to conversational.
func NewTemplateGenerator(messageType string) *TemplateGenerator {
	if messageType != domain.MessageNumeric {
		messageType = domain.MessageConversational
	}
	return &TemplateGenerator{messageType: messageType}
}

// Generate renders the explanation for a result
func (g *TemplateGenerator) Generate(ctx context.Context, basket domain.Basket, result *domain.Result) (string, error) {
	if result == nil {
		return "", domain.ErrInvalidRequest
	}

	if g.messageType == domain.MessageNumeric {
		return fmt.Sprintf("Your basket emits %.1f kg CO2e. You could save %.1f kg CO2e.",
			result.Emissions, result.COG), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Your basket has a carbon footprint of %.1f kg CO2e.", result.Emissions)
	if result.COG > 0 {
		fmt.Fprintf(&b, " By making %d simple swap(s) you could reduce it by %.1f kg CO2e (%.0f%%).",
			len(result.Swaps), result.COG, result.COGRatio*100)
		for _, swap := range result.Swaps {
			fmt.Fprintf(&b, "\n- %s: saves %.1f kg CO2e", swap.Description, swap.EmissionsReduction)
		}
	} else {
		b.WriteString(" It is already close to the low-carbon optimum for your constraints.")
	}
	return b.String(), nil
}
