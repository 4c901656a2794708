// Package advisor turns a projected scenario into a short plain-English
// narrative using Gemini. It is strictly optional: every failure path falls
// back to a static description, so the dashboard never depends on the model
// being reachable.
package advisor

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/dvloznov/finance-twin/internal/domain"
)

// DefaultModelName is the Gemini model used for scenario narratives.
const DefaultModelName = "gemini-2.5-flash"

// FallbackDescription is used whenever the model cannot be reached or
// returns nothing useful.
const FallbackDescription = "Your custom financial plan"

// DescribeScenario asks the model for a two-sentence summary of what the
// scenario's adjustments mean for the user. The returned text is plain
// prose; on any error the caller should fall back to FallbackDescription.
func DescribeScenario(ctx context.Context, scenario domain.Scenario) (string, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("DescribeScenario: create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{Text: buildPrompt(scenario)},
			},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, DefaultModelName, contents, nil)
	if err != nil {
		return "", fmt.Errorf("DescribeScenario: generate content: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("DescribeScenario: empty response from model")
	}

	return text, nil
}

// buildPrompt renders the scenario into the instruction sent to the model.
// Only adjustments that are actually present are mentioned.
func buildPrompt(scenario domain.Scenario) string {
	var b strings.Builder

	b.WriteString("You are a personal-finance assistant.\n")
	b.WriteString("Summarize the following what-if scenario in at most two sentences of plain English.\n")
	b.WriteString("Do not use Markdown, bullet points or headings. Address the reader as \"you\".\n\n")

	b.WriteString("Adjustments:\n")
	adj := scenario.Adjustments
	if adj.IncomePct != nil {
		fmt.Fprintf(&b, "- income changed by %+.1f%%\n", *adj.IncomePct)
	}
	if adj.ExpensesPct != nil {
		fmt.Fprintf(&b, "- expenses changed by %+.1f%%\n", *adj.ExpensesPct)
	}
	if adj.SavingsPct != nil {
		fmt.Fprintf(&b, "- savings rate changed by %+.1f%%\n", *adj.SavingsPct)
	}
	if adj.InvestmentReturnPct != nil {
		fmt.Fprintf(&b, "- investment return assumed at %+.1f%%\n", *adj.InvestmentReturnPct)
	}
	if adj.IncomePct == nil && adj.ExpensesPct == nil && adj.SavingsPct == nil && adj.InvestmentReturnPct == nil {
		b.WriteString("- none (current trajectory)\n")
	}

	b.WriteString("\nProjected impact:\n")
	fmt.Fprintf(&b, "- net worth: %d\n", scenario.Impact.NetWorth)
	fmt.Fprintf(&b, "- savings after 5 years: %d\n", scenario.Impact.SavingsAfter5Years)
	fmt.Fprintf(&b, "- retirement age: %d\n", scenario.Impact.RetirementAge)

	return b.String()
}
