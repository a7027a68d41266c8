// Package knowledge holds the static support knowledge table and the
// keyword matcher that selects snippets for a merchant question.
package knowledge

import "strings"

// group pairs trigger keywords with the canned lines they unlock. Groups
// are evaluated independently: a query can hit several groups and every
// hit contributes its lines, in declaration order.
type group struct {
	keywords []string
	lines    []string
}

// Base is the hand-authored support knowledge table, built once at startup.
type Base struct {
	groups       []group
	defaultLines []string
}

// NewBase returns the table used to ground LLM prompts in product facts.
func NewBase() *Base {
	return &Base{
		groups: []group{
			{
				keywords: []string{"transaction", "history", "payment"},
				lines: []string{
					"Transaction Management: Access your transaction history through the merchant dashboard. Navigate to the 'Transactions' section to view all payment records.",
					"Search Transactions: Use filters in the transaction dashboard to search by date, amount, payment method, or status.",
					"Download Reports: Export transaction reports in CSV or PDF format from the dashboard for your records.",
				},
			},
			{
				keywords: []string{"settlement", "money", "timing"},
				lines: []string{
					"Settlement Timings: Settlement timings vary by payment method: Credit Cards (2-3 business days), Debit Cards (1-2 business days), UPI (same day to next business day).",
					"Settlement Tracking: Track settlement status in the 'Settlements' section of your merchant dashboard.",
					"Settlement Delays: Settlement delays may occur due to bank holidays, technical issues, or compliance checks.",
				},
			},
			{
				keywords: []string{"commission", "fee", "rate", "charge"},
				lines: []string{
					"Credit Card Fees: Credit card transaction fees typically range from 1.8% to 2.5% depending on merchant category and volume.",
					"Debit Card Fees: Debit card transaction fees range from 0.9% to 1.2%.",
					"UPI Fees: UPI transaction fees range from 0% to 0.5%, often with promotional rates for new merchants.",
					"Rate Factors: Rates depend on merchant category, monthly volume, and business type.",
				},
			},
			{
				keywords: []string{"refund", "return", "cancel"},
				lines: []string{
					"Refund Process: Initiate refunds through the transaction history by selecting the transaction and clicking 'Refund'.",
					"Refund Timeline: Refunds are typically processed within 5-7 business days to the customer's account.",
					"Partial Refunds: Partial refunds are supported - enter the specific amount to be refunded.",
					"Refund Restrictions: Refunds can only be processed within 180 days of the original transaction.",
				},
			},
			{
				// "problem" also triggers the technical group below; the
				// overlap is intentional, broad questions get both sets.
				keywords: []string{"support", "help", "contact", "problem"},
				lines: []string{
					"Phone Support: 24/7 support available at 1800-419-0-419",
					"Email Support: Email support at support@merchantdesk.in",
					"Dashboard Help: Access self-service options through your merchant dashboard",
					"Emergency Contact: For urgent issues, use the emergency support line in your merchant app",
				},
			},
			{
				keywords: []string{"fail", "error", "issue", "problem"},
				lines: []string{
					"Payment Failures: Check network connectivity, verify card details, and ensure sufficient balance. Contact support if issues persist.",
					"Terminal Issues: Restart the terminal, check connections, and verify network status. Contact technical support for hardware issues.",
					"Dashboard Access: Clear browser cache, try incognito mode, or contact support for login issues.",
				},
			},
		},
		defaultLines: []string{
			"General Support: 24/7 support available at 1800-419-0-419",
			"Settlement Info: Settlement timings vary by payment method: Credit Cards (2-3 business days), Debit Cards (1-2 business days), UPI (same day to next business day).",
			"Transaction Access: Access your transaction history through the merchant dashboard. Navigate to the 'Transactions' section to view all payment records.",
		},
	}
}

// RelevantInfo collects every knowledge line whose group keywords appear in
// the query, newline-joined. When nothing matches it returns a small
// general-purpose set so the prompt is never empty.
func (b *Base) RelevantInfo(query string) string {
	lowered := strings.ToLower(query)

	var relevant []string
	for _, g := range b.groups {
		for _, keyword := range g.keywords {
			if strings.Contains(lowered, keyword) {
				relevant = append(relevant, g.lines...)
				break
			}
		}
	}

	if len(relevant) == 0 {
		relevant = append(relevant, b.defaultLines...)
	}

	return strings.Join(relevant, "\n")
}
