package ai

import "strings"

// fallbackRule pairs trigger keywords with a canned reply. Rules are
// evaluated in order and the first hit wins, unlike the knowledge matcher
// which accumulates every matching group. Keep the two distinct.
type fallbackRule struct {
	keywords []string
	reply    string
}

var fallbackRules = []fallbackRule{
	{
		keywords: []string{"transaction", "payment"},
		reply:    "I can help you with transaction-related queries. You can view your transaction history in the merchant dashboard under the 'Transactions' section. For specific issues, please contact our support team at 1800-419-0-419.",
	},
	{
		keywords: []string{"settlement", "money"},
		reply:    "Settlement typically occurs within 1-2 business days for most transactions. UPI settlements are usually faster, often same-day. You can track your settlements in the merchant dashboard.",
	},
	{
		keywords: []string{"refund"},
		reply:    "To process a refund, go to your transaction history, find the specific transaction, and click 'Refund'. The amount will be credited back to the customer within 5-7 business days.",
	},
	{
		keywords: []string{"commission", "rate", "fee"},
		reply:    "Commission rates vary by payment method: Credit Cards (1.8%-2.5%), Debit Cards (0.9%-1.2%), UPI (0%-0.5%). Your specific rates depend on your merchant category and monthly volume. Check your merchant dashboard for exact rates.",
	},
}

const genericFallback = "I'm here to help you with your merchant services. For detailed assistance, please contact our support team at 1800-419-0-419 or email support@merchantdesk.in. We're available 24/7 to assist you."

// FallbackReply synthesizes a reply locally when the completion service is
// unavailable, so the widget always answers.
func FallbackReply(content string) string {
	lowered := strings.ToLower(content)
	for _, rule := range fallbackRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lowered, keyword) {
				return rule.reply
			}
		}
	}
	return genericFallback
}
