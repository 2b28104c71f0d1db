// Package view holds the bot's canned texts.
package view

const (
	StartMessage = `👋 <b>Welcome to flipscan!</b>

Send me a product listing URL and I'll tell you whether it's a profitable flip.

Commands:
/status — your scan usage
/pro — unlock unlimited scans
/help — how it works`

	HelpMessage = `Paste any product listing URL (Amazon, eBay, marketplace pages).

I fetch the page, compare the listed price against typical market values, subtract marketplace and fulfillment fees, and reply with a verdict: UNDERPRICED, GOOD DEAL, FAIRLY PRICED or OVERPRICED.

Free accounts get a limited number of scans; /pro removes the cap.`

	NoURLMessage = "Send me a product listing URL to analyze."

	AnalyzingMessage = "🔍 Analyzing the listing, this takes up to a minute..."

	ScanLimitMessage = `🚫 You've used all your free scans.

Unlock unlimited scans with /pro.`

	ProAlreadyMessage = "⭐ You already have pro access — scan away."

	ProCheckoutMessage = "💳 Complete the payment to unlock unlimited scans:\n%s\n\nAccess is granted automatically once the payment confirms."

	ProUnavailableMessage = "Payments are temporarily unavailable, try again later."

	StatusMessage = "📊 Scans used: %d\nPlan: %s"

	GrantUsage   = "Usage: /grant <user_id>"
	GrantDone    = "✅ Pro granted to %s"
	GenericError = "Something went wrong, please try again."
)
