package service

import (
	"fmt"
	"time"
)

// User-visible message texts. The gated link itself and its button label
// come from configuration; everything else is fixed copy.
const (
	challengeCaption = "🔐 Type the text from the image:"
	wrongAnswerText  = "❌ Wrong text.\n😦 Type the text from the image:"
	refreshLabel     = "🔄 Refresh captcha"

	// RefreshCallback is the callback payload carried by the refresh
	// button. The transport routes callbacks with this payload to
	// [VerificationService.HandleRefresh].
	RefreshCallback = "refresh_captcha"
)

func cooldownNotice(window time.Duration) string {
	return fmt.Sprintf("🚫 You already received the link, come back in %s.", formatWindow(window))
}

func successText(window time.Duration) string {
	return fmt.Sprintf("🤗 Here is your link.\n\n❗️ A new one can be requested in %s.", formatWindow(window))
}

// formatWindow renders a duration the way a person would say it
// ("5 minutes", not "5m0s").
func formatWindow(window time.Duration) string {
	if window < time.Minute {
		return fmt.Sprintf("%d seconds", int(window.Seconds()))
	}

	minutes := int(window.Round(time.Minute).Minutes())
	if minutes == 1 {
		return "1 minute"
	}
	return fmt.Sprintf("%d minutes", minutes)
}
