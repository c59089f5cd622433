package models

// Button describes a single inline keyboard button attached to an
// outbound message. Exactly one of URL or CallbackData should be set:
// URL buttons open a link, callback buttons emit a callback event with
// the given payload when pressed.
type Button struct {
	// Text is the user-visible button label.
	Text string

	// URL, when non-empty, makes the button open the given link.
	URL string

	// CallbackData, when non-empty, is the payload delivered back to
	// the bot when the button is pressed.
	CallbackData string
}
