package dto

type Reply struct {
	Text string
	// Fallback is set when Text is a canned message rather than coach advice.
	Fallback bool
}
