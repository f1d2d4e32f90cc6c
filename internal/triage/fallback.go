package triage

import "unicode/utf16"

var fallbackReplies = []string{
	"I'd love to help with that. Could you tell me a bit more about what you're looking for?",
	"Interesting! Are you thinking about a new product, or improving something you already have?",
	"Thanks for sharing. Our team builds web, mobile, AI, Web3 and cloud solutions. Which area fits best?",
	"Got it. If you describe your idea in a sentence or two, I can point you to the right service.",
	"Happy to chat! You can ask me about our services, past projects, process or how to reach the team.",
}

// SelectFallback maps text to an index in [0, n) by summing its UTF-16 code
// units. The same text always yields the same index.
func SelectFallback(text string, n int) int {
	if n <= 0 {
		return 0
	}
	sum := 0
	for _, u := range utf16.Encode([]rune(text)) {
		sum += int(u)
	}
	if sum < 0 {
		sum = -sum
	}
	return sum % n
}
