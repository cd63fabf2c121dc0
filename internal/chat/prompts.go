package chat

import "errors"

// ErrUnknownQuickAction is returned for quick action keys without a prompt
var ErrUnknownQuickAction = errors.New("unknown quick action")

// ExamplePrompts are the PalmPal suggestion buttons
var ExamplePrompts = []string{
	"How to fertilize during dry season?",
	"What tools help with palm harvesting?",
	"Tell me about eco-friendly pest control.",
}

// QuickAction is a SawitPro shortcut that fills the chat input
type QuickAction struct {
	Key    string `json:"key"`
	Label  string `json:"label"`
	Prompt string `json:"prompt"`
}

// QuickActions lists the SawitPro shortcuts in display order
var QuickActions = []QuickAction{
	{Key: "recommend-palm-oil", Label: "Recommend Products", Prompt: "Can you recommend the best palm oil products for food industry applications?"},
	{Key: "equipment-inquiry", Label: "Equipment Info", Prompt: "I'm interested in palm oil processing equipment. What options do you have?"},
	{Key: "quality-specs", Label: "Quality Specs", Prompt: "What are the quality specifications of your palm oil products?"},
	{Key: "bulk-pricing", Label: "Bulk Pricing", Prompt: "Can you provide bulk pricing information for large orders?"},
}

// QuickActionPrompt returns the prompt text for key
func QuickActionPrompt(key string) (string, error) {
	for _, qa := range QuickActions {
		if qa.Key == key {
			return qa.Prompt, nil
		}
	}
	return "", ErrUnknownQuickAction
}
