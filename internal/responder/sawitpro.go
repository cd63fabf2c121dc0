package responder

import "github.com/sawitpro/palmstore/internal/models"

// Messages of the SawitPro shopping assistant
const (
	SawitProGreeting = "Hello! I'm your SawitPro AI shopping assistant. I can help you find the perfect palm oil products and equipment for your needs. How can I assist you today?"
	SawitProApology  = "I apologize, but I'm having trouble connecting to my AI service. Please try again later."
	SawitProFallback = "I'm here to help with any questions about SawitPro's palm oil products and equipment. Feel free to ask about specifications, pricing, applications, or recommendations!"
)

func en(s string) Replies {
	return Replies{models.LanguageEnglish: s}
}

// SawitProRules is the product assistant's rule table in priority order
var SawitProRules = []Rule{
	{
		Name:     "greeting",
		Keywords: []string{"hello", "hi", "hey"},
		Replies:  en("Hello! Welcome to SawitPro. I'm here to help you with palm oil products and equipment. What can I assist you with today?"),
	},
	{
		Name:     "palm-oil",
		Keywords: []string{"palm oil", "cpo", "crude"},
		Replies:  en("We offer premium palm oil products including CPO, RBDPO, and Palm Kernel Oil. Our crude palm oil has excellent purity with moisture content <0.1% and FFA <3%. Would you like to know more about specific grades?"),
	},
	{
		Name:     "equipment",
		Keywords: []string{"equipment", "machine", "extraction"},
		Replies:  en("Our industrial equipment includes palm oil extraction machines and complete refining systems. Our extraction machines have 95% efficiency and can process 500kg/hour. Are you looking for specific capacity requirements?"),
	},
	{
		Name:     "price",
		Keywords: []string{"price", "cost", "how much"},
		Replies:  en("Our products range from $899.99 for testing kits to $45,999.99 for complete refining systems. Palm oil prices start at $899.99 for CPO. Would you like pricing for specific products or bulk orders?"),
	},
	{
		Name:     "quality",
		Keywords: []string{"quality", "specification", "test"},
		Replies:  en("Quality is our priority at SawitPro. All our palm oil products meet international standards. We provide detailed specifications including FFA, moisture content, and iodine values. We also offer professional testing kits for quality analysis."),
	},
	{
		Name:     "recommendation",
		Keywords: []string{"recommend", "suggest", "help"},
		Replies:  en("I'd be happy to recommend products based on your needs! Are you looking for palm oil for food production, cosmetics, or industrial use? Or do you need equipment for processing?"),
	},
	{
		Name:     "organic",
		Keywords: []string{"organic", "certified", "sustainable"},
		Replies:  en("We offer organic certified palm kernel oil and follow sustainable practices. Our products are certified and meet international sustainability standards. Would you like more information about our certifications?"),
	},
}

// NewSawitPro returns the SawitPro product assistant
func NewSawitPro() *KeywordResponder {
	return NewKeywordResponder(SawitProRules, en(SawitProFallback))
}
