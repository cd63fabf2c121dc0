package responder

import (
	"context"
	"strings"

	"golang.org/x/text/cases"

	"github.com/sawitpro/palmstore/internal/models"
)

// Replies holds one reply string per language
type Replies map[models.Language]string

// For returns the reply in lang, or the English reply when lang is missing
func (r Replies) For(lang models.Language) string {
	if s, ok := r[lang]; ok && s != "" {
		return s
	}
	return r[models.LanguageEnglish]
}

// Rule maps a keyword group to a canned reply
type Rule struct {
	Name     string
	Keywords []string
	Replies  Replies
}

// KeywordResponder evaluates an ordered rule table against the input.
// Matching is case-insensitive substring containment; the first rule with a
// contained keyword wins.
type KeywordResponder struct {
	rules    []Rule
	folded   [][]string
	fallback Replies
}

// NewKeywordResponder builds a responder from rules in priority order
func NewKeywordResponder(rules []Rule, fallback Replies) *KeywordResponder {
	folded := make([][]string, len(rules))
	for i, rule := range rules {
		folded[i] = make([]string, 0, len(rule.Keywords))
		for _, kw := range rule.Keywords {
			if kw = fold(kw); kw != "" {
				folded[i] = append(folded[i], kw)
			}
		}
	}

	return &KeywordResponder{
		rules:    rules,
		folded:   folded,
		fallback: fallback,
	}
}

// Match returns the first rule matching input
func (k *KeywordResponder) Match(input string) (Rule, bool) {
	text := fold(input)
	for i, keywords := range k.folded {
		for _, kw := range keywords {
			if strings.Contains(text, kw) {
				return k.rules[i], true
			}
		}
	}
	return Rule{}, false
}

// Reply returns the reply for input in lang, falling back to the generic message
func (k *KeywordResponder) Reply(input string, lang models.Language) string {
	if rule, ok := k.Match(input); ok {
		return rule.Replies.For(lang)
	}
	return k.fallback.For(lang)
}

// Fallback returns the generic reply used when no rule matches
func (k *KeywordResponder) Fallback(lang models.Language) string {
	return k.fallback.For(lang)
}

// Rules returns the rule table in priority order
func (k *KeywordResponder) Rules() []Rule {
	rules := make([]Rule, len(k.rules))
	copy(rules, k.rules)
	return rules
}

// Respond implements Responder. It never fails.
func (k *KeywordResponder) Respond(ctx context.Context, req Request) (string, error) {
	return k.Reply(req.Message, req.Language), nil
}

// fold lower-cases s with Unicode case folding. A fresh caser is used per call
// because cases.Caser is not safe for concurrent use.
func fold(s string) string {
	return cases.Fold().String(s)
}
