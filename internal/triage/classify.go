package triage

import (
	"strings"

	"agency-chatbot/internal/domain"
)

// rule is one step of the classification cascade. match receives the
// trimmed, lowercased message and reports the intent it yields, if any.
type rule struct {
	name  string
	match func(text string) (Intent, bool)
}

func when(intent Intent, pred func(string) bool) func(string) (Intent, bool) {
	return func(text string) (Intent, bool) {
		if pred(text) {
			return intent, true
		}
		return "", false
	}
}

// Classifier evaluates the rule cascade. The FAQ rule needs the knowledge
// base's questions; everything else is keyword driven.
type Classifier struct {
	rules []rule
}

// NewClassifier returns a Classifier whose FAQ rule scans faq. A nil or
// empty faq disables the FAQ rule.
func NewClassifier(faq []domain.FAQEntry) *Classifier {
	return &Classifier{rules: buildRules(faq)}
}

func buildRules(faq []domain.FAQEntry) []rule {
	return []rule{
		{"founder_info", when(IntentFounderInfo, founderInfoRe.MatchString)},
		{"greeting", when(IntentGreeting, greetingRe.MatchString)},
		{"company_info", when(IntentCompanyInfo, func(t string) bool {
			return len(ExtractNameEntities(t)) > 0 && aboutRe.MatchString(t)
		})},
		{"contact", func(t string) (Intent, bool) {
			if !contactRe.MatchString(t) {
				return "", false
			}
			if humanRe.MatchString(t) {
				return IntentConnectTeam, true
			}
			return IntentContact, true
		}},
		{"whatsapp", when(IntentWhatsApp, whatsAppRe.MatchString)},
		{"email", when(IntentEmail, emailRe.MatchString)},
		{"project_inquiry", when(IntentProjectInquiry, projectRe.MatchString)},
		{"portfolio", when(IntentPortfolio, portfolioRe.MatchString)},
		{"timeline", when(IntentTimeline, timelineRe.MatchString)},
		{"tech", func(t string) (Intent, bool) {
			if !techRe.MatchString(t) {
				return "", false
			}
			if cats := ExtractServiceTypes(t); len(cats) > 0 {
				return TechIntent(cats[0]), true
			}
			return IntentTechGeneral, true
		}},
		{"team", when(IntentTeam, teamRe.MatchString)},
		{"process", when(IntentProcess, processRe.MatchString)},
		{"founding", when(IntentFounding, foundingRe.MatchString)},
		{"location", when(IntentLocation, locationRe.MatchString)},
		{"owner", when(IntentOwner, ownerRe.MatchString)},
		{"faq_match", when(IntentFAQMatch, func(t string) bool {
			if !HasQuestionMarker(t) {
				return false
			}
			for _, e := range faq {
				if keywordOverlap(e.Question, t) >= 2 {
					return true
				}
			}
			return false
		})},
		{"question", when(IntentQuestion, HasQuestionMarker)},
	}
}

// Classify returns the intent of the first rule text satisfies, or
// IntentGeneral when none does.
func (c *Classifier) Classify(text string) Intent {
	t := strings.ToLower(strings.TrimSpace(text))
	for _, r := range c.rules {
		if intent, ok := r.match(t); ok {
			return intent
		}
	}
	return IntentGeneral
}

// RuleOrder lists rule names in evaluation order.
func (c *Classifier) RuleOrder() []string {
	names := make([]string, 0, len(c.rules)+1)
	for _, r := range c.rules {
		names = append(names, r.name)
	}
	return append(names, string(IntentGeneral))
}

// Classify runs the cascade against kb's FAQ.
func Classify(text string, kb *domain.KnowledgeBase) Intent {
	var faq []domain.FAQEntry
	if kb != nil {
		faq = kb.FAQ
	}
	return NewClassifier(faq).Classify(text)
}
