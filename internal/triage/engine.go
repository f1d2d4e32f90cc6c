package triage

import "agency-chatbot/internal/domain"

// Engine binds the classifier and response builders to one knowledge base.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	kb         *domain.KnowledgeBase
	classifier *Classifier
}

// NewEngine returns an engine over kb. A nil kb behaves as an empty one.
func NewEngine(kb *domain.KnowledgeBase) *Engine {
	if kb == nil {
		kb = &domain.KnowledgeBase{}
	}
	return &Engine{kb: kb, classifier: NewClassifier(kb.FAQ)}
}

// Reply classifies text and builds the response for the resulting intent.
func (e *Engine) Reply(text string) (Intent, domain.Response) {
	intent := e.classifier.Classify(text)
	return intent, Respond(intent, text, e.kb)
}

// Classify returns the intent for text without building a response.
func (e *Engine) Classify(text string) Intent {
	return e.classifier.Classify(text)
}

// RuleOrder lists rule names in evaluation order.
func (e *Engine) RuleOrder() []string {
	return e.classifier.RuleOrder()
}

// KnowledgeBase returns the knowledge base the engine answers from.
func (e *Engine) KnowledgeBase() *domain.KnowledgeBase {
	return e.kb
}
