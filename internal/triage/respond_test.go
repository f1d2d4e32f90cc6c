package triage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"agency-chatbot/internal/domain"
	"agency-chatbot/internal/knowledge"
)

func TestRespond_FounderEndToEnd(t *testing.T) {
	kb := knowledge.Default()
	in := "Who founded JOMIEZ?"

	intent := Classify(in, kb)
	require.Equal(t, IntentFounderInfo, intent)

	r := Respond(intent, in, kb)
	require.Contains(t, r.Text, kb.Company.Founder.Name)
	require.Contains(t, r.Text, "CEO")
	require.Contains(t, r.Text, kb.Company.Founder.Vision)
	require.Nil(t, r.Action)
}

func TestRespond_PricingQuestionEndToEnd(t *testing.T) {
	kb := knowledge.Default()
	in := "What's your pricing?"

	intent := Classify(in, kb)
	require.Equal(t, IntentQuestion, intent)

	r := Respond(intent, in, kb)
	require.Contains(t, r.Text, "customized pricing")
	require.NotNil(t, r.Action)
	require.Equal(t, domain.ActionWhatsApp, r.Action.Kind)
}

func TestRespond_ActionMembership(t *testing.T) {
	kb := knowledge.Default()

	withAction := map[Intent]domain.ActionKind{
		IntentConnectTeam:    domain.ActionWhatsApp,
		IntentContact:        domain.ActionEmail,
		IntentWhatsApp:       domain.ActionWhatsApp,
		IntentEmail:          domain.ActionEmail,
		IntentProjectInquiry: domain.ActionWhatsApp,
		IntentTimeline:       domain.ActionWhatsApp,
	}
	for intent, kind := range withAction {
		r := Respond(intent, "anything", kb)
		require.NotNil(t, r.Action, intent)
		require.Equal(t, kind, r.Action.Kind, intent)
		require.NotEmpty(t, r.Action.Label, intent)
		require.NotEmpty(t, r.Action.URL, intent)
	}

	withoutAction := []Intent{
		IntentGreeting, IntentCompanyInfo, IntentTechGeneral, IntentTeam,
		IntentProcess, IntentFounding, IntentFAQMatch, IntentFounderInfo,
	}
	for _, intent := range withoutAction {
		r := Respond(intent, "Do you offer support after launch?", kb)
		require.Nil(t, r.Action, intent)
	}

	// Pricing words without an FAQ overlap fall back to the question text.
	for _, in := range []string{"budget?", "what's the quote?", "how much does it cost"} {
		r := Respond(IntentFAQMatch, in, kb)
		require.Nil(t, r.Action, in)
		require.Equal(t, Respond(IntentQuestion, in, kb).Text, r.Text, in)
	}
}

func TestRespond_ActionURLs(t *testing.T) {
	kb := knowledge.Default()

	r := Respond(IntentWhatsApp, "", kb)
	require.True(t, strings.HasPrefix(r.Action.URL, "https://wa.me/2348012345678?text="), r.Action.URL)

	r = Respond(IntentEmail, "", kb)
	require.True(t, strings.HasPrefix(r.Action.URL, "mailto:hello@jomiez.com"), r.Action.URL)
}

func TestRespond_FAQPicksHighestOverlap(t *testing.T) {
	kb := &domain.KnowledgeBase{FAQ: []domain.FAQEntry{
		{Question: "Which mobile platforms?", Answer: "two"},
		{Question: "Which mobile platforms support offline?", Answer: "three"},
	}}
	// "mobile", "platforms" and "offline" all occur in the input.
	r := Respond(IntentFAQMatch, "do your mobile platforms work offline?", kb)
	require.Equal(t, "three", r.Text)
}

func TestRespond_FAQTieKeepsFirst(t *testing.T) {
	kb := &domain.KnowledgeBase{FAQ: []domain.FAQEntry{
		{Question: "mobile platforms", Answer: "first"},
		{Question: "platforms mobile", Answer: "second"},
	}}
	r := Respond(IntentFAQMatch, "mobile platforms?", kb)
	require.Equal(t, "first", r.Text)
}

func TestRespond_FAQWithoutOverlapFallsBackToQuestion(t *testing.T) {
	kb := &domain.KnowledgeBase{FAQ: []domain.FAQEntry{{Question: "mobile platforms", Answer: "nope"}}}
	r := Respond(IntentFAQMatch, "why?", kb)
	require.NotEqual(t, "nope", r.Text)
	require.NotEmpty(t, r.Text)
}

func TestRespond_DefaultFAQAnswer(t *testing.T) {
	kb := knowledge.Default()
	in := "Do you offer support after launch?"
	r := Respond(Classify(in, kb), in, kb)
	require.Equal(t, kb.FAQ[2].Answer, r.Text)
}

func TestRespond_TechCategoryListsItems(t *testing.T) {
	kb := knowledge.Default()
	r := Respond(IntentTechMobile, "", kb)
	require.Contains(t, r.Text, "Flutter")
	require.Contains(t, r.Text, "Mobile Development")
}

func TestRespond_MissingTechCategoryFailsClosed(t *testing.T) {
	kb := knowledge.Default()
	trimmed := *kb
	trimmed.Technologies = nil
	for _, g := range kb.Technologies {
		if g.Category != "cloud" {
			trimmed.Technologies = append(trimmed.Technologies, g)
		}
	}

	got := Respond(IntentTechCloud, "", &trimmed)
	want := Respond(IntentTechGeneral, "", &trimmed)
	require.Equal(t, want, got)
	require.NotContains(t, got.Text, "Kubernetes, Terraform")
}

func TestRespond_ProjectInquiryTeaser(t *testing.T) {
	kb := knowledge.Default()
	r := Respond(IntentProjectInquiry, "I want to hire you for a mobile app", kb)
	require.True(t, strings.HasPrefix(r.Text, "Great choice! We build native and cross-platform mobile apps for iOS and Android."), r.Text)

	r = Respond(IntentProjectInquiry, "I have a project", kb)
	require.False(t, strings.HasPrefix(r.Text, "Great choice!"))
	require.NotNil(t, r.Action)
}

func TestFindService_MatchesCategoryKeywordsNotSubstrings(t *testing.T) {
	kb := knowledge.Default()
	svc, ok := findService(kb, CategoryAI)
	require.True(t, ok)
	require.Equal(t, "AI & Automation Solutions", svc.Name)

	// "Blockchain" contains "ai" but is not an AI service.
	kb = &domain.KnowledgeBase{Services: []domain.Service{
		{Name: "Blockchain Development", Description: "Smart contracts and wallets."},
		{Name: "Applied AI", Description: "Models wired into your product."},
	}}
	svc, ok = findService(kb, CategoryAI)
	require.True(t, ok)
	require.Equal(t, "Applied AI", svc.Name)

	r := Respond(IntentProjectInquiry, "Can you build an AI chatbot for us?", kb)
	require.True(t, strings.HasPrefix(r.Text, "Great choice! Models wired into your product."), r.Text)

	_, ok = findService(&domain.KnowledgeBase{Services: kb.Services[:1]}, CategoryAI)
	require.False(t, ok)
}

func TestRespond_PortfolioListsFirstThreeProjects(t *testing.T) {
	kb := knowledge.Default()
	r := Respond(IntentPortfolio, "", kb)
	for _, p := range kb.Projects[:3] {
		require.Contains(t, r.Text, p.Title)
	}
	require.NotContains(t, r.Text, kb.Projects[3].Title)
	require.Contains(t, r.Text, "A non-custodial crypto wallet with built-in fiat on-ramps.")
	require.NotContains(t, r.Text, "Launched on iOS")
}

func TestRespond_GeneralServiceDescription(t *testing.T) {
	kb := knowledge.Default()
	r := Respond(IntentGeneral, "something with figma", kb)
	require.Contains(t, r.Text, kb.Services[5].Description)
}

func TestRespond_GeneralTechnologyAcknowledgement(t *testing.T) {
	kb := knowledge.Default()
	in := "do you know React?"
	require.Equal(t, IntentQuestion, Classify(in, kb))

	r := Respond(IntentGeneral, in, kb)
	require.Contains(t, r.Text, "React")
	require.Contains(t, r.Text, "Custom Software")

	r = Respond(IntentQuestion, in, kb)
	require.Contains(t, r.Text, "React")
}

func TestRespond_GeneralFallbackIsStable(t *testing.T) {
	kb := knowledge.Default()
	first := Respond(IntentGeneral, "xyz", kb)
	second := Respond(IntentGeneral, "xyz", kb)
	require.Equal(t, first, second)
	require.Equal(t, fallbackReplies[SelectFallback("xyz", len(fallbackReplies))], first.Text)
}

func TestRespond_UnknownIntentUsesGeneral(t *testing.T) {
	kb := knowledge.Default()
	require.Equal(t, Respond(IntentGeneral, "xyz", kb), Respond(Intent("nonsense"), "xyz", kb))
}

func TestRespond_NilKnowledgeBase(t *testing.T) {
	for _, intent := range Intents() {
		r := Respond(intent, "", nil)
		require.NotEmpty(t, r.Text, intent)
	}
}

func TestEngine_Reply(t *testing.T) {
	e := NewEngine(knowledge.Default())
	intent, r := e.Reply("Who founded JOMIEZ?")
	require.Equal(t, IntentFounderInfo, intent)
	require.Contains(t, r.Text, "Jomi Ezekiel")
	require.Equal(t, IntentGreeting, e.Classify("hey"))
	require.Equal(t, NewClassifier(nil).RuleOrder(), e.RuleOrder())
}

func TestWhatsAppURL(t *testing.T) {
	require.Equal(t, "https://wa.me/2348012345678?text=Hi+there", WhatsAppURL("+234 801 234 5678", "Hi there"))
	require.Equal(t, "https://wa.me/15551234", WhatsAppURL("1-555-1234", ""))
}

func TestMailtoURL(t *testing.T) {
	require.Equal(t, "mailto:a@b.c?subject=Project%20inquiry", MailtoURL(" a@b.c ", "Project inquiry"))
	require.Equal(t, "mailto:a@b.c", MailtoURL("a@b.c", ""))
}
