package triage

import (
	"fmt"
	"regexp"
	"strings"

	"agency-chatbot/internal/domain"
)

type builder func(text string, kb *domain.KnowledgeBase) domain.Response

var builders = map[Intent]builder{
	IntentFounderInfo:    founderInfo,
	IntentGreeting:       greeting,
	IntentCompanyInfo:    companyInfo,
	IntentConnectTeam:    connectTeam,
	IntentContact:        contact,
	IntentWhatsApp:       whatsApp,
	IntentEmail:          email,
	IntentProjectInquiry: projectInquiry,
	IntentPortfolio:      portfolio,
	IntentTimeline:       timeline,
	IntentTechGeneral:    techGeneral,
	IntentTeam:           team,
	IntentProcess:        process,
	IntentFounding:       founding,
	IntentLocation:       location,
	IntentOwner:          owner,
	IntentFAQMatch:       faqMatch,
	IntentQuestion:       question,
	IntentGeneral:        general,
}

// Respond builds the reply for intent. Unknown intents get the general
// reply, so every call yields non-empty text.
func Respond(intent Intent, text string, kb *domain.KnowledgeBase) domain.Response {
	if kb == nil {
		kb = &domain.KnowledgeBase{}
	}
	if cat, ok := intent.TechCategory(); ok {
		return techCategory(cat, kb)
	}
	if b, ok := builders[intent]; ok {
		return b(text, kb)
	}
	return general(text, kb)
}

func reply(parts ...string) domain.Response {
	return domain.Response{Text: sentences(parts...)}
}

func sentences(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, " ")
}

func companyName(kb *domain.KnowledgeBase) string {
	if kb.Company.Name != "" {
		return kb.Company.Name
	}
	return "our studio"
}

func founderInfo(_ string, kb *domain.KnowledgeBase) domain.Response {
	f := kb.Company.Founder
	if f.Name == "" {
		return reply(companyName(kb) + " was started by a small group of engineers and designers who still lead the work today.")
	}
	title := f.Title
	if title == "" {
		title = "Founder"
	}
	var reach string
	if f.Contact != "" {
		reach = fmt.Sprintf("You can reach %s directly at %s.", f.Name, f.Contact)
	}
	return reply(
		fmt.Sprintf("%s was founded by %s, our %s.", companyName(kb), f.Name, title),
		f.Bio,
		f.Vision,
		reach,
	)
}

func greeting(_ string, kb *domain.KnowledgeBase) domain.Response {
	return reply(
		fmt.Sprintf("Hello! Welcome to %s.", companyName(kb)),
		"I can tell you about our services, past projects, team and process, or help you get in touch. What brings you here today?",
	)
}

func companyInfo(_ string, kb *domain.KnowledgeBase) domain.Response {
	c := kb.Company
	intro := companyName(kb) + " is a digital agency."
	if c.Tagline != "" {
		intro = fmt.Sprintf("%s is %s.", companyName(kb), strings.TrimSuffix(c.Tagline, "."))
	}
	var record string
	if s := c.Statistics; s.ProjectsCompleted > 0 {
		record = fmt.Sprintf("Since %d we've delivered %d+ projects for %d+ clients across %d countries.",
			c.FoundedYear, s.ProjectsCompleted, s.HappyClients, s.Countries)
	}
	var awards string
	if len(c.Awards) > 0 {
		awards = "Recognition includes " + strings.Join(c.Awards, ", ") + "."
	}
	return reply(intro, record, awards)
}

func connectTeam(_ string, kb *domain.KnowledgeBase) domain.Response {
	r := reply("I'll connect you with a real person on our team.",
		"Tap below to chat with us on WhatsApp and someone will reply shortly.")
	r.Action = whatsAppAction(kb.Contact, "Chat with our team")
	return r
}

func contact(_ string, kb *domain.KnowledgeBase) domain.Response {
	var channels string
	switch ct := kb.Contact; {
	case ct.Email != "" && ct.WhatsAppNumber != "":
		channels = fmt.Sprintf("You can reach us by email at %s or on WhatsApp at %s.", ct.Email, ct.WhatsAppNumber)
	case ct.Email != "":
		channels = fmt.Sprintf("You can reach us by email at %s.", ct.Email)
	default:
		channels = "You can reach us any time through the button below."
	}
	r := reply(channels, "We usually reply within one business day.")
	r.Action = emailAction(kb.Contact, "Send us an email")
	return r
}

func whatsApp(_ string, kb *domain.KnowledgeBase) domain.Response {
	lead := "Sure! The quickest way to reach us is WhatsApp."
	if n := kb.Contact.WhatsAppNumber; n != "" {
		lead = fmt.Sprintf("Sure! Message or call us on WhatsApp at %s.", n)
	}
	r := reply(lead, "Tap below and your message will be pre-filled.")
	r.Action = whatsAppAction(kb.Contact, "Message us on WhatsApp")
	return r
}

func email(_ string, kb *domain.KnowledgeBase) domain.Response {
	lead := "Of course! Drop us an email and we'll get back to you."
	if e := kb.Contact.Email; e != "" {
		lead = fmt.Sprintf("Of course! Write to us at %s and we'll get back to you.", e)
	}
	r := reply(lead, "Include a short description of your project so we can route it to the right people.")
	r.Action = emailAction(kb.Contact, "Email us")
	return r
}

func projectInquiry(text string, kb *domain.KnowledgeBase) domain.Response {
	var teaser string
	if cats := ExtractServiceTypes(text); len(cats) > 0 {
		if svc, ok := findService(kb, cats[0]); ok {
			if s := firstSentence(svc.Description); s != "" {
				teaser = fmt.Sprintf("Great choice! %s.", s)
			}
		}
	}
	r := reply(teaser,
		"Every project we take on is scoped to your goals, timeline and budget.",
		"Share a few details and we'll prepare a tailored proposal for you.")
	r.Action = whatsAppAction(kb.Contact, "Discuss your project")
	return r
}

func portfolio(_ string, kb *domain.KnowledgeBase) domain.Response {
	if len(kb.Projects) == 0 {
		return reply("We're refreshing our case studies right now. Ask me about a specific industry and I'll tell you what we've built.")
	}
	var b strings.Builder
	b.WriteString("Here are a few projects we're proud of:")
	for i, p := range kb.Projects {
		if i == 3 {
			break
		}
		fmt.Fprintf(&b, "\n• %s: %s.", p.Title, firstSentence(p.Description))
	}
	if len(kb.Testimonials) > 0 {
		t := kb.Testimonials[0]
		fmt.Fprintf(&b, "\n\n\"%s\" (%s, %s)", t.Testimony, t.Name, t.Position)
	}
	return domain.Response{Text: b.String()}
}

func timeline(_ string, kb *domain.KnowledgeBase) domain.Response {
	r := reply(
		"Timelines depend on scope. A landing page typically takes 1-2 weeks, an MVP 6-12 weeks, and larger platforms 3-6 months.",
		"Tell us about your project and we'll give you a precise estimate.",
	)
	r.Action = whatsAppAction(kb.Contact, "Get a timeline estimate")
	return r
}

func techGroup(kb *domain.KnowledgeBase, cat Category) (domain.TechnologyGroup, bool) {
	for _, g := range kb.Technologies {
		if strings.EqualFold(strings.TrimSpace(g.Category), string(cat)) && len(g.Items) > 0 {
			return g, true
		}
	}
	return domain.TechnologyGroup{}, false
}

// techCategory falls back to the general tech reply when kb has no
// technologies listed for cat.
func techCategory(cat Category, kb *domain.KnowledgeBase) domain.Response {
	g, ok := techGroup(kb, cat)
	if !ok {
		return techGeneral("", kb)
	}
	return reply(
		fmt.Sprintf("For %s we work with %s.", cat.Label(), strings.Join(g.Items, ", ")),
		"We choose the stack per project based on performance, maintainability and your team's needs.",
	)
}

func techGeneral(_ string, kb *domain.KnowledgeBase) domain.Response {
	if len(kb.Technologies) == 0 {
		return reply("We pick proven, modern tools for every project and are happy to work with your existing stack.")
	}
	var b strings.Builder
	b.WriteString("Our stack covers every layer of a product:")
	for _, g := range kb.Technologies {
		items := g.Items
		if len(items) > 4 {
			items = items[:4]
		}
		fmt.Fprintf(&b, "\n• %s: %s", Category(strings.ToLower(g.Category)).Label(), strings.Join(items, ", "))
	}
	b.WriteString("\nAsk about any area for the full list.")
	return domain.Response{Text: b.String()}
}

func team(_ string, kb *domain.KnowledgeBase) domain.Response {
	size := "Our team"
	if n := kb.Company.Statistics.TeamMembers; n > 0 {
		size = fmt.Sprintf("Our team of %d+ specialists", n)
	}
	return reply(
		size+" brings together developers, designers, cloud engineers and AI experts.",
		leadershipSentence(kb),
	)
}

func leadershipSentence(kb *domain.KnowledgeBase) string {
	if len(kb.Company.Leadership) == 0 {
		return ""
	}
	names := make([]string, 0, len(kb.Company.Leadership))
	for _, l := range kb.Company.Leadership {
		names = append(names, fmt.Sprintf("%s (%s)", l.Name, l.Role))
	}
	return "Leadership: " + strings.Join(names, ", ") + "."
}

func process(_ string, _ *domain.KnowledgeBase) domain.Response {
	return reply(
		"We work in agile sprints across five phases:",
		"1) Discovery, 2) Design, 3) Development, 4) Testing, 5) Launch & support.",
		"You get a demo every two weeks and a direct line to your project lead.",
	)
}

func founding(_ string, kb *domain.KnowledgeBase) domain.Response {
	c := kb.Company
	lead := companyName(kb) + " has been building digital products for years."
	if c.FoundedYear > 0 {
		lead = fmt.Sprintf("%s was founded in %d", companyName(kb), c.FoundedYear)
		if c.Founder.Name != "" {
			lead += " by " + c.Founder.Name
		}
		lead += "."
	}
	var milestones string
	if len(c.Milestones) > 0 {
		parts := make([]string, 0, len(c.Milestones))
		for _, m := range c.Milestones {
			parts = append(parts, fmt.Sprintf("%d: %s", m.Year, m.Event))
		}
		milestones = "Key milestones: " + strings.Join(parts, "; ") + "."
	}
	return reply(lead, milestones)
}

func location(_ string, kb *domain.KnowledgeBase) domain.Response {
	where := "We work remotely with clients worldwide."
	if l := kb.Company.Location; l != "" {
		where = fmt.Sprintf("We're based in %s and work remotely with clients worldwide.", l)
	}
	var reach string
	if n := kb.Company.Statistics.Countries; n > 0 {
		reach = fmt.Sprintf("So far we've delivered projects in %d countries.", n)
	}
	return reply(where, reach)
}

func owner(_ string, kb *domain.KnowledgeBase) domain.Response {
	f := kb.Company.Founder
	lead := companyName(kb) + " is privately owned and led by its founding team."
	if f.Name != "" {
		title := f.Title
		if title == "" {
			title = "Founder"
		}
		lead = fmt.Sprintf("%s is owned and led by %s, our %s.", companyName(kb), f.Name, title)
	}
	return reply(lead, leadershipSentence(kb))
}

// faqMatch returns the answer whose question shares the most keywords with
// text. Ties keep the earliest entry. Without a match it falls back to the
// question text and never carries an action.
func faqMatch(text string, kb *domain.KnowledgeBase) domain.Response {
	lower := strings.ToLower(text)
	best, bestCount := -1, 0
	for i, e := range kb.FAQ {
		if n := keywordOverlap(e.Question, lower); n > bestCount {
			best, bestCount = i, n
		}
	}
	if best < 0 || strings.TrimSpace(kb.FAQ[best].Answer) == "" {
		r := question(text, kb)
		r.Action = nil
		return r
	}
	return domain.Response{Text: kb.FAQ[best].Answer}
}

func question(text string, kb *domain.KnowledgeBase) domain.Response {
	if pricingTrigger.MatchString(text) {
		r := reply(
			"We offer customized pricing based on each project's scope, timeline and technology.",
			"Share your requirements and we'll send you a detailed quote.",
		)
		r.Action = whatsAppAction(kb.Contact, "Get a quote")
		return r
	}
	if r, ok := serviceReply(text, kb); ok {
		return r
	}
	if r, ok := technologyAck(text, kb); ok {
		return r
	}
	return reply(
		"That's a great question!",
		"I may not have the full answer, but our team does. Ask me about our services, projects or process, or reach out directly.",
	)
}

func general(text string, kb *domain.KnowledgeBase) domain.Response {
	if r, ok := serviceReply(text, kb); ok {
		return r
	}
	if r, ok := technologyAck(text, kb); ok {
		return r
	}
	return domain.Response{Text: fallbackReplies[SelectFallback(text, len(fallbackReplies))]}
}

func serviceReply(text string, kb *domain.KnowledgeBase) (domain.Response, bool) {
	cats := ExtractServiceTypes(text)
	if len(cats) == 0 {
		return domain.Response{}, false
	}
	svc, ok := findService(kb, cats[0])
	if !ok || strings.TrimSpace(svc.Description) == "" {
		return domain.Response{}, false
	}
	return reply(svc.Description, fmt.Sprintf("Would you like to know how we could help with your %s needs?", svc.Name)), true
}

func technologyAck(text string, kb *domain.KnowledgeBase) (domain.Response, bool) {
	lower := strings.ToLower(text)
	for _, g := range kb.Technologies {
		for _, item := range g.Items {
			if item == "" || !strings.Contains(lower, strings.ToLower(item)) {
				continue
			}
			return reply(
				fmt.Sprintf("Yes, we work with %s! It's part of our %s toolkit.", item, Category(strings.ToLower(g.Category)).Label()),
				"Want to hear how we've used it in past projects?",
			), true
		}
	}
	return domain.Response{}, false
}

// findService returns the first service whose name mentions cat, then the
// first whose description does.
func findService(kb *domain.KnowledgeBase, cat Category) (domain.Service, bool) {
	re := categoryPattern(cat)
	if re == nil {
		return domain.Service{}, false
	}
	for _, s := range kb.Services {
		if re.MatchString(s.Name) {
			return s, true
		}
	}
	for _, s := range kb.Services {
		if re.MatchString(s.Description) {
			return s, true
		}
	}
	return domain.Service{}, false
}

func categoryPattern(cat Category) *regexp.Regexp {
	for _, sc := range serviceCategories {
		if sc.category == cat {
			return sc.re
		}
	}
	return nil
}
