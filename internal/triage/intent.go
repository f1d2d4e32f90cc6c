// Package triage maps a visitor's free-text chat message to an intent and
// builds the scripted reply for it from the knowledge base.
//
// Classification is first-match-wins over an ordered rule list; response
// building is a lookup keyed by intent. Both are pure functions of their
// inputs.
package triage

import "strings"

// Intent is the inferred purpose of one user message.
type Intent string

const (
	IntentFounderInfo    Intent = "founder_info"
	IntentGreeting       Intent = "greeting"
	IntentCompanyInfo    Intent = "company_info"
	IntentConnectTeam    Intent = "connect_team"
	IntentContact        Intent = "contact"
	IntentWhatsApp       Intent = "whatsapp"
	IntentEmail          Intent = "email"
	IntentProjectInquiry Intent = "project_inquiry"
	IntentPortfolio      Intent = "portfolio"
	IntentTimeline       Intent = "timeline"
	IntentTechWeb3       Intent = "tech_web3"
	IntentTechMobile     Intent = "tech_mobile"
	IntentTechAI         Intent = "tech_ai"
	IntentTechSoftware   Intent = "tech_software"
	IntentTechCloud      Intent = "tech_cloud"
	IntentTechDesign     Intent = "tech_design"
	IntentTechGeneral    Intent = "tech_general"
	IntentTeam           Intent = "team"
	IntentProcess        Intent = "process"
	IntentFounding       Intent = "founding"
	IntentLocation       Intent = "location"
	IntentOwner          Intent = "owner"
	IntentFAQMatch       Intent = "faq_match"
	IntentQuestion       Intent = "question"
	IntentGeneral        Intent = "general"
)

const techPrefix = "tech_"

// Intents returns every member of the closed intent set.
func Intents() []Intent {
	return []Intent{
		IntentFounderInfo, IntentGreeting, IntentCompanyInfo, IntentConnectTeam,
		IntentContact, IntentWhatsApp, IntentEmail, IntentProjectInquiry,
		IntentPortfolio, IntentTimeline, IntentTechWeb3, IntentTechMobile,
		IntentTechAI, IntentTechSoftware, IntentTechCloud, IntentTechDesign,
		IntentTechGeneral, IntentTeam, IntentProcess, IntentFounding,
		IntentLocation, IntentOwner, IntentFAQMatch, IntentQuestion, IntentGeneral,
	}
}

// Valid reports whether i belongs to the closed intent set.
func (i Intent) Valid() bool {
	for _, known := range Intents() {
		if i == known {
			return true
		}
	}
	return false
}

func (i Intent) String() string { return string(i) }

// Category is a service category the agency offers.
type Category string

const (
	CategoryWeb3     Category = "web3"
	CategoryMobile   Category = "mobile"
	CategoryAI       Category = "ai"
	CategorySoftware Category = "software"
	CategoryCloud    Category = "cloud"
	CategoryDesign   Category = "design"
)

var categoryLabels = map[Category]string{
	CategoryWeb3:     "Web3 & Blockchain",
	CategoryMobile:   "Mobile Development",
	CategoryAI:       "AI & Automation",
	CategorySoftware: "Custom Software",
	CategoryCloud:    "Cloud & DevOps",
	CategoryDesign:   "UI/UX Design",
}

// Label returns the display name for c, or c itself when unknown.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// TechIntent returns the tech intent for c.
func TechIntent(c Category) Intent {
	return Intent(techPrefix + string(c))
}

// TechCategory returns the category of a tech_<category> intent. It reports
// false for tech_general and for every non-tech intent.
func (i Intent) TechCategory() (Category, bool) {
	s := string(i)
	if !strings.HasPrefix(s, techPrefix) || i == IntentTechGeneral {
		return "", false
	}
	return Category(strings.TrimPrefix(s, techPrefix)), true
}
