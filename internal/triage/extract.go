package triage

import (
	"regexp"
	"strings"
	"unicode"
)

// keywords compiles a case-insensitive, word-bounded alternation.
func keywords(terms ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(terms, "|") + `)\b`)
}

var (
	founderInfoRe = keywords(`founders?`, `co-?founders?`, `founded`, `ceo`, `who started`, `who created`,
		`who owns`, `who runs`, `who built`, `who is behind`)
	greetingRe     = regexp.MustCompile(`(?i)^(?:hi|hello|hey|hiya|greetings|good (?:morning|afternoon|evening))\b`)
	aboutRe        = keywords(`about`, `info`, `information`, `who is`, `what is`, `who are`, `what do you do`)
	contactRe      = keywords(`contact`, `reach`, `get in touch`, `talk to`, `speak (?:to|with)`, `connect`, `consultation`)
	humanRe        = keywords(`team`, `human`, `person`, `someone`, `somebody`, `agent`, `representative`, `staff`, `manager`)
	whatsAppRe     = keywords(`phone`, `call`, `text`, `message`, `whatsapp`, `number`, `sms`)
	emailRe        = keywords(`e-?mail`, `mail`, `send`, `write`, `inbox`)
	projectRe      = keywords(`projects?`, `services?`, `hire`, `hiring`, `costs?`, `prices?`, `quotes?`, `budget`, `build`, `develop`)
	portfolioRe    = keywords(`portfolio`, `case stud(?:y|ies)`, `showcase`, `past work`, `previous work`, `examples`)
	timelineRe     = keywords(`how long`, `duration`, `turnaround`, `deadlines?`, `timelines?`, `time ?frames?`, `weeks?`, `months?`, `deliver`, `delivery`)
	techRe         = keywords(`tech`, `technology`, `technologies`, `stacks?`, `frameworks?`, `languages?`, `tools?`, `tooling`)
	teamRe         = keywords(`team`, `staff`, `developers?`, `designers?`, `engineers?`, `experts?`, `employees`, `people`, `talent`)
	processRe      = keywords(`process`, `methodology`, `methodologies`, `workflow`, `agile`, `scrum`, `approach`, `steps`, `phases`)
	foundingRe     = keywords(`found`, `start`, `started`, `create`, `created`, `years?`, `establish`, `established`, `since`, `history`, `began`)
	locationRe     = keywords(`where`, `location`, `located`, `offices?`, `address`, `based`, `remote`, `country`, `city`, `visit`)
	ownerRe        = keywords(`owner`, `owns`, `own`, `president`, `director`, `chairman`, `leadership`, `head`, `boss`, `founder`, `ceo`)
	pricingTrigger = regexp.MustCompile(`(?i)cost|pric|budget|quote`)
)

// serviceCategories is declared in priority order; ExtractServiceTypes
// reports matches in this order.
var serviceCategories = []struct {
	category Category
	re       *regexp.Regexp
}{
	{CategoryWeb3, keywords(`web ?3`, `blockchain`, `crypto`, `cryptocurrency`, `nfts?`, `smart contracts?`, `defi`, `dapps?`, `solidity`, `tokens?`)},
	{CategoryMobile, keywords(`mobile`, `ios`, `android`, `apps?`, `flutter`, `react native`, `iphone`)},
	{CategoryAI, keywords(`ai`, `artificial intelligence`, `machine learning`, `ml`, `chatbots?`, `llms?`, `automation`, `gpt`)},
	{CategorySoftware, keywords(`software`, `web apps?`, `websites?`, `web development`, `saas`, `backend`, `frontend`, `erp`, `crm`, `platforms?`)},
	{CategoryCloud, keywords(`cloud`, `aws`, `azure`, `gcp`, `devops`, `kubernetes`, `docker`, `hosting`, `serverless`, `infrastructure`)},
	{CategoryDesign, keywords(`design`, `ui`, `ux`, `branding`, `logo`, `figma`, `prototypes?`, `prototyping`)},
}

var companyAliases = []string{
	"jomiez", "company", "you", "your company", "this company",
	"business", "agency", "studio", "firm", "organization",
}

var questionMarkers = []string{
	"?", "what", "how", "who", "when", "where", "why", "which", "can you", "do you",
}

// ExtractServiceTypes returns every service category mentioned in text, in
// declaration order.
func ExtractServiceTypes(text string) []Category {
	var out []Category
	for _, sc := range serviceCategories {
		if sc.re.MatchString(text) {
			out = append(out, sc.category)
		}
	}
	return out
}

// ExtractNameEntities returns the company aliases that occur in text as
// plain substrings.
func ExtractNameEntities(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for _, alias := range companyAliases {
		if strings.Contains(lower, alias) {
			out = append(out, alias)
		}
	}
	return out
}

// HasQuestionMarker reports whether text contains '?' or an interrogative.
func HasQuestionMarker(text string) bool {
	lower := strings.ToLower(text)
	for _, m := range questionMarkers {
		if strings.Contains(lower, m) {
			return true
		}
	}
	return false
}

// questionKeywords returns the lowercased words of q longer than four
// characters, with surrounding punctuation trimmed.
func questionKeywords(q string) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(q)) {
		w = strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len([]rune(w)) > 4 {
			out = append(out, w)
		}
	}
	return out
}

// keywordOverlap counts the keywords of question present in lowerText.
func keywordOverlap(question, lowerText string) int {
	n := 0
	for _, kw := range questionKeywords(question) {
		if strings.Contains(lowerText, kw) {
			n++
		}
	}
	return n
}

// firstSentence returns the text before the first '.', trimmed.
func firstSentence(s string) string {
	head, _, _ := strings.Cut(s, ".")
	return strings.TrimSpace(head)
}
