package domain

// KnowledgeBase is the static content the chatbot answers from. It is loaded
// once and shared read-only; nothing downstream mutates it.
type KnowledgeBase struct {
	Company      Company           `yaml:"company"`
	Contact      Contact           `yaml:"contact"`
	Services     []Service         `yaml:"services"`
	Technologies []TechnologyGroup `yaml:"technologies"`
	Projects     []Project         `yaml:"projects"`
	Testimonials []Testimonial     `yaml:"testimonials"`
	FAQ          []FAQEntry        `yaml:"faq"`
}

type Company struct {
	Name        string      `yaml:"name"`
	Tagline     string      `yaml:"tagline"`
	FoundedYear int         `yaml:"foundedYear"`
	Location    string      `yaml:"location"`
	Founder     Founder     `yaml:"founder"`
	Leadership  []Leader    `yaml:"leadership"`
	Milestones  []Milestone `yaml:"milestones"`
	Awards      []string    `yaml:"awards"`
	Statistics  Statistics  `yaml:"statistics"`
}

type Founder struct {
	Name    string `yaml:"name"`
	Title   string `yaml:"title"`
	Bio     string `yaml:"bio"`
	Vision  string `yaml:"vision"`
	Contact string `yaml:"contact"`
}

type Leader struct {
	Name string `yaml:"name"`
	Role string `yaml:"role"`
}

type Milestone struct {
	Year  int    `yaml:"year"`
	Event string `yaml:"event"`
}

type Statistics struct {
	ProjectsCompleted int `yaml:"projectsCompleted"`
	HappyClients      int `yaml:"happyClients"`
	TeamMembers       int `yaml:"teamMembers"`
	Countries         int `yaml:"countries"`
}

// Contact holds the channel constants used to build call-to-action URLs.
type Contact struct {
	WhatsAppNumber  string `yaml:"whatsappNumber"`
	WhatsAppMessage string `yaml:"whatsappMessage"`
	Email           string `yaml:"email"`
}

type Service struct {
	Name             string   `yaml:"name"`
	Description      string   `yaml:"description"`
	TechnologiesUsed []string `yaml:"technologiesUsed"`
	UseCases         []string `yaml:"useCases"`
}

type TechnologyGroup struct {
	Category string   `yaml:"category"`
	Items    []string `yaml:"items"`
}

type Project struct {
	Title        string   `yaml:"title"`
	Category     string   `yaml:"category"`
	Description  string   `yaml:"description"`
	Technologies []string `yaml:"technologies"`
	Results      string   `yaml:"results"`
}

type Testimonial struct {
	Name      string `yaml:"name"`
	Position  string `yaml:"position"`
	Testimony string `yaml:"testimony"`
}

type FAQEntry struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}
