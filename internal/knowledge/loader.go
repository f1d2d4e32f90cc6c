// Package knowledge loads and validates the chatbot's knowledge base.
package knowledge

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"agency-chatbot/internal/domain"
)

//go:embed default.yaml
var defaultYAML []byte

// Getter is the parameter store lookup used by Load.
type Getter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

// Default returns the knowledge base shipped with the binary.
func Default() *domain.KnowledgeBase {
	kb, err := Parse(defaultYAML)
	if err != nil {
		panic(fmt.Sprintf("knowledge: embedded default is invalid: %v", err))
	}
	return kb
}

// Parse decodes a YAML knowledge base and validates it. Unknown fields are
// rejected so typos in content files surface at load time.
func Parse(data []byte) (*domain.KnowledgeBase, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("knowledge: document is empty")
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var kb domain.KnowledgeBase
	if err := dec.Decode(&kb); err != nil {
		return nil, fmt.Errorf("knowledge: decode: %w", err)
	}
	if err := Validate(&kb); err != nil {
		return nil, err
	}
	return &kb, nil
}

// LoadFile reads and parses the knowledge base at path.
func LoadFile(path string) (*domain.KnowledgeBase, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("knowledge: read %q: %w", path, err)
	}
	return Parse(data)
}

// Load reads the knowledge base YAML stored in the named parameter.
func Load(ctx context.Context, g Getter, name string) (*domain.KnowledgeBase, error) {
	if g == nil {
		return nil, errors.New("knowledge: parameter getter must not be nil")
	}
	raw, err := g.GetParameter(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("knowledge: load %q: %w", name, err)
	}
	return Parse([]byte(raw))
}

// Validate checks the fields every reply path depends on.
func Validate(kb *domain.KnowledgeBase) error {
	if kb == nil {
		return errors.New("knowledge: knowledge base is nil")
	}
	var problems []string
	if strings.TrimSpace(kb.Company.Name) == "" {
		problems = append(problems, "company.name is required")
	}
	if len(kb.Services) == 0 {
		problems = append(problems, "at least one service is required")
	}
	for i, s := range kb.Services {
		if strings.TrimSpace(s.Name) == "" || strings.TrimSpace(s.Description) == "" {
			problems = append(problems, fmt.Sprintf("services[%d] needs a name and description", i))
		}
	}
	if len(kb.FAQ) == 0 {
		problems = append(problems, "at least one faq entry is required")
	}
	for i, e := range kb.FAQ {
		if strings.TrimSpace(e.Question) == "" || strings.TrimSpace(e.Answer) == "" {
			problems = append(problems, fmt.Sprintf("faq[%d] needs a question and answer", i))
		}
	}
	for i, g := range kb.Technologies {
		if strings.TrimSpace(g.Category) == "" {
			problems = append(problems, fmt.Sprintf("technologies[%d].category is required", i))
		}
	}
	if strings.TrimSpace(kb.Contact.Email) == "" && strings.TrimSpace(kb.Contact.WhatsAppNumber) == "" {
		problems = append(problems, "contact needs an email or a whatsapp number")
	}
	if len(problems) > 0 {
		return fmt.Errorf("knowledge: invalid knowledge base: %s", strings.Join(problems, "; "))
	}
	return nil
}

// WithContact returns a copy of kb whose non-empty contact fields are
// replaced by the ones in override. kb itself is left untouched.
func WithContact(kb *domain.KnowledgeBase, override domain.Contact) *domain.KnowledgeBase {
	out := *kb
	if v := strings.TrimSpace(override.WhatsAppNumber); v != "" {
		out.Contact.WhatsAppNumber = v
	}
	if v := strings.TrimSpace(override.WhatsAppMessage); v != "" {
		out.Contact.WhatsAppMessage = v
	}
	if v := strings.TrimSpace(override.Email); v != "" {
		out.Contact.Email = v
	}
	return &out
}
