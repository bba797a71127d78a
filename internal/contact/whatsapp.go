// Package contact builds WhatsApp deep links that open a chat with the
// agent, prefilled either from the contact form or from a listing.
package contact

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/dmitrijs2005/realty/internal/catalog"
	"github.com/dmitrijs2005/realty/internal/common"
)

const (
	DefaultPhone     = "5535988326287"
	DefaultAgentName = "Raphael"

	baseURL = "https://wa.me/"
)

// Form is what a visitor fills in on the contact section.
type Form struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

func (f Form) Validate() error {
	var missing []string
	if strings.TrimSpace(f.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(f.Message) == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", common.ErrorValidation, strings.Join(missing, " and "))
	}
	return nil
}

type Linker struct {
	Phone     string
	AgentName string
}

func NewLinker(phone, agent string) Linker {
	if phone == "" {
		phone = DefaultPhone
	}
	if agent == "" {
		agent = DefaultAgentName
	}
	return Linker{Phone: digits(phone), AgentName: agent}
}

// ContactMessage renders the contact form into the chat text.
func (l Linker) ContactMessage(f Form) string {
	return fmt.Sprintf("Olá %s! Meu nome é %s. %s. Meu telefone: %s, email: %s",
		l.AgentName,
		strings.TrimSpace(f.Name),
		strings.TrimSpace(f.Message),
		strings.TrimSpace(f.Phone),
		strings.TrimSpace(f.Email))
}

// InquiryMessage is the text sent when asking about a specific listing.
func (l Linker) InquiryMessage(p catalog.Property) string {
	return fmt.Sprintf("Olá %s! Tenho interesse no imóvel: %s - %s. Gostaria de mais informações.",
		l.AgentName, p.Title, p.Location)
}

func (l Linker) ContactLink(f Form) (string, error) {
	if err := f.Validate(); err != nil {
		return "", err
	}
	return l.link(l.ContactMessage(f)), nil
}

func (l Linker) InquiryLink(p catalog.Property) string {
	return l.link(l.InquiryMessage(p))
}

// DirectLink opens the chat without any prefilled text.
func (l Linker) DirectLink() string {
	return baseURL + l.Phone
}

func (l Linker) link(text string) string {
	return baseURL + l.Phone + "?text=" + encodeComponent(text)
}

// encodeComponent percent-encodes s for a query value, with spaces as %20
// rather than '+', which some messaging apps render literally.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
