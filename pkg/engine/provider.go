package engine

import (
	"fmt"
	"strings"

	"github.com/germanamz/modai/pkg/modeladapter"
	"github.com/germanamz/modai/pkg/providers/gemini"
	"github.com/germanamz/modai/pkg/providers/local"
	"github.com/germanamz/modai/pkg/providers/openai"
)

// Family names a provider implementation. The set is closed.
type Family string

const (
	FamilyOpenAI Family = "openai"
	FamilyGemini Family = "gemini"
	FamilyLocal  Family = "local"
)

// Route maps a model identifier prefix to a Family.
type Route struct {
	Prefix string
	Family Family
}

// routes is matched in order and case-sensitively; the first prefix wins.
var routes = []Route{
	{Prefix: "gpt", Family: FamilyOpenAI},
	{Prefix: "o1", Family: FamilyOpenAI},
	{Prefix: "o3", Family: FamilyOpenAI},
	{Prefix: "o4", Family: FamilyOpenAI},
	{Prefix: "chatgpt", Family: FamilyOpenAI},
	{Prefix: "gemini", Family: FamilyGemini},
	{Prefix: "llama", Family: FamilyLocal},
}

// Families returns a copy of the routing table.
func Families() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// Credential is the key and optional base URL for one family. An empty
// BaseURL selects the provider's default.
type Credential struct {
	APIKey  string
	BaseURL string
}

// Credentials holds a Credential per family.
type Credentials struct {
	OpenAI Credential
	Gemini Credential
	Local  Credential
}

// UnknownModelError is returned when no route matches a model identifier.
type UnknownModelError struct {
	Model string
}

func (e *UnknownModelError) Error() string {
	return "unknown model provider for: " + e.Model
}

// factory builds the Caller for a family from its credential.
type factory func(Credential) modeladapter.Caller

var factories = map[Family]factory{
	FamilyOpenAI: func(c Credential) modeladapter.Caller { return openai.New(c.BaseURL, c.APIKey) },
	FamilyGemini: func(c Credential) modeladapter.Caller { return gemini.New(c.BaseURL, c.APIKey) },
	FamilyLocal:  func(c Credential) modeladapter.Caller { return local.New(c.BaseURL, c.APIKey) },
}

// FamilyOf returns the family routing modelID.
func FamilyOf(modelID string) (Family, error) {
	for _, r := range routes {
		if strings.HasPrefix(modelID, r.Prefix) {
			return r.Family, nil
		}
	}
	return "", &UnknownModelError{Model: modelID}
}

// Resolve returns a Caller for modelID built from the matching family's
// credential. Resolution performs no I/O.
func Resolve(modelID string, creds Credentials) (modeladapter.Caller, Family, error) {
	fam, err := FamilyOf(modelID)
	if err != nil {
		return nil, "", err
	}

	var cred Credential
	switch fam {
	case FamilyOpenAI:
		cred = creds.OpenAI
	case FamilyGemini:
		cred = creds.Gemini
	case FamilyLocal:
		cred = creds.Local
	}

	build, ok := factories[fam]
	if !ok {
		return nil, "", fmt.Errorf("engine: no provider for family %q", fam)
	}

	return build(cred), fam, nil
}

// ResolverFunc matches the signature of Resolve.
type ResolverFunc func(modelID string, creds Credentials) (modeladapter.Caller, Family, error)
