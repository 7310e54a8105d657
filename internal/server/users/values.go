package users

import "github.com/dmitrijs2005/bookshelf/internal/server/validated"

var (
	loginRule      = validated.NewRule[string]("login", "email")
	passwordRule   = validated.NewRule[string]("password", "ascii,min=8,has_letter,has_digit,has_special")
	externalIDRule = validated.NewRule[string]("external_id", "required")
)

// Login is an email address.
type Login struct{ value string }

func NewLogin(raw string) (Login, error) {
	if err := loginRule.Check(raw); err != nil {
		return Login{}, err
	}
	return Login{value: raw}, nil
}

func (l Login) String() string { return l.value }

// Password is at least 8 ASCII characters with a letter, a digit and a
// punctuation mark.
type Password struct{ value string }

func NewPassword(raw string) (Password, error) {
	if err := passwordRule.Check(raw); err != nil {
		return Password{}, err
	}
	return Password{value: raw}, nil
}

// Reveal returns the raw password. String is deliberately masked.
func (p Password) Reveal() string { return p.value }

func (p Password) String() string { return "********" }

type ExternalID struct{ value string }

func NewExternalID(raw string) (ExternalID, error) {
	if err := externalIDRule.Check(raw); err != nil {
		return ExternalID{}, err
	}
	return ExternalID{value: raw}, nil
}

func (e ExternalID) String() string { return e.value }
