// Package validated builds parse-don't-validate value objects on top of
// go-playground/validator tags. A Rule checks raw input once; the value type
// that owns the rule only hands out instances that passed it.
package validated

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Reason is a stable, machine-readable validation failure code.
type Reason string

const (
	ReasonTooShort  Reason = "too_short"
	ReasonTooLong   Reason = "too_long"
	ReasonNotEmail  Reason = "not_email"
	ReasonNotASCII  Reason = "not_ascii"
	ReasonNoLetter  Reason = "no_letter"
	ReasonNoDigit   Reason = "no_digit"
	ReasonNoSpecial Reason = "no_special"
	ReasonEmpty     Reason = "empty"
)

// ErrValidation matches every *Error via errors.Is.
var ErrValidation = errors.New("validation failed")

// Error describes the first rule a value broke.
type Error struct {
	Field   string
	Reason  Reason
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *Error) Is(target error) bool {
	return target == ErrValidation
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	custom := map[string]func(rune) bool{
		"has_letter":  unicode.IsLetter,
		"has_digit":   unicode.IsDigit,
		"has_special": isASCIIPunct,
	}
	for tag, pred := range custom {
		pred := pred
		err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
			return strings.ContainsFunc(fl.Field().String(), pred)
		})
		if err != nil {
			panic(fmt.Sprintf("register %s: %v", tag, err))
		}
	}

	return v
}

func isASCIIPunct(r rune) bool {
	return r < unicode.MaxASCII && (unicode.IsPunct(r) || unicode.IsSymbol(r))
}

// Rule validates raw values of type T against a validator tag list such as
// "min=3,max=255". Tags are evaluated left to right and the first failure wins.
type Rule[T any] struct {
	field string
	tag   string
}

func NewRule[T any](field, tag string) Rule[T] {
	return Rule[T]{field: field, tag: tag}
}

// Check returns nil when raw satisfies every tag, or an *Error otherwise.
func (r Rule[T]) Check(raw T) error {
	err := validate.Var(raw, r.tag)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return fmt.Errorf("%s: %w", r.field, err)
	}

	return r.toError(verrs[0])
}

func (r Rule[T]) toError(fe validator.FieldError) *Error {
	e := &Error{Field: r.field}

	switch fe.Tag() {
	case "min":
		e.Reason, e.Message = ReasonTooShort, "length is lower than "+fe.Param()
	case "max":
		e.Reason, e.Message = ReasonTooLong, "length is greater than "+fe.Param()
	case "required":
		e.Reason, e.Message = ReasonEmpty, "must not be empty"
	case "email":
		e.Reason, e.Message = ReasonNotEmail, "not a valid email address"
	case "ascii", "printascii":
		e.Reason, e.Message = ReasonNotASCII, "contains non-ascii characters"
	case "has_letter":
		e.Reason, e.Message = ReasonNoLetter, "does not contain a letter"
	case "has_digit":
		e.Reason, e.Message = ReasonNoDigit, "does not contain a digit"
	case "has_special":
		e.Reason, e.Message = ReasonNoSpecial, "does not contain a special character"
	default:
		e.Reason, e.Message = Reason(fe.Tag()), "failed on "+fe.Tag()
	}

	return e
}
