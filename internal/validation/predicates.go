package validation

import (
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// checker backs the format predicates. The library is the same one gin's
// binding layer uses, so tag semantics match the rest of the ecosystem:
// "email" for addresses, "bic" for SWIFT codes, "e164" for mobile numbers,
// "number" for digit-only strings.
var checker = validator.New()

const specialChars = "#?!@$%^&*-"

func asString(value interface{}) (string, bool) {
	s, ok := value.(string)
	return s, ok
}

// required fails on absent values and on empty or blank strings.
func required(message string) Rule {
	return Rule{
		Message: message,
		Check: func(value interface{}, _ map[string]interface{}) bool {
			if value == nil {
				return false
			}
			if s, ok := asString(value); ok {
				return strings.TrimSpace(s) != ""
			}
			return true
		},
	}
}

// requiredNumber fails unless the value is a JSON number. No range check is
// applied at this layer; the server owns positivity and maximums.
func requiredNumber(message string) Rule {
	return Rule{
		Message: message,
		Check: func(value interface{}, _ map[string]interface{}) bool {
			_, ok := value.(float64)
			return ok
		},
	}
}

// minLen fails strings shorter than n. Absent values pass; pair with
// required.
func minLen(n int, message string) Rule {
	return Rule{
		Message: message,
		Check: func(value interface{}, _ map[string]interface{}) bool {
			s, ok := asString(value)
			if !ok || s == "" {
				return true
			}
			return len([]rune(s)) >= n
		},
	}
}

// email fails malformed addresses. Absent values pass; pair with required.
func email(message string) Rule {
	return tagRule("email", message)
}

// mobilePhone checks the generic mobile-number shape (international prefix,
// digits only). An empty value passes this predicate by itself; the field is
// separately marked required, so an empty phone number still fails the set
// overall.
func mobilePhone(message string) Rule {
	return tagRule("e164", message)
}

// bic validates a Business Identifier Code. Absent is acceptable.
func bic(message string) Rule {
	return tagRule("bic", message)
}

// digits rejects any string containing a non-digit character, including
// separators, decimal points, and signs. Absent values pass.
func digits(message string) Rule {
	return tagRule("number", message)
}

// digitsRequired is the account-number variant: an empty value fails rather
// than being treated as absent. The asymmetry with swiftCode/routingNumber
// is intentional and preserved from the rule definitions.
func digitsRequired(message string) Rule {
	return Rule{
		Message: message,
		Check: func(value interface{}, _ map[string]interface{}) bool {
			s, ok := asString(value)
			if !ok || s == "" {
				return false
			}
			return checker.Var(s, "number") == nil
		},
	}
}

// tagRule builds a Rule from a validator tag, treating absent or empty
// values as passing.
func tagRule(tag, message string) Rule {
	return Rule{
		Message: message,
		Check: func(value interface{}, _ map[string]interface{}) bool {
			s, ok := asString(value)
			if !ok || s == "" {
				return true
			}
			return checker.Var(s, tag) == nil
		},
	}
}

// password enforces the composition rule as one conjunctive check: minimum 8
// characters with at least one uppercase letter, one lowercase letter, one
// digit and one character from the special set. A failing password surfaces
// exactly one combined message, never itemized deficiencies.
func password(message string) Rule {
	return Rule{
		Message: message,
		Check: func(value interface{}, _ map[string]interface{}) bool {
			s, ok := asString(value)
			if !ok || s == "" {
				return true
			}
			if len([]rune(s)) < 8 {
				return false
			}
			var upper, lower, digit, special bool
			for _, r := range s {
				switch {
				case unicode.IsUpper(r):
					upper = true
				case unicode.IsLower(r):
					lower = true
				case unicode.IsDigit(r):
					digit = true
				}
				if strings.ContainsRune(specialChars, r) {
					special = true
				}
			}
			return upper && lower && digit && special
		},
	}
}

// equalsField fails unless the value matches another field's value in the
// same document.
func equalsField(other, message string) Rule {
	return Rule{
		Message: message,
		Check: func(value interface{}, doc map[string]interface{}) bool {
			return value == doc[other]
		},
	}
}
