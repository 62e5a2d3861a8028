// Package validation implements the client-side rule engine applied to every
// form before a network call is made. Rule sets are plain data: a mapping
// from field path to an ordered predicate list, evaluated by a single
// function. Validation is pure and reentrant; the same input always yields
// the same result.
package validation

import (
	"encoding/json"
	"fmt"

	"github.com/AllStackDev1/oja-client/domain"
)

// Rule is a single predicate plus the stable user-facing message reported
// when it fails. Predicates receive the field's own value and the flattened
// document, the latter only for cross-field rules like password
// confirmation.
type Rule struct {
	Check   func(value interface{}, doc map[string]interface{}) bool
	Message string
}

// RuleSet maps field paths ("bank.name", "debit.accountNumber") to the rules
// applied in order. The first failing rule's message is recorded for the
// field and evaluation of that field stops.
type RuleSet map[string][]Rule

// Result is the outcome of evaluating a rule set against form values.
type Result struct {
	IsValid bool
	Errors  map[string]string
}

// Err converts an invalid result into a *domain.ValidationError; a valid
// result yields nil.
func (r Result) Err() error {
	if r.IsValid {
		return nil
	}
	return &domain.ValidationError{Fields: r.Errors}
}

// Validate evaluates the named rule set. The values argument is any
// JSON-marshalable form: a struct, a map, or a pointer to either.
func Validate(name string, values interface{}) (Result, error) {
	rs, ok := registry[name]
	if !ok {
		return Result{}, fmt.Errorf("unknown rule set %q", name)
	}
	return rs.Validate(values), nil
}

// Validate evaluates the rule set against the given form values.
func (rs RuleSet) Validate(values interface{}) Result {
	doc := flatten(values)

	errs := make(map[string]string)
	for path, rules := range rs {
		value := doc[path]
		for _, rule := range rules {
			if !rule.Check(value, doc) {
				errs[path] = rule.Message
				break
			}
		}
	}

	return Result{IsValid: len(errs) == 0, Errors: errs}
}

// flatten reduces a form document to dotted field paths. Absent fields are
// simply missing from the result, which predicates observe as a nil value.
func flatten(values interface{}) map[string]interface{} {
	out := make(map[string]interface{})

	doc, ok := values.(map[string]interface{})
	if !ok {
		raw, err := json.Marshal(values)
		if err != nil {
			return out
		}
		if err := json.Unmarshal(raw, &doc); err != nil {
			return out
		}
	}

	walk("", doc, out)
	return out
}

func walk(prefix string, doc map[string]interface{}, out map[string]interface{}) {
	for key, value := range doc {
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		if nested, ok := value.(map[string]interface{}); ok {
			walk(path, nested, out)
			continue
		}
		out[path] = value
	}
}

// prefixed rewrites every field path of a rule set under a parent path, used
// to embed the account-details rules under a deal's debit and credit legs.
func prefixed(prefix string, rs RuleSet) RuleSet {
	out := make(RuleSet, len(rs))
	for path, rules := range rs {
		out[prefix+"."+path] = rules
	}
	return out
}

// merge combines rule sets; later sets win on path collisions.
func merge(sets ...RuleSet) RuleSet {
	out := make(RuleSet)
	for _, rs := range sets {
		for path, rules := range rs {
			out[path] = rules
		}
	}
	return out
}
