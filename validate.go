package regcheck

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/reoring/regcheck/rules"
)

// Rule identifiers. They key localized messages and never change with the
// English text.
const (
	RuleNameAlphabetic      = "name.alphabetic"
	RuleNameMinLength       = "name.min_length"
	RuleAgeRange            = "age.range"
	RuleEmploymentAge       = "user.employment_age"
	RuleEmailFormat         = "email.format"
	RuleCityMinLength       = "address.city.min_length"
	RuleStreetMinLength     = "address.street.min_length"
	RuleHouseNumberPositive = "address.house_number.positive"
)

// Limits of the registration rules.
const (
	MinNameLength   = 2
	MinAge          = 0
	MaxAge          = 120
	AdultAge        = 18
	MinCityLength   = 2
	MinStreetLength = 3
)

// validate is configured once here and only read afterwards.
var validate = validator.New()

// Name must be letters only. Spaces, hyphens and apostrophes are rejected
// ("Mary Jane", "Anne-Marie"); see DESIGN.md before relaxing this.
var nameChecks = []rules.Check[string]{
	{
		Rule: RuleNameAlphabetic, Code: CodePattern,
		Message: "Name must contain only alphabetic characters",
		OK:      rules.Tag[string](validate, "alphaunicode"),
	},
	{
		Rule: RuleNameMinLength, Code: CodeTooShort,
		Message: "Name must be at least 2 characters long",
		Params:  map[string]any{"min": MinNameLength},
		OK:      rules.Tag[string](validate, "min=2"),
	},
}

var ageCheck = rules.Check[int]{
	Rule: RuleAgeRange, Code: CodeDomainRange,
	Message: "Age must be between 0 and 120",
	Params:  map[string]any{"min": MinAge, "max": MaxAge},
	OK:      rules.Tag[int](validate, "gte=0,lte=120"),
}

// employmentRule reads age from the same candidate, whether or not age passed
// its own range check.
var employmentRule = rules.If(func(u User) bool { return u.Age < AdultAge }).Then(
	rules.Field(keyIsEmployed, func(u User) bool { return u.IsEmployed }, rules.Check[bool]{
		Rule: RuleEmploymentAge, Code: CodeBusinessRule,
		Message: "User cannot be employed if under 18 years old",
		Params:  map[string]any{"min_age": AdultAge},
		OK:      func(employed bool) bool { return !employed },
	}),
)

var emailCheck = rules.Check[string]{
	Rule: RuleEmailFormat, Code: CodeInvalidFormat,
	Message: "Email must be a valid email address",
	OK:      rules.Both(rules.Tag[string](validate, "email"), hasDomainSeparator),
}

var addressRules = rules.All(
	rules.Field(keyCity, func(a Address) string { return a.City }, rules.Check[string]{
		Rule: RuleCityMinLength, Code: CodeTooShort,
		Message: "City name must be at least 2 characters long",
		Params:  map[string]any{"min": MinCityLength},
		OK:      rules.Tag[string](validate, "min=2"),
	}),
	rules.Field(keyStreet, func(a Address) string { return a.Street }, rules.Check[string]{
		Rule: RuleStreetMinLength, Code: CodeTooShort,
		Message: "Street name must be at least 3 characters long",
		Params:  map[string]any{"min": MinStreetLength},
		OK:      rules.Tag[string](validate, "min=3"),
	}),
	rules.Field(keyHouseNumber, func(a Address) int { return a.HouseNumber }, rules.Check[int]{
		Rule: RuleHouseNumberPositive, Code: CodeTooSmall,
		Message: "House number must be positive",
		Params:  map[string]any{"min": 1},
		OK:      rules.Tag[int](validate, "gt=0"),
	}),
)

// userRules is the evaluation order of the report.
var userRules = rules.All(
	rules.Field(keyName, func(u User) string { return u.Name }, nameChecks...),
	rules.Field(keyAge, func(u User) int { return u.Age }, ageCheck),
	employmentRule,
	rules.Field(keyEmail, func(u User) string { return u.Email }, emailCheck),
	rules.Nested(keyAddress, func(u User) Address { return u.Address }, addressRules),
)

// Check is the rule pass. It runs every rule against u and returns nil or
// the Issues of every violated rule, in evaluation order.
func Check(u User) error {
	vs := userRules(u)
	if len(vs) == 0 {
		return nil
	}
	iss := make(Issues, 0, len(vs))
	for _, v := range vs {
		iss = append(iss, Issue{Path: v.Path, Code: v.Code, Message: v.Message, Rule: v.Rule, Params: v.Params})
	}
	return iss
}

// Validate returns u unchanged when it satisfies every rule.
func Validate(u User) (User, error) {
	if err := Check(u); err != nil {
		return User{}, err
	}
	return u, nil
}

// hasDomainSeparator requires a dot inside the domain part, so "a@localhost"
// is rejected.
func hasDomainSeparator(s string) bool {
	at := strings.LastIndexByte(s, '@')
	if at <= 0 {
		return false
	}
	domain := s[at+1:]
	return strings.Contains(domain, ".") && !strings.HasPrefix(domain, ".") && !strings.HasSuffix(domain, ".")
}
