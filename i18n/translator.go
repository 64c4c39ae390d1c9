package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Translator retrieves localized messages for rule violations. rule is the
// rule identifier (empty for structural issues), code the issue code; params
// carries values to embed (for example "expected" or "got"). An empty result
// means "no translation", and callers keep their original message.
type Translator interface {
	Message(rule, code string, params map[string]string) string
	Lang() string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Lang() string { return t.lang }

func (t dictTranslator) Message(rule, code string, params map[string]string) string {
	d := dicts[t.lang]
	if msg, ok := d.rules[rule]; ok && rule != "" {
		return expand(msg, params)
	}
	if msg, ok := d.codes[code]; ok {
		return expand(msg, params)
	}
	return ""
}

type dict struct {
	rules map[string]string
	codes map[string]string
}

var dicts = map[string]dict{
	"en": {
		rules: map[string]string{
			"name.alphabetic":               "Name must contain only alphabetic characters",
			"name.min_length":               "Name must be at least {min} characters long",
			"age.range":                     "Age must be between {min} and {max}",
			"user.employment_age":           "User cannot be employed if under {min_age} years old",
			"email.format":                  "Email must be a valid email address",
			"address.city.min_length":       "City name must be at least {min} characters long",
			"address.street.min_length":     "Street name must be at least {min} characters long",
			"address.house_number.positive": "House number must be positive",
		},
		codes: map[string]string{
			"required":      "field required",
			"invalid_type":  "expected {expected}, got {got}",
			"unknown_key":   "unknown field",
			"overflow":      "integer out of range",
			"duplicate_key": "duplicate key",
			"parse_error":   "parse error",
			"truncated":     "max bytes exceeded",
		},
	},
	"ru": {
		rules: map[string]string{
			"name.alphabetic":               "Имя должно содержать только буквы",
			"name.min_length":               "Имя должно содержать не менее {min} символов",
			"age.range":                     "Возраст должен быть от {min} до {max}",
			"user.employment_age":           "Пользователь младше {min_age} лет не может быть трудоустроен",
			"email.format":                  "Некорректный адрес электронной почты",
			"address.city.min_length":       "Название города должно содержать не менее {min} символов",
			"address.street.min_length":     "Название улицы должно содержать не менее {min} символов",
			"address.house_number.positive": "Номер дома должен быть положительным",
		},
		codes: map[string]string{
			"required":      "обязательное поле отсутствует",
			"invalid_type":  "неверный тип: ожидается {expected}, получено {got}",
			"unknown_key":   "неизвестное поле",
			"overflow":      "целое число вне допустимого диапазона",
			"duplicate_key": "ключ повторяется",
			"parse_error":   "ошибка разбора",
			"truncated":     "превышен допустимый размер",
		},
	},
}

// expand substitutes {name} placeholders. Placeholders without a value are
// left as written.
func expand(msg string, params map[string]string) string {
	if len(params) == 0 || !strings.Contains(msg, "{") {
		return msg
	}
	pairs := make([]string, 0, 2*len(params))
	for k, v := range params {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}

var supported = []language.Tag{language.English, language.Russian}

var matcher = language.NewMatcher(supported)

// English returns the default Translator.
func English() Translator { return dictTranslator{lang: "en"} }

// For picks the best built-in Translator for an Accept-Language style value
// ("ru-RU,ru;q=0.9,en;q=0.8", "ru", ""). Unsupported or empty input falls
// back to English.
func For(accept string) Translator {
	// The first supported tag is the matcher's default.
	_, idx := language.MatchStrings(matcher, accept)
	if idx < 0 || idx >= len(supported) {
		return English()
	}
	base, _ := supported[idx].Base()
	return dictTranslator{lang: base.String()}
}
