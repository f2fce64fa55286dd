package requests

import (
	"errors"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	maxShortText = 200
	maxLongText  = 4000
	maxMaterial  = 200000
)

var injectionPattern = regexp.MustCompile(
	`(?i)(ignore\s+(previous|all|above)|system\s*prompt|you\s+are\s+now|` +
		`forget\s+(everything|all)|new\s+instructions|` +
		`ignora\s+(las\s+|todas\s+las\s+)?instrucciones|olvida\s+todo|` +
		`a\s+partir\s+de\s+ahora\s+eres|nuevas\s+instrucciones)`,
)

var errInjection = errors.New("contiene instrucciones no permitidas")

var required = validation.Required.Error("es obligatorio")

// screened rejects text that tries to rewrite the generation instructions.
var screened = validation.By(func(value any) error {
	s, _ := value.(string)
	if injectionPattern.MatchString(s) {
		return errInjection
	}
	return nil
})

func shortText() []validation.Rule {
	return []validation.Rule{required, validation.RuneLength(1, maxShortText), screened}
}

func longText() []validation.Rule {
	return []validation.Rule{required, validation.RuneLength(1, maxLongText), screened}
}

func optionalText() []validation.Rule {
	return []validation.Rule{validation.RuneLength(0, maxLongText), screened}
}

func materialRules() []validation.Rule {
	return []validation.Rule{validation.RuneLength(0, maxMaterial), screened}
}

func trimAll(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
