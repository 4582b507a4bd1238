package middlewares

import (
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/text/language"

	"mergington.dev/activities/internal/util/i18n"
)

// InjectI18n picks the validation message translator from the Accept-Language header.
func InjectI18n() fiber.Handler {
	return func(c *fiber.Ctx) error {
		set := func(trans ut.Translator) error {
			c.Locals("T", trans)
			return c.Next()
		}

		tags, _, err := language.ParseAcceptLanguage(c.Get(fiber.HeaderAcceptLanguage))
		if err != nil || len(tags) == 0 {
			return set(i18n.UT.GetFallback())
		}

		langs := make([]string, 0, len(tags))
		for _, tag := range tags {
			base, _ := tag.Base()
			langs = append(langs, strings.ToLower(base.String()))
		}

		trans, _ := i18n.UT.FindTranslator(langs...)

		return set(trans)
	}
}
