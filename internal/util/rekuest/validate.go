package rekuest

import (
	"reflect"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	esTranslations "github.com/go-playground/validator/v10/translations/es"
	zhTranslations "github.com/go-playground/validator/v10/translations/zh"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"mergington.dev/activities/internal/pkg/apierr"
	"mergington.dev/activities/internal/util/i18n"
)

var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report fields by the name the client used
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		for _, tag := range []string{"query", "params", "json"} {
			name := strings.SplitN(field.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return field.Name
	})
	return v
}

func init() {
	registrations := map[string]func(*validator.Validate, ut.Translator) error{
		"en": enTranslations.RegisterDefaultTranslations,
		"es": esTranslations.RegisterDefaultTranslations,
		"zh": zhTranslations.RegisterDefaultTranslations,
	}

	for locale, register := range registrations {
		tr, _ := i18n.UT.GetTranslator(locale)
		if err := register(Validate, tr); err != nil {
			log.Warn().Err(err).Str("locale", locale).Msg("could not register translation")
		}
	}
}

type ErrorResponse struct {
	Field     string `json:"field,omitempty"`
	Violation string `json:"violation"`
	Message   string `json:"message"`
}

// TranslatorFromCtx returns the translator InjectI18n stored on the request, or the fallback one.
func TranslatorFromCtx(ctx *fiber.Ctx) ut.Translator {
	if tr, ok := ctx.Locals("T").(ut.Translator); ok {
		return tr
	}
	return i18n.UT.GetFallback()
}

func translate(utt ut.Translator, ve validator.ValidationErrors) []*ErrorResponse {
	trans := make([]*ErrorResponse, 0, len(ve))

	for _, fe := range ve {
		field := fe.Namespace()
		// drop the struct name prefix, as in "rosterRequest.email"
		if i := strings.IndexByte(field, '.'); i >= 0 {
			field = field[i+1:]
		}
		trans = append(trans, &ErrorResponse{
			Field:     field,
			Violation: fe.Tag(),
			Message:   fe.Translate(utt),
		})
	}

	return trans
}

func validate(ctx *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}
	errs, ok := err.(validator.ValidationErrors)
	if !ok {
		return apierr.ErrInvalidReq.Msg("invalid request: %s", err)
	}
	return apierr.NewInvalidViolations(translate(TranslatorFromCtx(ctx), errs))
}

// ValidQuery parses the query string into dest and validates it. dest shall always be a pointer.
func ValidQuery(ctx *fiber.Ctx, dest any) error {
	if err := ctx.QueryParser(dest); err != nil {
		return apierr.ErrInvalidReq.Msg("invalid request: %s", err)
	}

	return ValidStruct(ctx, dest)
}

// ValidParams parses the route parameters into dest and validates it. dest shall always be a pointer.
func ValidParams(ctx *fiber.Ctx, dest any) error {
	if err := ctx.ParamsParser(dest); err != nil {
		return apierr.ErrInvalidReq.Msg("invalid request: %s", err)
	}

	return ValidStruct(ctx, dest)
}

func ValidStruct(ctx *fiber.Ctx, dest any) error {
	return validate(ctx, Validate.Struct(dest))
}

