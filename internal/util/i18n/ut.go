package i18n

import (
	ut "github.com/go-playground/universal-translator"

	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/es"
	"github.com/go-playground/locales/zh"
)

// UT holds the locales validation messages are translated to. English is the fallback.
var UT = ut.New(en.New(), es.New(), zh.New())
