// Package translate formats user visible messages for the simulator.
//
// Messages are written as en-US Sprintf() formats. The printer language is
// taken from PINEAPPLE_LANG when set, otherwise from the host locale.
package translate

import (
	"log"
	"os"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LANG_ENV names the environment variable that overrides the host locale.
const LANG_ENV = "PINEAPPLE_LANG"

var printer *message.Printer

func init() {
	printer = NewPrinter(Locales()...)
}

// Locales returns the preferred locales, most preferred first.
func Locales() (locales []string) {
	if lang, ok := os.LookupEnv(LANG_ENV); ok && len(lang) != 0 {
		return []string{lang}
	}

	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("pineapple: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	return
}

// NewPrinter creates a message printer for the best match of locales.
func NewPrinter(locales ...string) *message.Printer {
	if len(locales) == 0 {
		return message.NewPrinter(language.AmericanEnglish)
	}

	return message.NewPrinter(message.MatchLanguage(locales...))
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer.Sprintf(key, args...)
}
