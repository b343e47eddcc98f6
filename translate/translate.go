// Package translate renders user-facing messages in the user's language.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = sync.OnceValue(func() *message.Printer {
	return message.NewPrinter(Language())
})

// Language returns the best match for the user's locales, or en-US.
func Language() language.Tag {
	locales, err := locale.GetLocales()
	if err != nil {
		log.Printf("sigma16: locale: %v", err)
	}

	if len(locales) == 0 {
		locales = []string{"en-US"}
	}

	return message.MatchLanguage(locales...)
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return printer().Sprintf(key, args...)
}
