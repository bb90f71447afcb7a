package language

import (
	"strings"

	xlanguage "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

var englishNames = display.English.Languages()

// Label returns the English display name for a BCP 47 corpus code such as
// "en" or "pt-BR". Codes that are not valid tags get an empty label.
func Label(code string) string {
	code = strings.TrimSpace(code)
	if code == "" {
		return ""
	}
	tag, err := xlanguage.Parse(code)
	if err != nil {
		return ""
	}
	return englishNames.Name(tag)
}
