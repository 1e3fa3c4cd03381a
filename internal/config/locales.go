package config

// Theme is the preview color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"

	DefaultTheme = ThemeLight
)

const (
	LangEN = "en"
	LangFR = "fr"
	LangES = "es"

	DefaultLanguage = LangEN
)

// SupportedLanguages lists the language codes in display order.
var SupportedLanguages = []string{LangEN, LangFR, LangES}

// SupportedThemes lists the themes in display order.
var SupportedThemes = []Theme{ThemeLight, ThemeDark}

// Toggle returns the opposite theme.
func (t Theme) Toggle() Theme {
	if t == ThemeDark {
		return ThemeLight
	}
	return ThemeDark
}

func IsValidTheme(theme string) bool {
	for _, t := range SupportedThemes {
		if string(t) == theme {
			return true
		}
	}
	return false
}

func IsValidLanguage(lang string) bool {
	for _, l := range SupportedLanguages {
		if l == lang {
			return true
		}
	}
	return false
}

// NextLanguage returns the language following lang in SupportedLanguages, wrapping around.
func NextLanguage(lang string) string {
	for i, l := range SupportedLanguages {
		if l == lang {
			return SupportedLanguages[(i+1)%len(SupportedLanguages)]
		}
	}
	return DefaultLanguage
}
