package i18n

import (
	"embed"
	"errors"
	"fmt"
	"path"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	domainErrors "github.com/ghreadme/ghreadme/internal/errors"
)

//go:embed locales/active.*.toml
var embeddedLocales embed.FS

// Language is a selectable UI language.
type Language struct {
	Code string
	Name string
}

var availableLanguages = []Language{
	{Code: "en", Name: "English"},
	{Code: "fr", Name: "Français"},
	{Code: "es", Name: "Español"},
}

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
	lang     string
}

// NewTranslations builds the message bundle from the embedded language files
// and, when localesDir is set, from every active.<lang>.toml found there.
// Files from localesDir override embedded messages with the same ID.
func NewTranslations(defaultLang, localesDir string) (*Translations, error) {
	if defaultLang == "" {
		return nil, errors.New("default language cannot be empty")
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	entries, err := embeddedLocales.ReadDir("locales")
	if err != nil {
		return nil, domainErrors.ErrLocaleLoad.WithError(err)
	}
	for _, entry := range entries {
		name := path.Join("locales", entry.Name())
		data, err := embeddedLocales.ReadFile(name)
		if err != nil {
			return nil, domainErrors.ErrLocaleLoad.WithError(err).WithContext("path", name)
		}
		if _, err := bundle.ParseMessageFileBytes(data, name); err != nil {
			return nil, domainErrors.ErrLocaleLoad.WithError(err).WithContext("path", name)
		}
	}

	if localesDir != "" {
		files, err := filepath.Glob(filepath.Join(localesDir, "active.*.toml"))
		if err != nil {
			return nil, fmt.Errorf("error reading locales: %w", err)
		}

		for _, file := range files {
			if _, err := bundle.LoadMessageFile(file); err != nil {
				return nil, domainErrors.ErrLocaleLoad.WithError(err).WithContext("path", file)
			}
		}
	}

	t := &Translations{bundle: bundle}
	if err := t.SetLanguage(defaultLang); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		if tag.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang, language.English.String())
			t.lang = lang
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

// Language returns the code of the active language.
func (t *Translations) Language() string {
	return t.lang
}

// GetMessage localizes messageID in the active language. Messages missing from
// the active language fall back to English; a message missing everywhere
// yields its ID.
func (t *Translations) GetMessage(messageID string, count int, templateData map[string]interface{}) string {
	cfg := &i18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: templateData,
	}
	if count > 0 {
		cfg.PluralCount = count
	}

	localized, err := t.localize.Localize(cfg)
	if err != nil || localized == "" {
		return messageID
	}
	return localized
}

// AvailableLanguages returns the selectable languages in display order.
func AvailableLanguages() []Language {
	languages := make([]Language, len(availableLanguages))
	copy(languages, availableLanguages)
	return languages
}

// LanguageName returns the display name of code, or code itself when unknown.
func LanguageName(code string) string {
	for _, l := range availableLanguages {
		if l.Code == code {
			return l.Name
		}
	}
	return code
}
