package config

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"

	domainErrors "github.com/ghreadme/ghreadme/internal/errors"
)

const (
	settingsDirName  = ".ghreadme"
	settingsFileName = "settings.json"

	// MaxUsernameHistory bounds the number of remembered usernames.
	MaxUsernameHistory = 10
)

type (
	// Settings is the single process-wide settings object. It is loaded at
	// startup and saved in full after every mutation.
	Settings struct {
		Username        string                `json:"username"`
		UsernameHistory []string              `json:"username_history"`
		Token           string                `json:"-"`
		Theme           Theme                 `json:"theme"`
		Language        string                `json:"language"`
		UserConfigs     map[string]UserConfig `json:"user_configs"`

		PathFile string `json:"-"`
	}

	// UserConfig holds what is stored per GitHub username.
	UserConfig struct {
		Comments map[string]string `json:"comments"`
	}

	// fileSettings is the on-disk shape; the token is base64 encoded.
	fileSettings struct {
		Settings
		EncodedToken string `json:"token"`
	}
)

// DefaultPath returns the settings file location under the user's home directory.
func DefaultPath(homeDir string) string {
	return filepath.Join(homeDir, settingsDirName, settingsFileName)
}

// NewSettings returns default settings bound to path.
func NewSettings(path string) *Settings {
	return &Settings{
		UsernameHistory: []string{},
		Theme:           DefaultTheme,
		Language:        DefaultLanguage,
		UserConfigs:     map[string]UserConfig{},
		PathFile:        path,
	}
}

// LoadSettings reads the settings file at path, creating it with defaults when
// it does not exist. Comments and trailing commas are tolerated.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		return nil, domainErrors.ErrSettingsPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return createDefaultSettings(path)
		}
		return nil, domainErrors.ErrSettingsRead.WithError(err).WithContext("path", path)
	}

	var fs fileSettings
	if err := json.Unmarshal(jsonc.ToJSON(data), &fs); err != nil {
		return nil, domainErrors.ErrSettingsCorrupt.WithError(err).WithContext("path", path)
	}

	settings := fs.Settings
	settings.PathFile = path
	if fs.EncodedToken != "" {
		token, err := base64.StdEncoding.DecodeString(fs.EncodedToken)
		if err != nil {
			slog.Warn("discarding undecodable token from settings", "path", path, "error", err)
		} else {
			settings.Token = string(token)
		}
	}
	settings.normalize()

	return &settings, nil
}

func createDefaultSettings(path string) (*Settings, error) {
	settings := NewSettings(path)
	if err := SaveSettings(settings); err != nil {
		return nil, err
	}
	return settings, nil
}

// SaveSettings overwrites the settings file with the full state of s.
func SaveSettings(s *Settings) error {
	if err := validateSettings(s); err != nil {
		return err
	}

	if s.PathFile == "" {
		return domainErrors.ErrSettingsPath
	}

	fs := fileSettings{
		Settings:     *s,
		EncodedToken: base64.StdEncoding.EncodeToString([]byte(s.Token)),
	}
	if s.Token == "" {
		fs.EncodedToken = ""
	}

	data, err := json.MarshalIndent(fs, "", "  ")
	if err != nil {
		return domainErrors.ErrSettingsWrite.WithError(err)
	}

	if err := os.MkdirAll(filepath.Dir(s.PathFile), 0o755); err != nil {
		return domainErrors.ErrSettingsWrite.WithError(err).WithContext("path", s.PathFile)
	}

	if err := os.WriteFile(s.PathFile, data, 0o600); err != nil {
		return domainErrors.ErrSettingsWrite.WithError(err).WithContext("path", s.PathFile)
	}

	return nil
}

func validateSettings(s *Settings) error {
	if !IsValidTheme(string(s.Theme)) {
		return domainErrors.ErrInvalidTheme.WithContext("theme", s.Theme)
	}
	if !IsValidLanguage(s.Language) {
		return domainErrors.ErrInvalidLanguage.WithContext("language", s.Language)
	}
	if len(s.UsernameHistory) > MaxUsernameHistory {
		return fmt.Errorf("username history holds %d entries, max is %d", len(s.UsernameHistory), MaxUsernameHistory)
	}
	return nil
}

// normalize repairs values a hand-edited file may carry so the enumerated
// fields always hold a supported value.
func (s *Settings) normalize() {
	if !IsValidTheme(string(s.Theme)) {
		if s.Theme != "" {
			slog.Warn("unsupported theme in settings, using default", "theme", s.Theme, "default", DefaultTheme)
		}
		s.Theme = DefaultTheme
	}
	if !IsValidLanguage(s.Language) {
		if s.Language != "" {
			slog.Warn("unsupported language in settings, using default", "language", s.Language, "default", DefaultLanguage)
		}
		s.Language = DefaultLanguage
	}

	history := make([]string, 0, len(s.UsernameHistory))
	seen := make(map[string]bool, len(s.UsernameHistory))
	for _, name := range s.UsernameHistory {
		name = strings.TrimSpace(name)
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		history = append(history, name)
	}
	if len(history) > MaxUsernameHistory {
		history = history[:MaxUsernameHistory]
	}
	s.UsernameHistory = history

	if s.UserConfigs == nil {
		s.UserConfigs = map[string]UserConfig{}
	}
	for name, uc := range s.UserConfigs {
		if uc.Comments == nil {
			uc.Comments = map[string]string{}
			s.UserConfigs[name] = uc
		}
	}
}

// ResolveToken picks the token to use: flag first, then the stored token,
// then $GITHUB_TOKEN.
func (s *Settings) ResolveToken(flag string) string {
	if token := strings.TrimSpace(flag); token != "" {
		return token
	}
	if s.Token != "" {
		return s.Token
	}
	return strings.TrimSpace(os.Getenv("GITHUB_TOKEN"))
}

// RecordUsername makes name the current username and moves it to the head of
// the history.
func (s *Settings) RecordUsername(name string) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}

	history := make([]string, 0, len(s.UsernameHistory)+1)
	history = append(history, name)
	for _, existing := range s.UsernameHistory {
		if existing != name {
			history = append(history, existing)
		}
	}
	if len(history) > MaxUsernameHistory {
		history = history[:MaxUsernameHistory]
	}

	s.Username = name
	s.UsernameHistory = history
}

// SetTheme changes the theme. Unknown themes are rejected.
func (s *Settings) SetTheme(theme string) error {
	if !IsValidTheme(theme) {
		return domainErrors.ErrInvalidTheme.WithContext("theme", theme)
	}
	s.Theme = Theme(theme)
	return nil
}

// ToggleTheme flips between light and dark and returns the new theme.
func (s *Settings) ToggleTheme() Theme {
	s.Theme = s.Theme.Toggle()
	return s.Theme
}

// SetLanguage changes the language. Unknown languages are rejected.
func (s *Settings) SetLanguage(lang string) error {
	if !IsValidLanguage(lang) {
		return domainErrors.ErrInvalidLanguage.WithContext("language", lang)
	}
	s.Language = lang
	return nil
}

// Comments returns a copy of the comments stored for username, keyed by repository.
func (s *Settings) Comments(username string) map[string]string {
	comments := make(map[string]string)
	for repo, text := range s.UserConfigs[username].Comments {
		comments[repo] = text
	}
	return comments
}

// SetComment stores text for (username, repo). Blank text removes the comment.
func (s *Settings) SetComment(username, repo, text string) {
	text = strings.TrimSpace(text)
	if text == "" {
		s.DeleteComment(username, repo)
		return
	}

	if s.UserConfigs == nil {
		s.UserConfigs = map[string]UserConfig{}
	}
	uc := s.UserConfigs[username]
	if uc.Comments == nil {
		uc.Comments = map[string]string{}
	}
	uc.Comments[repo] = text
	s.UserConfigs[username] = uc
}

// DeleteComment removes the comment for (username, repo) and reports whether one existed.
func (s *Settings) DeleteComment(username, repo string) bool {
	uc, ok := s.UserConfigs[username]
	if !ok {
		return false
	}
	if _, ok := uc.Comments[repo]; !ok {
		return false
	}
	delete(uc.Comments, repo)
	s.UserConfigs[username] = uc
	return true
}
