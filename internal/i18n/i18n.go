// Copyright (c) 2026 Twofa Team
// Twofa - two-factor token entry
// This source code is licensed under the MIT license found in the LICENSE file.

// package i18n provides internationalization and localization support for Twofa.
// It uses the go-i18n library to load and manage translation files, allowing the
// entry form and the CLI to be displayed in multiple languages.
package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"gopkg.in/yaml.v3"
)

// localeFS embeds the YAML translation files from the 'locales' directory
// into the application binary.
//
//go:embed locales/*.yaml
var localeFS embed.FS

// bundle stores all the loaded translation messages from the locale files.
var bundle *i18n.Bundle

// localizer is used to translate messages into a specific language.
var localizer *i18n.Localizer

var currentLang string

// Init initializes the i18n bundle and sets up the localizer for a specific language.
// It parses all embedded YAML files from the 'locales' directory.
func Init(lang string) {
	bundle = i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)

	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		data, _ := localeFS.ReadFile("locales/" + f.Name())
		_, _ = bundle.ParseMessageFileBytes(data, f.Name())
	}

	currentLang = lang
	localizer = i18n.NewLocalizer(bundle, lang)
}

// T translates a message by its ID.
//
// A single map argument is passed to go-i18n as template data; any other
// arguments are applied to the translated text with fmt.Sprintf.
// If the i18n system has not been initialized, it will default to English.
// If a translation for the given ID is not found, it returns the ID itself.
func T(messageID string, args ...any) string {
	if localizer == nil {
		Init("en")
	}

	cfg := &i18n.LocalizeConfig{MessageID: messageID}
	if len(args) == 1 {
		if data, ok := args[0].(map[string]any); ok {
			cfg.TemplateData = data
			args = nil
		}
	}

	msg, err := localizer.Localize(cfg)
	if err != nil {
		// go-i18n errors when the ID is unknown; fall back to the ID.
		return messageID
	}
	if len(args) > 0 {
		return fmt.Sprintf(msg, args...)
	}
	return msg
}

// SetLang changes the active language of the localizer.
func SetLang(lang string) {
	Init(lang)
}

// GetLang returns the language passed to the last Init/SetLang call.
func GetLang() string {
	return currentLang
}

// GetAvailableLocales maps the language tag of every embedded locale file to
// a display name in that language.
func GetAvailableLocales() map[string]string {
	out := make(map[string]string)
	files, _ := fs.ReadDir(localeFS, "locales")
	for _, f := range files {
		name := strings.TrimSuffix(strings.TrimPrefix(f.Name(), "active."), ".yaml")
		tag, err := language.Parse(name)
		if err != nil {
			continue
		}
		out[name] = display.Self.Name(tag)
	}
	return out
}

// SortedLocales returns the keys of GetAvailableLocales in stable order.
func SortedLocales() []string {
	av := GetAvailableLocales()
	keys := make([]string, 0, len(av))
	for k := range av {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
