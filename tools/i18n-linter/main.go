// Copyright (c) 2026 Twofa Team
// Twofa - two-factor token entry
// This source code is licensed under the MIT license found in the LICENSE file.

// i18n-linter checks the embedded locale files against the Go sources.
// It reports keys used in code but missing from the primary locale, keys a
// secondary locale does not translate, and orphaned keys nothing uses.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

const primaryLocale = "active.en.yaml"

// keyPattern matches i18n.T("some.key") calls and bare literals that look
// like nested message ids (e.g. in a slice of keys). Bare literals need two
// dots so file names such as "twofa.yaml" are not taken for keys.
var keyPattern = regexp.MustCompile(`i18n\.T\("([^"]+)"|"((?:twofa|cli)\.[a-z_]+\.[a-z_.]+)"`)

// report is the result of one lint run.
type report struct {
	Undefined map[string][]string // used in code, absent from the primary locale
	Missing   map[string][]string // locale file -> keys it lacks
	Orphaned  []string
}

func (r report) failed(strict bool) bool {
	if len(r.Undefined) > 0 || len(r.Missing) > 0 {
		return true
	}
	return strict && len(r.Orphaned) > 0
}

func main() {
	root := flag.String("root", ".", "module root to scan")
	locales := flag.String("locales", "internal/i18n/locales", "directory holding active.*.yaml")
	strict := flag.Bool("strict", false, "treat orphaned keys as errors")
	flag.Parse()

	logger := log.NewWithOptions(os.Stderr, log.Options{Prefix: "i18n-linter"})

	r, err := lint(*root, *locales)
	if err != nil {
		logger.Fatal("lint failed", "err", err)
	}

	for _, key := range sortedKeys(r.Undefined) {
		logger.Error("undefined key", "key", key, "at", r.Undefined[key][0])
	}
	for _, file := range sortedKeys(r.Missing) {
		for _, key := range r.Missing[file] {
			logger.Error("missing translation", "locale", file, "key", key)
		}
	}
	for _, key := range r.Orphaned {
		logger.Warn("orphaned key", "key", key)
	}

	if r.failed(*strict) {
		os.Exit(1)
	}
	logger.Info("locale files are consistent")
}

// lint scans root for used keys and compares them with the locale files in
// localesDir.
func lint(root, localesDir string) (report, error) {
	r := report{Undefined: map[string][]string{}, Missing: map[string][]string{}}

	used, err := findUsedKeys(root)
	if err != nil {
		return r, fmt.Errorf("scan sources: %w", err)
	}
	primary, err := loadKeysFromLocale(filepath.Join(localesDir, primaryLocale))
	if err != nil {
		return r, fmt.Errorf("load primary locale: %w", err)
	}

	for key, locs := range used {
		if _, ok := primary[key]; !ok {
			r.Undefined[key] = locs
		}
	}
	for key := range primary {
		if _, ok := used[key]; !ok {
			r.Orphaned = append(r.Orphaned, key)
		}
	}
	sort.Strings(r.Orphaned)

	files, err := filepath.Glob(filepath.Join(localesDir, "active.*.yaml"))
	if err != nil {
		return r, err
	}
	for _, file := range files {
		if filepath.Base(file) == primaryLocale {
			continue
		}
		keys, err := loadKeysFromLocale(file)
		if err != nil {
			return r, fmt.Errorf("load %s: %w", file, err)
		}
		var missing []string
		for key := range primary {
			if _, ok := keys[key]; !ok {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			sort.Strings(missing)
			r.Missing[filepath.Base(file)] = missing
		}
	}
	return r, nil
}

// findUsedKeys returns every message id referenced by non-test Go files,
// with the file:line positions it appears at.
func findUsedKeys(root string) (map[string][]string, error) {
	keys := make(map[string][]string)
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			name := info.Name()
			if path != root && (name == "tools" || strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		for i, line := range strings.Split(string(content), "\n") {
			for _, m := range keyPattern.FindAllStringSubmatch(line, -1) {
				key := m[1]
				if key == "" {
					key = m[2]
				}
				keys[key] = append(keys[key], fmt.Sprintf("%s:%d", path, i+1))
			}
		}
		return nil
	})
	return keys, err
}

// loadKeysFromLocale reads a locale file and returns its message ids.
// go-i18n accepts both flat dotted ids and nested maps, so nested maps are
// flattened with dots.
func loadKeysFromLocale(path string) (map[string]struct{}, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := yaml.Unmarshal(content, &data); err != nil {
		return nil, err
	}
	keys := make(map[string]struct{})
	flattenYAML("", data, keys)
	return keys, nil
}

func flattenYAML(prefix string, node any, keys map[string]struct{}) {
	switch v := node.(type) {
	case map[string]any:
		for k, val := range v {
			next := k
			if prefix != "" {
				next = prefix + "." + k
			}
			flattenYAML(next, val, keys)
		}
	default:
		if prefix != "" {
			keys[prefix] = struct{}{}
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
