package segment

import (
	"fmt"
	"sort"
	"strings"
)

// PlatformOther is the sentinel platform used when a caller does not name one.
const PlatformOther = "other"

// NormalizeKey lowercases a platform or type key. Both maps below are keyed
// with normalized keys only.
func NormalizeKey(key string) string {
	return strings.ToLower(strings.TrimSpace(key))
}

// DisplayConfig holds the display texts of a custom activity type.
type DisplayConfig struct {
	Default string `json:"default"`
	Short   string `json:"short"`
	Channel string `json:"channel"`
}

// ActivityTypeDefinition is the per-type settings blob stored under
// platform -> typeKey.
type ActivityTypeDefinition struct {
	Display        DisplayConfig `json:"display"`
	IsContribution bool          `json:"isContribution"`
}

// NewActivityTypeDefinition builds the default definition for a freshly
// created custom type: both display texts mirror the given name.
func NewActivityTypeDefinition(typeName string) ActivityTypeDefinition {
	return ActivityTypeDefinition{
		Display: DisplayConfig{
			Default: typeName,
			Short:   typeName,
			Channel: "",
		},
		IsContribution: false,
	}
}

// ActivityTypes is the nested custom activity-type configuration of a
// segment, keyed platform -> typeKey. All mutating operations return a deep
// copy; the receiver is never modified in place, which keeps the
// read-modify-write race at the repository level explicit.
type ActivityTypes map[string]map[string]ActivityTypeDefinition

func (t ActivityTypes) Clone() ActivityTypes {
	out := make(ActivityTypes, len(t))
	for platform, types := range t {
		cp := make(map[string]ActivityTypeDefinition, len(types))
		for key, def := range types {
			cp[key] = def
		}
		out[platform] = cp
	}
	return out
}

func (t ActivityTypes) Get(platform, key string) (ActivityTypeDefinition, bool) {
	types, ok := t[platform]
	if !ok {
		return ActivityTypeDefinition{}, false
	}
	def, ok := types[key]
	return def, ok
}

// Insert adds the definition under [platform][key] if absent. The second
// return reports whether an insert happened; an existing key leaves the
// configuration untouched.
func (t ActivityTypes) Insert(platform, key string, def ActivityTypeDefinition) (ActivityTypes, bool) {
	if _, exists := t.Get(platform, key); exists {
		return t, false
	}
	out := t.Clone()
	if out[platform] == nil {
		out[platform] = map[string]ActivityTypeDefinition{}
	}
	out[platform][key] = def
	return out, true
}

// Replace overwrites [platform][key] regardless of presence.
func (t ActivityTypes) Replace(platform, key string, def ActivityTypeDefinition) ActivityTypes {
	out := t.Clone()
	if out[platform] == nil {
		out[platform] = map[string]ActivityTypeDefinition{}
	}
	out[platform][key] = def
	return out
}

// Remove deletes [platform][key]; removing the last key of a platform drops
// the platform entry as well.
func (t ActivityTypes) Remove(platform, key string) ActivityTypes {
	out := t.Clone()
	if types, ok := out[platform]; ok {
		delete(types, key)
		if len(types) == 0 {
			delete(out, platform)
		}
	}
	return out
}

// FlatActivityType is a flattened entry: the definition plus the platform
// that owns it.
type FlatActivityType struct {
	ActivityTypeDefinition
	Platform string
}

// FlatActivityTypes is the flat, globally keyed projection of ActivityTypes.
type FlatActivityTypes map[string]FlatActivityType

// DuplicateTypeKeyError reports a type key declared by two platforms, which
// the flat projection cannot represent without losing one of them.
type DuplicateTypeKeyError struct {
	Key              string
	Platform         string
	ShadowedPlatform string
}

func (e *DuplicateTypeKeyError) Error() string {
	return fmt.Sprintf(
		"activity type key %q declared by both %q and %q",
		e.Key, e.ShadowedPlatform, e.Platform,
	)
}

// Flatten projects the nested configuration into typeKey -> definition+platform.
// When two platforms declare the same key, the later platform in sorted order
// wins and the earlier entry is shadowed. Existence checks against the flat
// view therefore only ever see the winning platform.
func (t ActivityTypes) Flatten() FlatActivityTypes {
	out := make(FlatActivityTypes)
	for _, platform := range t.sortedPlatforms() {
		for key, def := range t[platform] {
			out[key] = FlatActivityType{
				ActivityTypeDefinition: def,
				Platform:               platform,
			}
		}
	}
	return out
}

// FlattenStrict is the collision-detecting variant: it fails with a
// DuplicateTypeKeyError naming both platforms instead of shadowing.
func (t ActivityTypes) FlattenStrict() (FlatActivityTypes, error) {
	out := make(FlatActivityTypes)
	for _, platform := range t.sortedPlatforms() {
		for key, def := range t[platform] {
			if existing, ok := out[key]; ok {
				return nil, &DuplicateTypeKeyError{
					Key:              key,
					Platform:         platform,
					ShadowedPlatform: existing.Platform,
				}
			}
			out[key] = FlatActivityType{
				ActivityTypeDefinition: def,
				Platform:               platform,
			}
		}
	}
	return out, nil
}

func (t ActivityTypes) sortedPlatforms() []string {
	platforms := make([]string, 0, len(t))
	for platform, types := range t {
		if len(types) == 0 {
			continue
		}
		platforms = append(platforms, platform)
	}
	sort.Strings(platforms)
	return platforms
}
