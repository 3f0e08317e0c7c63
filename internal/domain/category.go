package domain

import (
	"fmt"
	"strings"
)

// CategoryInfo is a user-visible spending category.
type CategoryInfo struct {
	ID       string
	Name     string
	IconName string
}

// Validate validates a new category.
func (c *CategoryInfo) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}
	if len(c.Name) > MaxNameLength {
		return fmt.Errorf("%w: category name exceeds %d characters", ErrInvalidInput, MaxNameLength)
	}
	return nil
}

// Icon describes how a category icon is rendered by a client.
type Icon struct {
	Key   string `json:"key"`
	Glyph string `json:"glyph"`
}

// FallbackIconKey is used whenever an icon key is unknown.
const FallbackIconKey = "misc"

var iconLibrary = []Icon{
	{Key: "food", Glyph: "utensils"},
	{Key: "coffee", Glyph: "coffee"},
	{Key: "bus", Glyph: "bus"},
	{Key: "shirt", Glyph: "shirt"},
	{Key: "home", Glyph: "home"},
	{Key: "wifi", Glyph: "wifi"},
	{Key: "book", Glyph: "book"},
	{Key: "game", Glyph: "gamepad-2"},
	{Key: "health", Glyph: "stethoscope"},
	{Key: "gym", Glyph: "dumbbell"},
	{Key: "travel", Glyph: "plane"},
	{Key: "music", Glyph: "music"},
	{Key: "gift", Glyph: "gift"},
	{Key: "shopping", Glyph: "shopping-bag"},
	{Key: "utility", Glyph: "zap"},
	{Key: "phone", Glyph: "smartphone"},
	{Key: "card", Glyph: "credit-card"},
	{Key: "tool", Glyph: "wrench"},
	{Key: "study", Glyph: "library"},
	{Key: FallbackIconKey, Glyph: "layers"},
}

var iconsByKey = func() map[string]Icon {
	m := make(map[string]Icon, len(iconLibrary))
	for _, icon := range iconLibrary {
		m[icon.Key] = icon
	}
	return m
}()

// LookupIcon resolves an icon key, falling back to the misc icon.
func LookupIcon(key string) Icon {
	if icon, ok := iconsByKey[key]; ok {
		return icon
	}
	return iconsByKey[FallbackIconKey]
}

// IsKnownIcon reports whether key is present in the icon library.
func IsKnownIcon(key string) bool {
	_, ok := iconsByKey[key]
	return ok
}

// Icons returns the icon library in display order.
func Icons() []Icon {
	out := make([]Icon, len(iconLibrary))
	copy(out, iconLibrary)
	return out
}

// CategoryIcon resolves the icon for a category name. Names that do not
// match any category get the fallback icon.
func CategoryIcon(categories []CategoryInfo, name string) Icon {
	for _, c := range categories {
		if c.Name == name {
			return LookupIcon(c.IconName)
		}
	}
	return LookupIcon(FallbackIconKey)
}

// DefaultCategories returns the built-in categories.
func DefaultCategories() []CategoryInfo {
	return []CategoryInfo{
		{ID: "1", Name: "Food", IconName: "food"},
		{ID: "2", Name: "Snacks", IconName: "coffee"},
		{ID: "3", Name: "Transport", IconName: "bus"},
		{ID: "4", Name: "Laundry", IconName: "shirt"},
		{ID: "5", Name: "Stationary", IconName: "book"},
		{ID: "6", Name: "Internet", IconName: "wifi"},
		{ID: "7", Name: "Misc", IconName: "misc"},
	}
}
