// Package catalog declares which settings exist, how they are grouped and
// which control renders each one. Descriptors carrying current values are
// derived from the preference record on every render.
package catalog

import (
	"github.com/pluqqy/prefpanel/pkg/modal"
	"github.com/pluqqy/prefpanel/pkg/models"
)

// ControlKind is the widget an item is rendered with
type ControlKind int

const (
	KindToggle ControlKind = iota
	KindSelect
	KindSlider
	KindButton
)

func (k ControlKind) String() string {
	switch k {
	case KindToggle:
		return "toggle"
	case KindSelect:
		return "select"
	case KindSlider:
		return "slider"
	case KindButton:
		return "button"
	default:
		return "unknown"
	}
}

// ItemSpec is the static description of one setting. Value-bearing kinds
// set Key; buttons set Action.
type ItemSpec struct {
	ID          string
	Title       string
	Description string
	Kind        ControlKind
	Key         models.Key
	Action      modal.Action
}

// Destructive reports whether a button should be styled as dangerous
func (s ItemSpec) Destructive() bool {
	return s.Action == modal.ActionDelete || s.Action == modal.ActionReset
}

// CategorySpec groups item specs under a sidebar entry
type CategorySpec struct {
	ID    string
	Title string
	Icon  string
	Items []ItemSpec
}

// Item is an ItemSpec resolved against the current record
type Item struct {
	ItemSpec
	Value   models.Value
	Options []models.Option
}

// Category is a CategorySpec with resolved items
type Category struct {
	ID    string
	Title string
	Icon  string
	Items []Item
}

var categories = []CategorySpec{
	{
		ID:    "appearance",
		Title: "Appearance",
		Icon:  "◐",
		Items: []ItemSpec{
			{ID: "theme", Title: "Theme", Description: "Choose your preferred color scheme", Kind: KindSelect, Key: models.KeyTheme},
			{ID: "fontSize", Title: "Font Size", Description: "Adjust text size for better readability", Kind: KindSlider, Key: models.KeyFontSize},
			{ID: "reducedMotion", Title: "Reduced Motion", Description: "Minimize animations and transitions", Kind: KindToggle, Key: models.KeyReducedMotion},
		},
	},
	{
		ID:    "notifications",
		Title: "Notifications",
		Icon:  "◉",
		Items: []ItemSpec{
			{ID: "notifications", Title: "Enable Notifications", Description: "Receive notifications about activity", Kind: KindToggle, Key: models.KeyNotifications},
			{ID: "emailNotifications", Title: "Email Notifications", Description: "Get updates via email", Kind: KindToggle, Key: models.KeyEmailNotifications},
			{ID: "pushNotifications", Title: "Push Notifications", Description: "Receive push notifications on your devices", Kind: KindToggle, Key: models.KeyPushNotifications},
			{ID: "soundEnabled", Title: "Notification Sounds", Description: "Play sounds for notifications", Kind: KindToggle, Key: models.KeySoundEnabled},
		},
	},
	{
		ID:    "privacy",
		Title: "Privacy & Security",
		Icon:  "◆",
		Items: []ItemSpec{
			{ID: "twoFactor", Title: "Two-Factor Authentication", Description: "Add an extra layer of security to your account", Kind: KindToggle, Key: models.KeyTwoFactor},
			{ID: "dataSharing", Title: "Data Sharing", Description: "Control how your data is used", Kind: KindSelect, Key: models.KeyDataSharing},
			{ID: "profileVisibility", Title: "Profile Visibility", Description: "Who can see your profile information", Kind: KindSelect, Key: models.KeyProfileVisibility},
		},
	},
	{
		ID:    "account",
		Title: "Account",
		Icon:  "●",
		Items: []ItemSpec{
			{ID: "exportData", Title: "Export Data", Description: "Download a copy of your data", Kind: KindButton, Action: modal.ActionExport},
			{ID: "deleteAccount", Title: "Delete Account", Description: "Permanently delete your account and data", Kind: KindButton, Action: modal.ActionDelete},
		},
	},
	{
		ID:    "accessibility",
		Title: "Accessibility",
		Icon:  "◎",
		Items: []ItemSpec{
			{ID: "highContrast", Title: "High Contrast", Description: "Increase contrast for better visibility", Kind: KindToggle, Key: models.KeyHighContrast},
		},
	},
	{
		ID:    "advanced",
		Title: "Advanced",
		Icon:  "⚙",
		Items: []ItemSpec{
			{ID: "resetSettings", Title: "Reset All Settings", Description: "Reset all settings to their default values", Kind: KindButton, Action: modal.ActionReset},
		},
	},
}

// DefaultCategory is the category shown on start
const DefaultCategory = "appearance"

// Categories returns the static table
func Categories() []CategorySpec {
	out := make([]CategorySpec, len(categories))
	copy(out, categories)
	return out
}

// HasCategory reports whether id names a category
func HasCategory(id string) bool {
	for _, c := range categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Build resolves every item against prefs
func Build(prefs models.Preferences) []Category {
	out := make([]Category, 0, len(categories))
	for _, spec := range categories {
		cat := Category{
			ID:    spec.ID,
			Title: spec.Title,
			Icon:  spec.Icon,
			Items: make([]Item, 0, len(spec.Items)),
		}
		for _, is := range spec.Items {
			cat.Items = append(cat.Items, resolve(is, prefs))
		}
		out = append(out, cat)
	}
	return out
}

func resolve(spec ItemSpec, prefs models.Preferences) Item {
	item := Item{ItemSpec: spec}
	if spec.Kind == KindButton {
		return item
	}

	// The static table only references known keys
	item.Value, _ = prefs.Get(spec.Key)
	if spec.Kind == KindSelect {
		if def, ok := models.Lookup(spec.Key); ok {
			item.Options = def.Options
		}
	}
	return item
}

// Find returns the category with id
func Find(cats []Category, id string) (Category, bool) {
	for _, c := range cats {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// OptionIndex returns the position of the current value in Options, or -1
func (i Item) OptionIndex() int {
	for idx, opt := range i.Options {
		if opt.Value == i.Value.Enum {
			return idx
		}
	}
	return -1
}

// OptionLabel returns the label of the current select value
func (i Item) OptionLabel() string {
	if idx := i.OptionIndex(); idx >= 0 {
		return i.Options[idx].Label
	}
	return i.Value.Enum
}
