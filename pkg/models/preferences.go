package models

import "fmt"

// Key names a single preference in the record
type Key string

const (
	KeyTheme              Key = "theme"
	KeyFontSize           Key = "fontSize"
	KeyReducedMotion      Key = "reducedMotion"
	KeyHighContrast       Key = "highContrast"
	KeyNotifications      Key = "notifications"
	KeyEmailNotifications Key = "emailNotifications"
	KeyPushNotifications  Key = "pushNotifications"
	KeySoundEnabled       Key = "soundEnabled"
	KeyTwoFactor          Key = "twoFactor"
	KeyDataSharing        Key = "dataSharing"
	KeyProfileVisibility  Key = "profileVisibility"
)

// ThemeMode is the user-selected color scheme
type ThemeMode string

const (
	ThemeLight  ThemeMode = "light"
	ThemeDark   ThemeMode = "dark"
	ThemeSystem ThemeMode = "system"
)

// DataSharing controls how much usage data is shared
type DataSharing string

const (
	DataSharingMinimal  DataSharing = "minimal"
	DataSharingStandard DataSharing = "standard"
	DataSharingFull     DataSharing = "full"
)

// ProfileVisibility controls who can see profile information
type ProfileVisibility string

const (
	VisibilityPublic  ProfileVisibility = "public"
	VisibilityFriends ProfileVisibility = "friends"
	VisibilityPrivate ProfileVisibility = "private"
)

// Font size bounds in pixels
const (
	MinFontSize     = 12
	MaxFontSize     = 20
	DefaultFontSize = 14
)

// Preferences is the complete preference record. Every key is always present;
// the zero value is not meaningful, start from DefaultPreferences.
type Preferences struct {
	Theme              ThemeMode         `yaml:"theme" json:"theme"`
	FontSize           int               `yaml:"fontSize" json:"fontSize"`
	ReducedMotion      bool              `yaml:"reducedMotion" json:"reducedMotion"`
	HighContrast       bool              `yaml:"highContrast" json:"highContrast"`
	Notifications      bool              `yaml:"notifications" json:"notifications"`
	EmailNotifications bool              `yaml:"emailNotifications" json:"emailNotifications"`
	PushNotifications  bool              `yaml:"pushNotifications" json:"pushNotifications"`
	SoundEnabled       bool              `yaml:"soundEnabled" json:"soundEnabled"`
	TwoFactor          bool              `yaml:"twoFactor" json:"twoFactor"`
	DataSharing        DataSharing       `yaml:"dataSharing" json:"dataSharing"`
	ProfileVisibility  ProfileVisibility `yaml:"profileVisibility" json:"profileVisibility"`
}

// DefaultPreferences returns the fixed default record
func DefaultPreferences() Preferences {
	return Preferences{
		Theme:              ThemeSystem,
		FontSize:           DefaultFontSize,
		ReducedMotion:      false,
		HighContrast:       false,
		Notifications:      true,
		EmailNotifications: true,
		PushNotifications:  true,
		SoundEnabled:       true,
		TwoFactor:          false,
		DataSharing:        DataSharingMinimal,
		ProfileVisibility:  VisibilityPublic,
	}
}

// ClampFontSize bounds n to [MinFontSize, MaxFontSize]
func ClampFontSize(n int) int {
	if n < MinFontSize {
		return MinFontSize
	}
	if n > MaxFontSize {
		return MaxFontSize
	}
	return n
}

var (
	ThemeOptions = []Option{
		{Label: "Light", Value: string(ThemeLight)},
		{Label: "Dark", Value: string(ThemeDark)},
		{Label: "System", Value: string(ThemeSystem)},
	}

	DataSharingOptions = []Option{
		{Label: "Minimal", Value: string(DataSharingMinimal)},
		{Label: "Standard", Value: string(DataSharingStandard)},
		{Label: "Full", Value: string(DataSharingFull)},
	}

	ProfileVisibilityOptions = []Option{
		{Label: "Public", Value: string(VisibilityPublic)},
		{Label: "Friends Only", Value: string(VisibilityFriends)},
		{Label: "Private", Value: string(VisibilityPrivate)},
	}
)

// definitions is ordered the way keys appear in the record
var definitions = []Definition{
	{Key: KeyTheme, Kind: KindEnum, Default: EnumValue(string(ThemeSystem)), Options: ThemeOptions},
	{Key: KeyFontSize, Kind: KindInt, Default: IntValue(DefaultFontSize), Min: MinFontSize, Max: MaxFontSize},
	{Key: KeyReducedMotion, Kind: KindBool, Default: BoolValue(false)},
	{Key: KeyHighContrast, Kind: KindBool, Default: BoolValue(false)},
	{Key: KeyNotifications, Kind: KindBool, Default: BoolValue(true)},
	{Key: KeyEmailNotifications, Kind: KindBool, Default: BoolValue(true)},
	{Key: KeyPushNotifications, Kind: KindBool, Default: BoolValue(true)},
	{Key: KeySoundEnabled, Kind: KindBool, Default: BoolValue(true)},
	{Key: KeyTwoFactor, Kind: KindBool, Default: BoolValue(false)},
	{Key: KeyDataSharing, Kind: KindEnum, Default: EnumValue(string(DataSharingMinimal)), Options: DataSharingOptions},
	{Key: KeyProfileVisibility, Kind: KindEnum, Default: EnumValue(string(VisibilityPublic)), Options: ProfileVisibilityOptions},
}

// Definitions returns every preference definition in record order
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Lookup returns the definition for key
func Lookup(key Key) (Definition, bool) {
	for _, def := range definitions {
		if def.Key == key {
			return def, true
		}
	}
	return Definition{}, false
}

// Get returns the current value of key
func (p Preferences) Get(key Key) (Value, error) {
	switch key {
	case KeyTheme:
		return EnumValue(string(p.Theme)), nil
	case KeyFontSize:
		return IntValue(p.FontSize), nil
	case KeyReducedMotion:
		return BoolValue(p.ReducedMotion), nil
	case KeyHighContrast:
		return BoolValue(p.HighContrast), nil
	case KeyNotifications:
		return BoolValue(p.Notifications), nil
	case KeyEmailNotifications:
		return BoolValue(p.EmailNotifications), nil
	case KeyPushNotifications:
		return BoolValue(p.PushNotifications), nil
	case KeySoundEnabled:
		return BoolValue(p.SoundEnabled), nil
	case KeyTwoFactor:
		return BoolValue(p.TwoFactor), nil
	case KeyDataSharing:
		return EnumValue(string(p.DataSharing)), nil
	case KeyProfileVisibility:
		return EnumValue(string(p.ProfileVisibility)), nil
	}
	return Value{}, fmt.Errorf("%w: %q", ErrUnknownKey, key)
}

// Set validates v against the definition for key and stores it. On error the
// record is left unchanged.
func (p *Preferences) Set(key Key, v Value) error {
	def, ok := Lookup(key)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	if err := def.Validate(v); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}

	switch key {
	case KeyTheme:
		p.Theme = ThemeMode(v.Enum)
	case KeyFontSize:
		p.FontSize = v.Int
	case KeyReducedMotion:
		p.ReducedMotion = v.Bool
	case KeyHighContrast:
		p.HighContrast = v.Bool
	case KeyNotifications:
		p.Notifications = v.Bool
	case KeyEmailNotifications:
		p.EmailNotifications = v.Bool
	case KeyPushNotifications:
		p.PushNotifications = v.Bool
	case KeySoundEnabled:
		p.SoundEnabled = v.Bool
	case KeyTwoFactor:
		p.TwoFactor = v.Bool
	case KeyDataSharing:
		p.DataSharing = DataSharing(v.Enum)
	case KeyProfileVisibility:
		p.ProfileVisibility = ProfileVisibility(v.Enum)
	}
	return nil
}
