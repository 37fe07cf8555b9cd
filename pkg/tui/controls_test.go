package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/pluqqy/prefpanel/pkg/catalog"
	"github.com/pluqqy/prefpanel/pkg/modal"
	"github.com/pluqqy/prefpanel/pkg/models"
	"github.com/pluqqy/prefpanel/pkg/store"
	"github.com/pluqqy/prefpanel/pkg/tui/testhelpers"
)

func findItem(t *testing.T, prefs models.Preferences, id string) catalog.Item {
	t.Helper()
	for _, c := range catalog.Build(prefs) {
		for _, it := range c.Items {
			if it.ID == id {
				return it
			}
		}
	}
	t.Fatalf("item %q not in catalog", id)
	return catalog.Item{}
}

func TestEveryKindHasAControl(t *testing.T) {
	for _, kind := range []catalog.ControlKind{catalog.KindToggle, catalog.KindSelect, catalog.KindSlider, catalog.KindButton} {
		if _, ok := controlFor(kind); !ok {
			t.Errorf("no control registered for %s", kind)
		}
	}
}

func TestSelectNeverEmitsUndeclaredValues(t *testing.T) {
	s := store.New(zerolog.Nop())
	env := controlEnv{store: s}

	for _, id := range []string{"theme", "dataSharing", "profileVisibility"} {
		for _, delta := range []int{1, -1, 2, -5, 7} {
			item := findItem(t, s.Preferences(), id)
			if _, cmd := (selectControl{}).Adjust(env, item, delta); cmd != nil {
				t.Errorf("select adjust returned a command")
			}

			after := findItem(t, s.Preferences(), id)
			if after.OptionIndex() < 0 {
				t.Errorf("%s: value %q is not a declared option", id, after.Value.Enum)
			}
		}
	}
}

func TestSelectAdjustWraps(t *testing.T) {
	tests := []struct {
		delta int
		want  models.DataSharing
	}{
		{1, models.DataSharingStandard},
		{2, models.DataSharingFull},
		{3, models.DataSharingMinimal},
		{-1, models.DataSharingFull},
		{-4, models.DataSharingFull},
	}

	for _, tt := range tests {
		s := store.New(zerolog.Nop())
		item := findItem(t, s.Preferences(), "dataSharing")
		(selectControl{}).Adjust(controlEnv{store: s}, item, tt.delta)
		if got := s.Preferences().DataSharing; got != tt.want {
			t.Errorf("Adjust(%d) from minimal = %q, want %q", tt.delta, got, tt.want)
		}
	}
}

func TestSliderAdjustClamps(t *testing.T) {
	tests := []struct {
		start int
		delta int
		want  int
	}{
		{14, 1, 15},
		{14, -1, 13},
		{20, 1, 20},
		{12, -1, 12},
		{14, 100, 20},
		{14, -100, 12},
	}

	for _, tt := range tests {
		s := store.New(zerolog.Nop())
		if err := s.SetFontSize(tt.start); err != nil {
			t.Fatal(err)
		}
		item := findItem(t, s.Preferences(), "fontSize")
		handled, _ := (sliderControl{}).Adjust(controlEnv{store: s}, item, tt.delta)
		if !handled {
			t.Error("slider should handle adjust")
		}
		if got := s.Preferences().FontSize; got != tt.want {
			t.Errorf("start %d delta %d: fontSize = %d, want %d", tt.start, tt.delta, got, tt.want)
		}
	}
}

func TestToggleAndButtonIgnoreAdjust(t *testing.T) {
	s := store.New(zerolog.Nop())
	env := controlEnv{store: s}

	if handled, _ := (toggleControl{}).Adjust(env, findItem(t, s.Preferences(), "twoFactor"), 1); handled {
		t.Error("toggle should not handle adjust")
	}
	if handled, _ := (buttonControl{}).Adjust(env, findItem(t, s.Preferences(), "exportData"), 1); handled {
		t.Error("button should not handle adjust")
	}
	if s.Preferences() != models.DefaultPreferences() {
		t.Error("ignored adjust changed the record")
	}
}

func TestButtonOpensModalForItsAction(t *testing.T) {
	s := store.New(zerolog.Nop())

	var opened []modal.Action
	env := controlEnv{
		store: s,
		openModal: func(a modal.Action) tea.Cmd {
			opened = append(opened, a)
			return nil
		},
	}

	for _, id := range []string{"exportData", "deleteAccount", "resetSettings"} {
		(buttonControl{}).Activate(env, findItem(t, s.Preferences(), id))
	}

	want := []modal.Action{modal.ActionExport, modal.ActionDelete, modal.ActionReset}
	if len(opened) != len(want) {
		t.Fatalf("opened %v, want %v", opened, want)
	}
	for i := range want {
		if opened[i] != want[i] {
			t.Errorf("opened[%d] = %q, want %q", i, opened[i], want[i])
		}
	}
}

func TestControlRendering(t *testing.T) {
	prefs := models.DefaultPreferences()
	prefs.FontSize = 16

	tests := []struct {
		id   string
		want []string
	}{
		{"twoFactor", []string{"[ ] Off"}},
		{"notifications", []string{"[✓] On"}},
		{"theme", []string{"System"}},
		{"profileVisibility", []string{"Public"}},
		{"fontSize", []string{"A-", "━━━━●────", "A+", "16px"}},
		{"deleteAccount", []string{"Delete Account"}},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			item := findItem(t, prefs, tt.id)
			c, _ := controlFor(item.Kind)
			out := c.Render(item, false, testPalette)
			for _, w := range tt.want {
				testhelpers.AssertViewContains(t, out, w)
			}
		})
	}
}

func TestFocusedSelectShowsArrows(t *testing.T) {
	item := findItem(t, models.DefaultPreferences(), "dataSharing")
	testhelpers.AssertViewContains(t, (selectControl{}).Render(item, true, testPalette), "‹ Minimal ›")
	testhelpers.AssertViewNotContains(t, (selectControl{}).Render(item, false, testPalette), "‹")
}
