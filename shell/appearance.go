package shell

import (
	"fmt"
	"sync"

	"github.com/yllada/voice-intelligence/appearance"
	"github.com/yllada/voice-intelligence/common"
)

// Appearance emulates a radio group over three independent check items.
// The host toolkit does not enforce exclusivity, so Select does.
type Appearance struct {
	items   map[MenuID]CheckItem
	emitter Emitter
	log     common.Logger

	mu      sync.Mutex
	current appearance.Mode
}

// NewAppearance binds the three theme check items. Every theme ID must
// have an item.
func NewAppearance(items map[MenuID]CheckItem, emitter Emitter, initial appearance.Mode, log common.Logger) (*Appearance, error) {
	bound := make(map[MenuID]CheckItem, 3)
	for _, id := range ThemeIDs() {
		item, ok := items[id]
		if !ok || item == nil {
			return nil, fmt.Errorf("%w: missing check item %q", common.ErrInvalidMenu, id)
		}
		bound[id] = item
	}
	if log == nil {
		log = common.NopLogger{}
	}
	return &Appearance{
		items:   bound,
		emitter: emitter,
		log:     log,
		current: appearance.Parse(string(initial)),
	}, nil
}

// Select checks the item matching id, unchecks its siblings, and
// notifies the content view of the selected token. An id outside the
// group unchecks all three and reports appearance.ModeSystem.
func (a *Appearance) Select(id MenuID) appearance.Mode {
	for _, themeID := range ThemeIDs() {
		err := a.items[themeID].SetChecked(themeID == id)
		common.LogIfError(a.log, err, fmt.Sprintf("set %s checked", themeID))
	}

	mode := id.ThemeMode()

	a.mu.Lock()
	a.current = mode
	a.mu.Unlock()

	if a.emitter != nil {
		err := a.emitter.Emit(common.EventThemeChange, mode.String())
		common.LogIfError(a.log, err, "emit "+common.EventThemeChange)
	}
	a.log.Debug("theme selected: %s", mode)
	return mode
}

// Current returns the last selected mode.
func (a *Appearance) Current() appearance.Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.current
}
