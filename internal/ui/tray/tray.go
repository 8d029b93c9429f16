package tray

import (
	"fmt"
	"time"

	"fyne.io/fyne/v2"

	"dialtimer/internal/core/timekeeper"
)

const menuTitle = "Dial Timer"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnToggle      func()
	OnSound       func(enabled bool)
	OnPreferences func()
	OnQuit        func()
}

// MenuHost is the part of desktop.App the tray needs.
type MenuHost interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Manager handles system tray state.
type Manager struct {
	app        MenuHost
	statusItem *fyne.MenuItem
	toggleItem *fyne.MenuItem
	soundItem  *fyne.MenuItem
	callbacks  Callbacks
	phase      timekeeper.Phase
	remaining  time.Duration
}

// New creates a tray manager with the provided callbacks.
func New(app MenuHost, callbacks Callbacks, soundEnabled bool) *Manager {
	manager := &Manager{
		app:       app,
		callbacks: callbacks,
		phase:     timekeeper.PhaseIdle,
	}

	manager.statusItem = fyne.NewMenuItem("Status: idle", nil)
	manager.statusItem.Disabled = true

	manager.toggleItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnToggle != nil {
			manager.callbacks.OnToggle()
		}
	})

	manager.soundItem = fyne.NewMenuItem("Sound", nil)
	manager.soundItem.Checked = soundEnabled
	manager.soundItem.Action = func() {
		manager.soundItem.Checked = !manager.soundItem.Checked
		if manager.callbacks.OnSound != nil {
			manager.callbacks.OnSound(manager.soundItem.Checked)
		}
		manager.refreshMenu()
	}

	manager.refreshMenu()
	return manager
}

// Update reflects a controller event in the status line and toggle label.
func (manager *Manager) Update(event timekeeper.Event) {
	manager.phase = event.Phase
	manager.remaining = event.Remaining

	manager.statusItem.Label = "Status: " + Status(event.Phase, event.Remaining)
	manager.toggleItem.Label = ToggleLabel(event.Phase)
	manager.toggleItem.Disabled = event.Phase == timekeeper.PhaseEditing
	manager.refreshMenu()
}

// ToggleLabel names what the toggle item does in the given phase.
func ToggleLabel(phase timekeeper.Phase) string {
	switch phase {
	case timekeeper.PhaseRunning:
		return "Stop"
	case timekeeper.PhaseFinished:
		return "Reset"
	default:
		return "Start"
	}
}

// SetSound syncs the sound check mark.
func (manager *Manager) SetSound(enabled bool) {
	manager.soundItem.Checked = enabled
	manager.refreshMenu()
}

// Badge is the short text shown next to the tray icon: whole minutes left
// while running, "done" once finished, empty otherwise.
func Badge(phase timekeeper.Phase, remaining time.Duration) string {
	switch phase {
	case timekeeper.PhaseRunning:
		minutes := int((remaining + time.Minute - 1) / time.Minute)
		return fmt.Sprintf("%dm", minutes)
	case timekeeper.PhaseFinished:
		return "done"
	default:
		return ""
	}
}

// Status is the human readable tray status line.
func Status(phase timekeeper.Phase, remaining time.Duration) string {
	switch phase {
	case timekeeper.PhaseRunning:
		return fmt.Sprintf("%s left", Badge(phase, remaining))
	case timekeeper.PhaseFinished:
		return "finished"
	case timekeeper.PhaseEditing:
		return "adjusting"
	default:
		return fmt.Sprintf("idle (%d min)", int(remaining/time.Minute))
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	title := menuTitle
	if badge := Badge(manager.phase, manager.remaining); badge != "" {
		title = fmt.Sprintf("%s [%s]", menuTitle, badge)
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(title,
		manager.statusItem,
		fyne.NewMenuItem("Show dial", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		manager.toggleItem,
		manager.soundItem,
		fyne.NewMenuItem("Preferences", func() {
			if manager.callbacks.OnPreferences != nil {
				manager.callbacks.OnPreferences()
			}
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	))
}
