package monitor

import (
	"sync"
)

// ConfirmDialog asks a yes/no question before a destructive action
type ConfirmDialog struct {
	Prompt    string
	OnConfirm func()
}

// StateManager manages dashboard interaction state in a thread-safe manner
type StateManager struct {
	mu sync.RWMutex

	selectedID int
	status     string
	showHelp   bool
	confirm    *ConfirmDialog
}

func NewStateManager() *StateManager {
	return &StateManager{}
}

// SelectedID is the timer the keyboard acts on; 0 when none was picked
func (sm *StateManager) SelectedID() int {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.selectedID
}

func (sm *StateManager) Select(id int) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.selectedID = id
}

func (sm *StateManager) Status() string {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.status
}

func (sm *StateManager) SetStatus(status string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.status = status
}

func (sm *StateManager) ShowHelp() bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.showHelp
}

// ToggleHelp flips the help overlay and returns the new value
func (sm *StateManager) ToggleHelp() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.showHelp = !sm.showHelp
	return sm.showHelp
}

func (sm *StateManager) Confirm() *ConfirmDialog {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.confirm
}

func (sm *StateManager) SetConfirm(dialog *ConfirmDialog) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.confirm = dialog
}
