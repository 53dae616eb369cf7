package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextTab   key.Binding
	PrevTab   key.Binding
	Open      key.Binding
	Toggle    key.Binding
	New       key.Binding
	Edit      key.Binding
	Delete    key.Binding
	Add       key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	Import    key.Binding
	Save      key.Binding
	FocusName key.Binding
	Back      key.Binding
	Help      key.Binding
	Quit      key.Binding
	Yes       key.Binding
	No        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		NextTab:   key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab", "next tab")),
		PrevTab:   key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("shift+tab", "previous tab")),
		Open:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "tick")),
		New:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new template")),
		Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:    key.NewBinding(key.WithKeys("d", "delete"), key.WithHelp("d", "delete")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		MoveUp:    key.NewBinding(key.WithKeys("ctrl+up", "K"), key.WithHelp("ctrl+↑", "move step up")),
		MoveDown:  key.NewBinding(key.WithKeys("ctrl+down", "J"), key.WithHelp("ctrl+↓", "move step down")),
		Import:    key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "import text")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		FocusName: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "edit name")),
		Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Yes:       key.NewBinding(key.WithKeys("y", "Y"), key.WithHelp("y", "confirm")),
		No:        key.NewBinding(key.WithKeys("n", "N", "esc"), key.WithHelp("n", "cancel")),
	}
}

// contextKeys adapts the key map to help.KeyMap for the current screen.
type contextKeys struct {
	short []key.Binding
	full  [][]key.Binding
}

func (c contextKeys) ShortHelp() []key.Binding  { return c.short }
func (c contextKeys) FullHelp() [][]key.Binding { return c.full }

func (m Model) helpKeys() contextKeys {
	k := m.keys
	switch m.viewMode {
	case ViewEditor:
		return contextKeys{
			short: []key.Binding{k.MoveUp, k.MoveDown, k.Add, k.Delete, k.Import, k.Save, k.Back},
			full: [][]key.Binding{
				{k.Up, k.Down, k.MoveUp, k.MoveDown},
				{k.Open, k.Add, k.Delete, k.FocusName},
				{k.Import, k.Save, k.Back, k.Quit},
			},
		}
	case ViewConfirm:
		return contextKeys{short: []key.Binding{k.Yes, k.No}}
	}

	switch m.tab {
	case TabTemplates:
		return contextKeys{
			short: []key.Binding{k.Open, k.New, k.Edit, k.Delete, k.NextTab, k.Help, k.Quit},
			full: [][]key.Binding{
				{k.Up, k.Down, k.NextTab, k.PrevTab},
				{k.Open, k.New, k.Edit, k.Delete},
				{k.Help, k.Quit},
			},
		}
	case TabActive:
		return contextKeys{
			short: []key.Binding{k.Open, k.Delete, k.NextTab, k.Help, k.Quit},
			full: [][]key.Binding{
				{k.Up, k.Down, k.NextTab, k.PrevTab},
				{k.Open, k.Delete},
				{k.Help, k.Quit},
			},
		}
	default:
		short := []key.Binding{k.Toggle, k.Edit, k.NextTab, k.Help, k.Quit}
		if m.checklistEditMode {
			short = []key.Binding{k.Add, k.Open, k.Delete, k.Edit, k.Quit}
		}
		return contextKeys{
			short: short,
			full: [][]key.Binding{
				{k.Up, k.Down, k.NextTab, k.PrevTab},
				{k.Toggle, k.Edit, k.Add, k.Delete},
				{k.Help, k.Quit},
			},
		}
	}
}
