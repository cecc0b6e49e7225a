package dashboard

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	PrevTab        key.Binding
	NextTab        key.Binding
	SortCategory   key.Binding
	SortDesc       key.Binding
	SortAsc        key.Binding
	Toggle         key.Binding
	SelectAll      key.Binding
	RadarMode      key.Binding
	Replay         key.Binding
	Skip           key.Binding
	PrevAssessment key.Binding
	NextAssessment key.Binding
	Open           key.Binding
	Help           key.Binding
	Quit           key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		PrevTab:        key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev tab")),
		NextTab:        key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next tab")),
		SortCategory:   key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "by category")),
		SortDesc:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "highest first")),
		SortAsc:        key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "lowest first")),
		Toggle:         key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-4", "toggle category")),
		SelectAll:      key.NewBinding(key.WithKeys("A"), key.WithHelp("A", "all categories")),
		RadarMode:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "radar all/select")),
		Replay:         key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "animate")),
		Skip:           key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "skip animation")),
		PrevAssessment: key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev assessment")),
		NextAssessment: key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next assessment")),
		Open:           key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open assessment")),
		Help:           key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more keys")),
		Quit:           key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.PrevTab, k.NextTab, k.Toggle, k.Replay, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.PrevTab, k.NextTab, k.PrevAssessment, k.NextAssessment, k.Open},
		{k.SortCategory, k.SortDesc, k.SortAsc},
		{k.Toggle, k.SelectAll, k.RadarMode},
		{k.Replay, k.Skip, k.Help, k.Quit},
	}
}
