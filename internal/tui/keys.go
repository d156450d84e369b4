package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Open     key.Binding
	Back     key.Binding
	Search   key.Binding
	Accept   key.Binding
	Sort     key.Binding
	Favorite key.Binding
	OnlyFavs key.Binding
	Retry    key.Binding
	Quit     key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "أعلى")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "أسفل")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "الفئة")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "الفئة")),
		Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "التفاصيل")),
		Back:     key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "رجوع")),
		Search:   key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "بحث")),
		Accept:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "قبول الاقتراح")),
		Sort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "فرز")),
		Favorite: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "مفضلة")),
		OnlyFavs: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "المفضلة فقط")),
		Retry:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "إعادة المحاولة")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "خروج")),
	}
}

// listKeys and detailKeys adapt the map to help.KeyMap per screen.
type listKeys struct{ keyMap }

func (k listKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Left, k.Sort, k.Open, k.Favorite, k.OnlyFavs, k.Quit}
}

func (k listKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Search, k.Accept, k.Sort},
		{k.Open, k.Favorite, k.OnlyFavs, k.Retry, k.Quit},
	}
}

type detailKeys struct{ keyMap }

func (k detailKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Back, k.Favorite, k.Quit}
}

func (k detailKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type failedKeys struct{ keyMap }

func (k failedKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Retry, k.Quit}
}

func (k failedKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
