package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/thecompernolles/citylist/internal/cities"
)

var (
	itemStyle         = AltTextStyle.PaddingLeft(4)
	selectedItemStyle = AccentTextStyle.PaddingLeft(2)
	paginationStyle   = list.DefaultStyles().PaginationStyle.PaddingLeft(4)
)

func newCityList(width int, height int) list.Model {
	l := list.New([]list.Item{}, itemDelegate{}, width, height)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.DisableQuitKeybindings()
	l.Styles.PaginationStyle = paginationStyle

	return l
}

func toItems(visible []cities.City) []list.Item {
	items := make([]list.Item, 0, len(visible))
	for _, c := range visible {
		items = append(items, item(c))
	}

	return items
}

type item cities.City

func (i item) FilterValue() string { return "" }

type itemDelegate struct{}

func (d itemDelegate) Height() int                             { return 1 }
func (d itemDelegate) Spacing() int                            { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(item)
	if !ok {
		return
	}

	str := cities.City(i).String()

	if index == m.Index() {
		fmt.Fprint(w, selectedItemStyle.Render("> "+str))
		return
	}

	fmt.Fprint(w, itemStyle.Render(str))
}
