package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/trouvetonpro/dalil/internal/directory"
)

const (
	headerText     = "دليل المهنيين 🛠️"
	loadingText    = "جاري التحميل... ⏳"
	failedText     = "❌ Impossible de charger les données. Vérifiez le serveur Django (IP et port 8000)."
	failedSubText  = "Veuillez vérifier votre adresse IP et le serveur Django."
	emptyText      = "لم يتم العثور على أي مهنيين يتطابقون مع المعايير."
	rowHint        = "اضغط لرؤية التفاصيل والتواصل"
	cityPrefix     = "المدينة: "
	filterLabel    = "تصفية:"
	sortLabel      = "فرز حسب:"
	sortNameLabel  = "الاسم"
	sortCityLabel  = "المدينة"
	onlyFavsLabel  = "★ المفضلة فقط"
	suggestPrefix  = "هل تقصد: "
	defaultWidth   = 80
	rowHeight      = 5
	listChromeRows = 9
)

func (a *App) View() string {
	switch a.state {
	case viewLoading:
		return a.renderLoading()
	case viewFailed:
		return a.renderFailed()
	case viewDetail:
		return a.renderDetail()
	default:
		return a.renderList()
	}
}

func (a *App) lineWidth() int {
	if a.width > 0 {
		return a.width
	}
	return defaultWidth
}

// align pins a line to the reading edge: right in RTL, untouched otherwise.
func (a *App) align(s string) string {
	if !a.rtl {
		return s
	}
	return lipgloss.NewStyle().Width(a.lineWidth()).Align(lipgloss.Right).Render(s)
}

func (a *App) center(s string) string {
	return lipgloss.PlaceHorizontal(a.lineWidth(), lipgloss.Center, s)
}

// row lays parts out in reading order.
func (a *App) row(parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	if a.rtl {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return strings.Join(out, " ")
}

func (a *App) footer(k help.KeyMap) string {
	var b strings.Builder
	if a.status != "" {
		b.WriteString(a.align(statusStyle.Render(a.status)))
		b.WriteString("\n")
	}
	b.WriteString(a.align(a.help.View(k)))
	return b.String()
}

func (a *App) renderLoading() string {
	return "\n" + a.center(a.spinner.View()+" "+loadingStyle.Render(loadingText))
}

func (a *App) renderFailed() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(a.center(errorStyle.Render(failedText)))
	b.WriteString("\n")
	b.WriteString(a.center(subErrorStyle.Render(failedSubText)))
	b.WriteString("\n")
	b.WriteString(a.center(subErrorStyle.Render(a.baseURL)))
	b.WriteString("\n\n")
	b.WriteString(a.footer(failedKeys{a.keys}))
	return b.String()
}

func (a *App) renderList() string {
	var b strings.Builder
	b.WriteString(a.align(titleStyle.Render(headerText)))
	b.WriteString("\n")
	b.WriteString(a.align(a.search.View()))
	b.WriteString("\n")
	b.WriteString(a.align(a.renderChips()))
	b.WriteString("\n")
	b.WriteString(a.align(a.renderSortBar()))
	b.WriteString("\n\n")

	if len(a.visible) == 0 {
		b.WriteString(a.center(emptyStyle.Render(emptyText)))
		b.WriteString("\n")
		if a.suggestion != "" {
			b.WriteString(a.center(suggestStyle.Render(suggestPrefix + a.suggestion + " (tab)")))
			b.WriteString("\n")
		}
	} else {
		start, end := a.window()
		for i := start; i < end; i++ {
			b.WriteString(a.renderWorker(a.visible[i], i == a.cursor))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(a.footer(listKeys{a.keys}))
	return b.String()
}

// window returns the slice of visible rows that fits the terminal while
// keeping the cursor on screen.
func (a *App) window() (int, int) {
	n := len(a.visible)
	if a.height <= 0 {
		return 0, n
	}
	fit := max(1, (a.height-listChromeRows)/rowHeight)
	if n <= fit {
		return 0, n
	}
	start := 0
	if a.cursor >= fit {
		start = a.cursor - fit + 1
	}
	return start, min(n, start+fit)
}

func (a *App) renderChips() string {
	cats := directory.Categories(a.workers)
	parts := make([]string, 0, len(cats)+1)
	parts = append(parts, labelStyle.Render(filterLabel))
	for _, c := range cats {
		if c == a.category {
			parts = append(parts, chipActive.Render(c))
		} else {
			parts = append(parts, chipStyle.Render(c))
		}
	}
	return a.row(parts...)
}

func (a *App) renderSortBar() string {
	name, city := chipStyle.Render(sortNameLabel), chipStyle.Render(sortCityLabel)
	if a.sort == directory.SortByCity {
		city = chipActive.Render(sortCityLabel)
	} else {
		name = chipActive.Render(sortNameLabel)
	}
	favs := ""
	if a.onlyFavs {
		favs = starStyle.Render(onlyFavsLabel)
	}
	return a.row(labelStyle.Render(sortLabel), name, city, favs)
}

func (a *App) renderWorker(w directory.Worker, selected bool) string {
	marker := "  "
	name := nameStyle.Render(w.FullName())
	if selected {
		marker = "▶ "
		if a.rtl {
			marker = " ◀"
		}
		name = selectedName.Render(w.FullName())
	}
	star := ""
	if a.favorites[w.ID] {
		star = starStyle.Render("★")
	}

	lines := []string{
		a.align(a.row(marker, categoryStyle.Render(w.Category))),
		a.align(a.row("  ", name, star)),
		a.align(a.row("  ", cityPrefix+w.City)),
		"  " + hintStyle.Render(rowHint),
	}
	return strings.Join(lines, "\n")
}

func (a *App) renderDetail() string {
	var b strings.Builder
	title := a.selected.WorkerName
	if a.favorites[a.selected.WorkerID] {
		title += " " + starStyle.Render("★")
	}
	b.WriteString(a.align(titleStyle.Render(title)))
	b.WriteString("\n\n")

	switch {
	case a.detailErr:
		b.WriteString(a.center(errorStyle.Render(failedText)))
		b.WriteString("\n")
	case a.detail == nil:
		b.WriteString(a.center(a.spinner.View() + " " + loadingStyle.Render(loadingText)))
		b.WriteString("\n")
	default:
		w := a.detail
		field := func(label, value string) {
			if value == "" {
				value = "-"
			}
			b.WriteString(a.align(a.row(labelStyle.Render(label+":"), value)))
			b.WriteString("\n")
		}
		field("الفئة", w.Category)
		field("المدينة", w.City)
		field("التقييم", w.Rating.String())
		field("الهاتف", a.row(w.Phone, telLink(w.Phone)))
		field("واتساب", whatsAppLink(w.WhatsApp))
		field("نبذة", w.Bio)
		field("الصورة", w.Image)
	}
	b.WriteString("\n")
	b.WriteString(a.footer(detailKeys{a.keys}))
	return b.String()
}

func telLink(phone string) string {
	p := strings.Join(strings.Fields(phone), "")
	if p == "" {
		return ""
	}
	return "tel:" + p
}

// whatsAppLink builds a wa.me link from the digits of num.
func whatsAppLink(num *string) string {
	if num == nil {
		return ""
	}
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, *num)
	if digits == "" {
		return ""
	}
	return fmt.Sprintf("https://wa.me/%s", digits)
}
