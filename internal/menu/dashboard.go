package menu

import (
	"context"
	"html/template"
	"io"
	"sort"
	"strconv"

	"golang.org/x/text/message"

	"github.com/MrSnakeDoc/adminmarks/internal/domain"
	"github.com/MrSnakeDoc/adminmarks/internal/i18n"
)

// DashboardRow is one bookmarked item in the dashboard widget.
type DashboardRow struct {
	ID      int64  `json:"id"`
	Label   string `json:"label"`
	EditURL string `json:"edit_url"`
	ViewURL string `json:"view_url"`
}

// DashboardSection groups the rows of one content type.
type DashboardSection struct {
	ContentType string         `json:"content_type"`
	Label       string         `json:"label"`
	Rows        []DashboardRow `json:"rows"`
}

// Dashboard is the "My Bookmarks" widget.
type Dashboard struct {
	Title    string             `json:"title"`
	Sections []DashboardSection `json:"sections"`

	// Empty is the localized message shown when there are no sections.
	Empty string `json:"empty,omitempty"`

	EditLabel string `json:"-"`
	ViewLabel string `json:"-"`
}

// Dashboard flattens the actor's bookmarks sorted by (content type, title,
// id) and sections them per content type.
func (p *Projector) Dashboard(ctx context.Context, user *domain.User, pr *message.Printer) (*Dashboard, error) {
	groups, err := p.visible(ctx, user)
	if err != nil {
		return nil, err
	}

	d := &Dashboard{
		Title:     pr.Sprintf(i18n.MyBookmarks),
		Sections:  []DashboardSection{},
		EditLabel: pr.Sprintf(i18n.Edit),
		ViewLabel: pr.Sprintf(i18n.View),
	}

	routes := p.svc.Routes()
	for _, vg := range groups {
		items := append([]*domain.ContentItem(nil), vg.items...)
		sort.SliceStable(items, func(i, j int) bool {
			if items[i].Title != items[j].Title {
				return items[i].Title < items[j].Title
			}
			return items[i].ID < items[j].ID
		})

		section := DashboardSection{
			ContentType: vg.group.ContentType,
			Label:       vg.group.Label,
			Rows:        make([]DashboardRow, 0, len(items)),
		}
		for _, item := range items {
			section.Rows = append(section.Rows, DashboardRow{
				ID:      item.ID,
				Label:   vg.labels[item.ID],
				EditURL: routes.EditURL(item.ID),
				ViewURL: routes.ViewURL(item),
			})
		}
		d.Sections = append(d.Sections, section)
	}

	if len(d.Sections) == 0 {
		d.Empty = pr.Sprintf(i18n.NoBookmarks)
	}
	return d, nil
}

var dashboardTmpl = template.Must(template.New("dashboard").Parse(`<div id="dashboard_my_bookmarks" class="admin-bookmarks-dashboard">
<h2>{{.Title}}</h2>
{{- if .Sections}}
<table width="100%">
{{- range $i, $s := .Sections}}
{{- if $i}}
<tr><td><br /></td></tr>
{{- end}}
<tr><td colspan="3"><h4>{{$s.Label}}</h4></td></tr>
{{- range $s.Rows}}
<tr><td><span id="admin-bookmark-{{.ID}}" class="admin-bookmarks-icon bookmarked"></span>{{.Label}}</td><td><a href="{{.EditURL}}">{{$.EditLabel}}</a></td><td><a href="{{.ViewURL}}">{{$.ViewLabel}}</a></td></tr>
{{- end}}
{{- end}}
</table>
{{- else}}
<p>{{.Empty}}</p>
{{- end}}
</div>
`))

// Render writes the widget as HTML.
func (d *Dashboard) Render(w io.Writer) error {
	return dashboardTmpl.Execute(w, d)
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
