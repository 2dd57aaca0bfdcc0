package analytics

import (
	"strconv"
	"strings"

	"cmscore/models"
)

type ReportItem struct {
	Name  string
	Value string
}

type ReportSection struct {
	Title string
	Items []ReportItem
}

// Report is a titled list of sections ready for display
type Report struct {
	Title    string
	Sections []ReportSection
}

// Value looks up an item by section title and item name
func (r *Report) Value(section, item string) (string, bool) {
	for _, s := range r.Sections {
		if s.Title != section {
			continue
		}
		for _, i := range s.Items {
			if i.Name == item {
				return i.Value, true
			}
		}
	}
	return "", false
}

func (r *Report) String() string {
	var sb strings.Builder
	sb.WriteString("== " + r.Title + " ==\n")
	for _, section := range r.Sections {
		sb.WriteString("\n" + section.Title + "\n")
		for _, item := range section.Items {
			sb.WriteString("  " + item.Name + ": " + item.Value + "\n")
		}
	}
	return sb.String()
}

func NewSiteReport(store *Store, site models.Site) *Report {
	count := func(n int) string { return strconv.Itoa(n) }

	return &Report{
		Title: "Site analytics",
		Sections: []ReportSection{
			{
				Title: "Site stats",
				Items: []ReportItem{
					{Name: "Name", Value: site.Name},
					{Name: "Accesses", Value: count(store.CountBySiteAction(site.Id, SiteAccess))},
					{Name: "Posts created", Value: count(store.CountBySiteAction(site.Id, SiteCreatePost))},
					{Name: "Media uploads", Value: count(store.CountBySiteAction(site.Id, SiteUploadMedia))},
				},
			},
			{
				Title: "Post interactions",
				Items: []ReportItem{
					{Name: "Views", Value: count(store.CountByPostSiteAction(site.Id, PostView))},
					{Name: "Comments", Value: count(store.CountByPostSiteAction(site.Id, PostComment))},
					{Name: "Shares", Value: count(store.CountByPostSiteAction(site.Id, PostShare))},
				},
			},
		},
	}
}

func NewPostReport(store *Store, post *models.Post) *Report {
	count := func(n int) string { return strconv.Itoa(n) }

	return &Report{
		Title: "Post analytics",
		Sections: []ReportSection{
			{
				Title: "Post stats",
				Items: []ReportItem{
					{Name: "Title", Value: post.DefaultTitle()},
					{Name: "Views", Value: count(store.CountByPostAction(post.Id, PostView))},
					{Name: "Comments", Value: count(store.CountByPostAction(post.Id, PostComment))},
					{Name: "Shares", Value: count(store.CountByPostAction(post.Id, PostShare))},
				},
			},
		},
	}
}
