// Package preview builds the preview and share view of a stored report.
package preview

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/lavimachotel/Lavimac-Hotel-sub003/internal/model"
)

// ViewerKind selects how the payload is shown inline.
type ViewerKind string

const (
	ViewerDocument    ViewerKind = "document"
	ViewerTable       ViewerKind = "table"
	ViewerUnavailable ViewerKind = "unavailable"
)

// UnavailableMessage is shown when a payload cannot be rendered inline.
const UnavailableMessage = "Preview not available for this format. Download the file to view it."

// Options are the values the view is templated with.
type Options struct {
	// BaseURL prefixes the share and download links.
	BaseURL    string
	HotelName  string
	Highlights []model.HighlightMetric
}

// View is the full state of the preview surface.
type View struct {
	Open bool `json:"open"`

	ID          string             `json:"id,omitempty"`
	Name        string             `json:"name,omitempty"`
	Date        string             `json:"date,omitempty"`
	Format      model.Format       `json:"format,omitempty"`
	ReportType  model.ReportType   `json:"reportType,omitempty"`
	DateRange   string             `json:"dateRange,omitempty"`
	GeneratedBy string             `json:"generatedBy,omitempty"`
	Filename    string             `json:"filename,omitempty"`
	HotelName   string             `json:"hotelName,omitempty"`
	Persisted   bool               `json:"persisted"`

	Viewer      ViewerKind          `json:"viewer,omitempty"`
	DocumentURI string              `json:"documentUri,omitempty"`
	Table       *model.TablePreview `json:"table,omitempty"`
	Message     string              `json:"message,omitempty"`

	Highlights []model.HighlightMetric `json:"highlights,omitempty"`

	DownloadURL string `json:"downloadUrl,omitempty"`
	ShareLink   string `json:"shareLink,omitempty"`
	MailtoLink  string `json:"mailtoLink,omitempty"`
}

// Build derives the view from a record and the open flag. A closed surface
// or a nil record yields a closed view.
func Build(rec *model.ReportRecord, open bool, opts Options) View {
	if !open || rec == nil {
		return View{}
	}

	v := View{
		Open:        true,
		ID:          rec.ID,
		Name:        rec.Name,
		Date:        rec.Date,
		Format:      rec.Type,
		ReportType:  rec.ReportType,
		DateRange:   rec.DateRange.Label(),
		GeneratedBy: rec.GeneratedBy,
		Filename:    rec.Filename,
		HotelName:   opts.HotelName,
		Persisted:   rec.Persisted,
		Highlights:  opts.Highlights,
		DownloadURL: DownloadLink(opts.BaseURL, rec.ID),
		ShareLink:   ShareLink(opts.BaseURL, rec.ID),
	}
	v.MailtoLink = MailtoLink(rec, v.ShareLink)

	switch {
	case rec.Type == model.FormatPDF && documentURI(rec) != "":
		v.Viewer = ViewerDocument
		v.DocumentURI = documentURI(rec)
	case rec.PreviewData.Table != nil:
		v.Viewer = ViewerTable
		v.Table = rec.PreviewData.Table
	default:
		v.Viewer = ViewerUnavailable
		v.Message = UnavailableMessage
	}
	return v
}

func documentURI(rec *model.ReportRecord) string {
	if rec.PreviewData.DataURI != "" {
		return rec.PreviewData.DataURI
	}
	return rec.FileContent
}

// ShareLink is the deep link to a report's preview page. It is not access controlled.
func ShareLink(baseURL, id string) string {
	return strings.TrimRight(baseURL, "/") + "/reports/" + url.PathEscape(id) + "/preview"
}

// DownloadLink points at the raw payload.
func DownloadLink(baseURL, id string) string {
	return strings.TrimRight(baseURL, "/") + "/api/reports/" + url.PathEscape(id) + "/download"
}

// MailtoLink is a pre-filled compose link carrying the share link.
func MailtoLink(rec *model.ReportRecord, shareLink string) string {
	subject := rec.Name
	if rec.Date != "" {
		subject += " - " + rec.Date
	}
	body := fmt.Sprintf("Hello,\n\nPlease find the %s (%s) here:\n%s\n\nPrepared by %s.",
		rec.Name, rec.DateRange.Label(), shareLink, rec.GeneratedBy)
	return "mailto:?subject=" + escape(subject) + "&body=" + escape(body)
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
