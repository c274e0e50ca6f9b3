// Package pdf assembles the multi-page HTML proposal document that the
// rendering service turns into a PDF.
package pdf

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/angelmondragon/ooh-agent-backend/internal/proposals"
	"github.com/angelmondragon/ooh-agent-backend/pkg/maps"
	"github.com/angelmondragon/ooh-agent-backend/pkg/money"
)

//go:embed templates/*
var templateFS embed.FS

var (
	document = template.Must(template.ParseFS(templateFS, "templates/proposal.html.tmpl"))
	styles   = mustReadStyles()
)

const (
	defaultClientName     = "Cliente"
	defaultContactLine    = "Global Argentina | +54 11 9 38902707 |"
	defaultAvailability   = "Disponible"
	defaultAdditionalInfo = "Sin información adicional"
	fixedPages            = 2
)

var months = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

var disclaimers = []string{
	"Los valores detallados en este documento NO incluyen IVA.",
	"Los valores de producción e instalación deben revalidarse al momento de realizarse.",
	"Las tasas municipales de publicidad pueden sufrir aumentos a partir de las disposiciones tomadas por las autoridades municipales.",
}

// Options carries branding and collaborators. Zero values fall back to defaults.
type Options struct {
	LogoDataURI  string
	ContactLine  string
	BaseImageURL string
	Maps         *maps.Client
	Now          func() time.Time
}

// Result is the rendered document plus the page count the renderer expects.
type Result struct {
	HTML       string `json:"html"`
	TotalPages int    `json:"totalPages"`
	ClientName string `json:"clientName"`
	ItemCount  int    `json:"itemCount"`
}

type footer struct {
	Contact string
	Page    int
	Total   int
}

type summaryRow struct {
	Type         string
	Address      string
	Availability string
	City         string
	Rental       string
	Tax          string
	Installation string
	Production   string
}

type spec struct {
	Label string
	Value string
}

type sheet struct {
	Address        string
	Code           string
	Type           string
	Image          template.URL
	AdditionalInfo string
	Specs          []spec
	MapImage       template.URL
	MapLink        template.URL
	Footer         footer
}

type view struct {
	ClientName    string
	Styles        template.CSS
	Logo          template.URL
	Month         string
	Year          int
	Rows          []summaryRow
	Disclaimers   []string
	Sheets        []sheet
	CoverFooter   footer
	SummaryFooter footer
}

// Build renders a rich proposal snapshot: a cover, a summary table and one
// product sheet per item.
func Build(snapshot proposals.RichProposal, opts Options) (Result, error) {
	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	contact := strings.TrimSpace(opts.ContactLine)
	if contact == "" {
		contact = defaultContactLine
	}
	clientName := snapshot.ClientName
	if strings.TrimSpace(clientName) == "" {
		clientName = defaultClientName
	}

	total := fixedPages + len(snapshot.Items)
	today := now()
	v := view{
		ClientName:    clientName,
		Styles:        template.CSS(styles),
		Logo:          template.URL(opts.LogoDataURI),
		Month:         months[today.Month()-1],
		Year:          today.Year(),
		Disclaimers:   disclaimers,
		CoverFooter:   footer{Contact: contact, Page: 1, Total: total},
		SummaryFooter: footer{Contact: contact, Page: 2, Total: total},
		Rows:          make([]summaryRow, 0, len(snapshot.Items)),
		Sheets:        make([]sheet, 0, len(snapshot.Items)),
	}
	for i, item := range snapshot.Items {
		v.Rows = append(v.Rows, rowFor(item))
		v.Sheets = append(v.Sheets, sheetFor(item, opts, footer{Contact: contact, Page: fixedPages + i + 1, Total: total}))
	}

	var buf bytes.Buffer
	if err := document.ExecuteTemplate(&buf, "proposal", v); err != nil {
		return Result{}, fmt.Errorf("render proposal document: %w", err)
	}
	return Result{
		HTML:       buf.String(),
		TotalPages: total,
		ClientName: snapshot.ClientName,
		ItemCount:  len(snapshot.Items),
	}, nil
}

func rowFor(item proposals.RichItem) summaryRow {
	availability := item.AvailabilityDisplay
	if availability == "" {
		availability = defaultAvailability
	}
	return summaryRow{
		Type:         item.Type,
		Address:      item.Address,
		Availability: availability,
		City:         item.City,
		Rental:       money.Format(item.RentalMonthly),
		Tax:          money.Format(item.MunicipalTax),
		Installation: money.Format(item.InstallationCost),
		Production:   money.Format(item.ProductionCost),
	}
}

func sheetFor(item proposals.RichItem, opts Options, f footer) sheet {
	image := item.BaseImageURL
	if item.MockupImageURL != nil && *item.MockupImageURL != "" {
		image = *item.MockupImageURL
	}
	if image == "" {
		image = opts.BaseImageURL
	}
	info := item.AdditionalInfo
	if info == "" {
		info = defaultAdditionalInfo
	}
	lighting := "No"
	if item.Lighting {
		lighting = "Sí"
	}

	point := maps.Point{Lat: item.Lat, Lng: item.Long}
	return sheet{
		Address:        item.Address,
		Code:           item.Code,
		Type:           item.Type,
		Image:          template.URL(image),
		AdditionalInfo: info,
		Specs: []spec{
			{"Localidad/Barrio", item.Neighborhood},
			{"Sub-formato", item.SubFormat},
			{"Dimensiones (visible)", item.VisibleDimensions},
			{"Dimensiones (total)", item.TotalDimensions},
			{"Iluminación", lighting},
			{"Resolución", item.Resolution},
			{"Especificación material", item.MaterialSpec},
			{"Formato de envío", item.SendFormat},
			{"Fecha envío original", item.SendDeadline},
			{"OTS diario", money.Format(float64(item.DailyOTS))},
		},
		MapImage: template.URL(opts.Maps.StaticMapURL(point)),
		MapLink:  template.URL(opts.Maps.LinkURL(point)),
		Footer:   f,
	}
}

func mustReadStyles() string {
	raw, err := templateFS.ReadFile("templates/styles.css")
	if err != nil {
		panic(err)
	}
	return string(raw)
}
