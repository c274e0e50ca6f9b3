package seed

import (
	"github.com/angelmondragon/ooh-agent-backend/pkg/db/models"
	dbtypes "github.com/angelmondragon/ooh-agent-backend/pkg/db/types"
	"github.com/angelmondragon/ooh-agent-backend/pkg/enums"
	"github.com/shopspring/decimal"
)

// BaseImageURL is the billboard photo every demo support shares.
const BaseImageURL = "https://raw.githubusercontent.com/tlleonart/sales-agent/main/image-example.png"

type demoSupport struct {
	code       string
	kind       enums.SupportType
	owner      string
	address    string
	city       string
	zone       enums.Zone
	lat, lng   float64
	rental     int64
	production int64
	install    int64
	tax        int64
	dimensions string
	lighting   bool
	status     enums.InventoryStatus
	blocked    []string
	dailyOTS   int
}

var demoInventory = []demoSupport{
	{"GFG001", enums.SupportTypeMedianera, "Global", "Av. Maipú 2500, Vicente López", "Vicente López", enums.ZoneGBANorte, -34.5267, -58.4726, 850000, 180000, 95000, 42000, "12m x 6m", true, enums.InventoryStatusAvailable, nil, 45000},
	{"GFG002", enums.SupportTypeEspectacular, "Global", "Panamericana Km 28, Pilar", "Pilar", enums.ZoneGBANorte, -34.4587, -58.9142, 1200000, 250000, 150000, 65000, "18m x 8m", true, enums.InventoryStatusAvailable, nil, 120000},
	{"GFG003", enums.SupportTypeColumna, "Global", "Av. Del Libertador 15000, San Isidro", "San Isidro", enums.ZoneGBANorte, -34.4712, -58.5234, 320000, 85000, 45000, 18000, "4m x 3m", true, enums.InventoryStatusAvailable, nil, 28000},
	{"GFG010", enums.SupportTypeMedianera, "Global", "Av. Hipólito Yrigoyen 8500, Lomas de Zamora", "Lomas de Zamora", enums.ZoneGBASur, -34.7612, -58.4089, 680000, 160000, 85000, 35000, "10m x 5m", true, enums.InventoryStatusAvailable, nil, 38000},
	{"GFG011", enums.SupportTypeEspectacular, "MediaMax", "Autopista Buenos Aires - La Plata Km 15, Quilmes", "Quilmes", enums.ZoneGBASur, -34.7234, -58.2567, 950000, 220000, 120000, 55000, "16m x 7m", true, enums.InventoryStatusAvailable, nil, 95000},
	{"GFG020", enums.SupportTypeMedianera, "Global", "Av. Rivadavia 22000, Morón", "Morón", enums.ZoneGBAOeste, -34.6512, -58.6198, 720000, 170000, 90000, 38000, "11m x 5m", true, enums.InventoryStatusAvailable, nil, 42000},
	{"GFG021", enums.SupportTypeColumna, "VíaPublica SA", "Acceso Oeste Km 22, Ituzaingó", "Ituzaingó", enums.ZoneGBAOeste, -34.6589, -58.6734, 280000, 75000, 40000, 15000, "3.5m x 2.5m", false, enums.InventoryStatusAvailable, nil, 22000},
	{"GFG050", enums.SupportTypeMedianera, "Global", "Av. Corrientes 3200, Abasto", "CABA", enums.ZoneCABA, -34.6037, -58.4116, 1500000, 280000, 140000, 85000, "14m x 7m", true, enums.InventoryStatusAvailable, nil, 180000},
	{"GFG051", enums.SupportTypeEspectacular, "Global", "Av. 9 de Julio 1200, Microcentro", "CABA", enums.ZoneCABA, -34.6045, -58.3816, 2800000, 450000, 220000, 150000, "20m x 10m", true, enums.InventoryStatusAvailable, []string{"2026-02-01", "2026-02-15"}, 350000},
	{"GFG052", enums.SupportTypeColumna, "UrbanMedia", "Av. Santa Fe 2500, Palermo", "CABA", enums.ZoneCABA, -34.5875, -58.4056, 420000, 95000, 55000, 28000, "4.5m x 3m", true, enums.InventoryStatusAvailable, nil, 65000},
	{"GFG053", enums.SupportTypeMedianera, "Global", "Av. Cabildo 1800, Belgrano", "CABA", enums.ZoneCABA, -34.5612, -58.4534, 1100000, 240000, 120000, 68000, "12m x 6m", true, enums.InventoryStatusAvailable, nil, 95000},
	{"GFG054", enums.SupportTypeEspectacular, "OutdoorPlus", "Autopista 25 de Mayo, Constitución", "CABA", enums.ZoneCABA, -34.6278, -58.3834, 1850000, 350000, 180000, 110000, "18m x 9m", true, enums.InventoryStatusReserved, nil, 220000},
}

type demoPartner struct {
	name, email, phone, notes string
}

var demoPartners = []demoPartner{
	{"MediaMax", "comercial@mediamax.com.ar", "+54 11 4555-1234", "Principal proveedor en GBA Sur. Tiempo de respuesta: 24-48hs."},
	{"VíaPublica SA", "ventas@viapublica.com.ar", "+54 11 4333-5678", "Especialistas en columnas y refugios. Descuentos por volumen."},
	{"UrbanMedia", "contacto@urbanmedia.com.ar", "+54 11 4777-9012", "Fuerte presencia en CABA. Trabajan con contratos mínimos de 3 meses."},
	{"OutdoorPlus", "info@outdoorplus.com.ar", "+54 11 4222-3456", "Espectaculares premium en autopistas. Requieren aprobación de diseño."},
}

// InventoryRows returns fresh demo catalog rows, ready to insert.
func InventoryRows() []models.InventoryItem {
	rows := make([]models.InventoryItem, 0, len(demoInventory))
	for _, s := range demoInventory {
		blocked := dbtypes.StringList{}
		blocked = append(blocked, s.blocked...)
		rows = append(rows, models.InventoryItem{
			Code:              s.code,
			Type:              s.kind,
			Owner:             s.owner,
			Address:           s.address,
			City:              s.city,
			Zone:              string(s.zone),
			Lat:               s.lat,
			Lng:               s.lng,
			RentalMonthly:     decimal.NewFromInt(s.rental),
			ProductionCost:    decimal.NewFromInt(s.production),
			InstallationCost:  decimal.NewFromInt(s.install),
			MunicipalTax:      decimal.NewFromInt(s.tax),
			Currency:          enums.CurrencyARS,
			VisibleDimensions: s.dimensions,
			Lighting:          s.lighting,
			Status:            s.status,
			BlockedDates:      blocked,
			BaseImageURL:      BaseImageURL,
			DailyOTS:          s.dailyOTS,
		})
	}
	return rows
}

// PartnerRows returns fresh demo partner rows.
func PartnerRows() []models.Partner {
	rows := make([]models.Partner, 0, len(demoPartners))
	for _, p := range demoPartners {
		phone, notes := p.phone, p.notes
		rows = append(rows, models.Partner{Name: p.name, Email: p.email, Phone: &phone, Notes: &notes})
	}
	return rows
}
