// Package natearth downloads and decodes Natural Earth 1:10m vector datasets.
// Archives are cached on disk: once downloaded, a dataset is never fetched
// again.
package natearth

// BaseURL is the public Natural Earth CDN for 1:10m cultural layers.
const BaseURL = "https://naciscdn.org/naturalearth/10m/cultural/"

type Kind int

const (
	KindPolygon Kind = iota
	KindPoint
	KindLine
)

// Dataset identifies one downloadable Natural Earth layer.
type Dataset struct {
	ID      string
	Name    string
	Archive string
	Kind    Kind
}

// Dataset ids. States is the base layer and is always rendered.
const (
	States    = "states"
	Places    = "places"
	Countries = "countries"
	Roads     = "roads"
)

// Catalog lists the supported datasets in menu order.
var Catalog = []Dataset{
	{ID: States, Name: "Estados/Provincias (contornos)", Archive: "ne_10m_admin_1_states_provinces.zip", Kind: KindPolygon},
	{ID: Places, Name: "Ciudades/Localidades (puntos)", Archive: "ne_10m_populated_places.zip", Kind: KindPoint},
	{ID: Countries, Name: "Países (fronteras)", Archive: "ne_10m_admin_0_countries.zip", Kind: KindPolygon},
	{ID: Roads, Name: "Carreteras principales", Archive: "ne_10m_roads.zip", Kind: KindLine},
}

// Lookup returns the catalog entry for id.
func Lookup(id string) (Dataset, bool) {
	for _, d := range Catalog {
		if d.ID == id {
			return d, true
		}
	}
	return Dataset{}, false
}
