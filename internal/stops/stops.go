// Package stops holds the fixed list of stops offered on the dashboard.
package stops

import (
	"sort"

	"transit_dashboard/internal/models"
)

// Each ID lists the RBL numbers of all platforms at the stop.
var catalogue = []models.Stop{
	{ID: "4111,4116", Name: "Stephansplatz (U1/U3)"},
	{ID: "4205,4210", Name: "Karlsplatz (U1/U2/U4)"},
	{ID: "4103,4118", Name: "Schwedenplatz (U1/U4)"},
	{ID: "4607,4612", Name: "Praterstern (U1/U2)"},
	{ID: "4920,4921", Name: "Westbahnhof (U3/U6)"},
	{ID: "4127,4132", Name: "Volkstheater (U2/U3)"},
	{ID: "4401,4416", Name: "Schottenring (U2/U4)"},
	{ID: "4137,4142", Name: "Kaisermühlen-VIC (U1)"},
	{ID: "4903,4914", Name: "Längenfeldgasse (U4/U6)"},
	{ID: "4116", Name: "Stephansplatz U1 Richtung Leopoldau"},
}

// All returns the catalogue sorted by name. The slice is a copy.
func All() []models.Stop {
	out := make([]models.Stop, len(catalogue))
	copy(out, catalogue)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the stop with exactly this ID.
func Lookup(id string) (models.Stop, bool) {
	for _, s := range catalogue {
		if s.ID == id {
			return s, true
		}
	}
	return models.Stop{}, false
}
