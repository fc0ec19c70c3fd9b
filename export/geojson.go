package export

import (
	"github.com/bgraf/trackheat/geotrack"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// GeoJSON builds a feature collection with one LineString per track. A track
// with a single point becomes a Point feature. Colors may be nil, in which
// case a fresh set is used.
func GeoJSON(tracks []*geotrack.Track, colors *TrackColors) *geojson.FeatureCollection {
	if colors == nil {
		colors = NewTrackColors()
	}

	fc := geojson.NewFeatureCollection()
	for _, t := range tracks {
		if t.Len() == 0 {
			continue
		}

		f := geojson.NewFeature(geometry(t))
		f.Properties["filename"] = t.Filename()
		f.Properties["distanceKm"] = t.DistanceKm()
		f.Properties["pointCount"] = t.Len()
		f.Properties["stroke"] = colors.HexColor(t.Filename())

		fc.Append(f)
	}

	return fc
}

func geometry(t *geotrack.Track) orb.Geometry {
	points := t.Points()
	if len(points) == 1 {
		return orb.Point{points[0].Lon, points[0].Lat}
	}

	ls := make(orb.LineString, len(points))
	for i, p := range points {
		ls[i] = orb.Point{p.Lon, p.Lat}
	}
	return ls
}
