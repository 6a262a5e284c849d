package textforecast

// Area is a forecast region from the textforecast areas listing.
type Area struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Polygon string `json:"polygon"`
}

// ParseAreas reads a decoded areas document ({"areas": {"area": ...}}).
// The upstream areaDesc attribute is exposed as Name.
func ParseAreas(doc map[string]any) ([]Area, error) {
	root, ok := doc["areas"].(map[string]any)
	if !ok {
		root = doc
	}

	var raws []any
	switch v := root["area"].(type) {
	case nil:
		return []Area{}, nil
	case map[string]any:
		raws = []any{v}
	case []any:
		raws = v
	default:
		return nil, malformed("area: expected element, got %T", v)
	}

	areas := make([]Area, 0, len(raws))
	for i, raw := range raws {
		m, ok := raw.(map[string]any)
		if !ok {
			return nil, malformed("area[%d]: expected element, got %T", i, raw)
		}
		a := Area{}
		a.ID, _ = m["id"].(string)
		a.Name, _ = m["areaDesc"].(string)
		a.Polygon = polygonText(m["polygon"])
		areas = append(areas, a)
	}
	return areas, nil
}

// polygonText accepts the polygon as a plain element or one carrying
// attributes alongside its text.
func polygonText(v any) string {
	switch p := v.(type) {
	case string:
		return p
	case map[string]any:
		s, _ := p[TextKey].(string)
		return s
	}
	return ""
}
