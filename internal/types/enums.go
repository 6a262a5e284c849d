package types

import "slices"

// ForecastKind selects the Locationforecast product.
type ForecastKind string

const (
	ForecastComplete ForecastKind = "complete"
	ForecastCompact  ForecastKind = "compact"
)

// ForecastKinds lists every supported Locationforecast product. "classic" is
// obsolete upstream and not listed.
var ForecastKinds = []ForecastKind{ForecastComplete, ForecastCompact}

// Valid reports whether k is a supported product.
func (k ForecastKind) Valid() bool { return slices.Contains(ForecastKinds, k) }

// TextForecastKind identifies a Textforecast document.
type TextForecastKind string

const (
	TextLandOverview TextForecastKind = "landoverview"
	TextCoastEN      TextForecastKind = "coast_en"
	TextCoastNO      TextForecastKind = "coast_no"
	TextSeaEN        TextForecastKind = "sea_en"
	TextSeaNO        TextForecastKind = "sea_no"
	TextSeaWMO       TextForecastKind = "sea_wmo"
)

// TextForecastKinds lists every document the Textforecast API serves.
var TextForecastKinds = []TextForecastKind{
	TextLandOverview, TextCoastEN, TextCoastNO, TextSeaEN, TextSeaNO, TextSeaWMO,
}

// Valid reports whether k is a known text forecast.
func (k TextForecastKind) Valid() bool { return slices.Contains(TextForecastKinds, k) }

// IsMarine reports whether the document is a sea forecast. Sea forecasts carry
// a single period whose groups are flattened together.
func (k TextForecastKind) IsMarine() bool {
	switch k {
	case TextSeaEN, TextSeaNO, TextSeaWMO:
		return true
	}
	return false
}

// TextAreaType selects the polygon set returned by textforecast/2.0/areas.
type TextAreaType string

const (
	TextAreaLand  TextAreaType = "land"
	TextAreaSea   TextAreaType = "sea"
	TextAreaCoast TextAreaType = "coast"
)

var TextAreaTypes = []TextAreaType{TextAreaLand, TextAreaSea, TextAreaCoast}

func (t TextAreaType) Valid() bool { return slices.Contains(TextAreaTypes, t) }

// RadarArea is a radar composite coverage area.
type RadarArea string

var RadarAreas = []RadarArea{
	"central_norway",
	"eastern_norway",
	"finnmark",
	"nordic",
	"nordland",
	"northern_nordland",
	"northwestern_norway",
	"norway",
	"southeastern_norway",
	"southern_nordland",
	"southern_norway",
	"southwestern_norway",
	"troms",
	"western_norway",
	"xband",
}

func (a RadarArea) Valid() bool { return slices.Contains(RadarAreas, a) }

// RadarType is a radar product.
type RadarType string

// RadarReflectivity is the default radar product.
const RadarReflectivity RadarType = "reflectivity"

var RadarTypes = []RadarType{
	"5level_reflectivity",
	"accumulated_01h",
	"accumulated_02h",
	"accumulated_03h",
	"accumulated_04h",
	"accumulated_05h",
	"accumulated_06h",
	"accumulated_07h",
	"accumulated_08h",
	"accumulated_09h",
	"accumulated_10h",
	"accumulated_11h",
	"accumulated_12h",
	"accumulated_13h",
	"accumulated_14h",
	"accumulated_15h",
	"accumulated_16h",
	"accumulated_17h",
	"accumulated_18h",
	"accumulated_19h",
	"accumulated_20h",
	"accumulated_21h",
	"accumulated_22h",
	"accumulated_23h",
	"accumulated_24h",
	"fir_preciptype",
	"lx_reflectivity",
	"preciptype",
	"reflectivity",
}

func (t RadarType) Valid() bool { return slices.Contains(RadarTypes, t) }

// RadarContent selects a still image or an animation.
type RadarContent string

const (
	RadarImage     RadarContent = "image"
	RadarAnimation RadarContent = "animation"
)

var RadarContents = []RadarContent{RadarImage, RadarAnimation}

func (c RadarContent) Valid() bool { return slices.Contains(RadarContents, c) }

// SatelliteArea is a Geosatellite coverage area.
type SatelliteArea string

var SatelliteAreas = []SatelliteArea{"africa", "atlantic_ocean", "europe", "global", "mediterranean"}

func (a SatelliteArea) Valid() bool { return slices.Contains(SatelliteAreas, a) }

// SatelliteImageType is the spectral channel of a satellite image.
type SatelliteImageType string

const (
	SatelliteInfrared SatelliteImageType = "infrared"
	SatelliteVisible  SatelliteImageType = "visible"
)

var SatelliteImageTypes = []SatelliteImageType{SatelliteInfrared, SatelliteVisible}

func (t SatelliteImageType) Valid() bool { return slices.Contains(SatelliteImageTypes, t) }

// SatelliteSize is the image resolution; small returns thumbnails.
type SatelliteSize string

const (
	SatelliteNormal SatelliteSize = "normal"
	SatelliteSmall  SatelliteSize = "small"
)

var SatelliteSizes = []SatelliteSize{SatelliteNormal, SatelliteSmall}

func (s SatelliteSize) Valid() bool { return slices.Contains(SatelliteSizes, s) }
