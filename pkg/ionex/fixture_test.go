package ionex

import (
	"fmt"
	"strings"
)

// fixtureParams describes a minimal, structurally valid IONEX stream
// built for tests: a header plus one uniform-value map per entry in
// mapValues, each map separated by intervalSeconds from the previous
// one, starting at epoch (2020, 1, 1, 0, 0, 0).
type fixtureParams struct {
	lon1, lon2, dlon float64
	lat1, lat2, dlat float64
	exponent         int
	intervalSeconds  int
	mapValues        []int
}

// headerField pads a record's 60-column value field to exactly 60
// characters and appends the keyword, matching the layout the decoder's
// column-anchored parser expects (val := line[:60]; key := line[60:]).
func headerField(val, key string) string {
	if len(val) < 60 {
		val = val + strings.Repeat(" ", 60-len(val))
	}
	return val[:60] + key
}

func triple(a, b, c float64) string {
	return "  " + fmt.Sprintf("%6.1f%6.1f%6.1f", a, b, c)
}

func datetime(year, month, day, hour, minute, second int) string {
	return fmt.Sprintf("%6d%6d%6d%6d%6d%6d", year, month, day, hour, minute, second)
}

func buildFixture(p fixtureParams) string {
	xsize := int((p.lon2-p.lon1)/p.dlon) + 1
	ysize := int(round((p.lat2-p.lat1)/p.dlat)) + 1

	var b strings.Builder

	lastIdx := len(p.mapValues) - 1
	lastEpochSeconds := lastIdx * p.intervalSeconds
	lastMinute := (lastEpochSeconds / 60) % 60
	lastHour := lastEpochSeconds / 3600

	b.WriteString(headerField(fmt.Sprintf("%8s", "1.0")+strings.Repeat(" ", 12)+"I", "IONEX VERSION / TYPE") + "\n")
	b.WriteString(headerField(datetime(2020, 1, 1, 0, 0, 0), "EPOCH OF FIRST MAP") + "\n")
	b.WriteString(headerField(datetime(2020, 1, 1, lastHour, lastMinute, lastEpochSeconds%60), "EPOCH OF LAST MAP") + "\n")
	b.WriteString(headerField(fmt.Sprintf("%6d", p.intervalSeconds), "INTERVAL") + "\n")
	b.WriteString(headerField(fmt.Sprintf("%6d", len(p.mapValues)), "# OF MAPS IN FILE") + "\n")
	b.WriteString(headerField(fmt.Sprintf("%6d", 2), "MAP DIMENSION") + "\n")
	b.WriteString(headerField(triple(0, 0, 0), "HGT1 / HGT2 / DHGT") + "\n")
	b.WriteString(headerField(triple(p.lat1, p.lat2, p.dlat), "LAT1 / LAT2 / DLAT") + "\n")
	b.WriteString(headerField(triple(p.lon1, p.lon2, p.dlon), "LON1 / LON2 / DLON") + "\n")
	b.WriteString(headerField(fmt.Sprintf("%10d", p.exponent), "EXPONENT") + "\n")
	b.WriteString(headerField("", "END OF HEADER") + "\n")

	for m, v := range p.mapValues {
		epSeconds := m * p.intervalSeconds
		hour := epSeconds / 3600
		minute := (epSeconds / 60) % 60
		second := epSeconds % 60

		b.WriteString(headerField(fmt.Sprintf("%6d", m+1), "START OF TEC MAP") + "\n")
		b.WriteString(headerField(datetime(2020, 1, 1, hour, minute, second), "EPOCH OF CURRENT MAP") + "\n")

		for j := 0; j < ysize; j++ {
			lat := p.lat1 + float64(j)*p.dlat
			b.WriteString(headerField("  "+fmt.Sprintf("%6.1f%6.1f%6.1f%6.1f%6.1f", lat, p.lon1, p.lon2, p.dlon, 0.0), "LAT/LON1/LON2/DLON/H") + "\n")

			written := 0
			for written < xsize {
				count := xsize - written
				if count > maxTECPerLine {
					count = maxTECPerLine
				}
				var line strings.Builder
				for k := 0; k < count; k++ {
					fmt.Fprintf(&line, "%5d", v)
				}
				b.WriteString(line.String() + "\n")
				written += count
			}
		}

		b.WriteString(headerField("", "END OF TEC MAP") + "\n")
	}

	return b.String()
}

func round(f float64) float64 {
	if f < 0 {
		return float64(int(f - 0.5))
	}
	return float64(int(f + 0.5))
}
