package antex

import (
	"fmt"
	"strings"
)

func field(val, key string) string {
	if len(val) < 60 {
		val = val + strings.Repeat(" ", 60-len(val))
	}
	return val[:60] + key + "\n"
}

func triple(a, b, c float64) string {
	return "  " + fmt.Sprintf("%6.1f%6.1f%6.1f", a, b, c)
}

func valueRow(vals []float64) string {
	var b strings.Builder
	for _, v := range vals {
		fmt.Fprintf(&b, "%8.2f", v)
	}
	return b.String()
}

// noAziFixture builds a single-antenna, single-frequency ANTEX stream
// with no azimuth-dependent pattern: zenith runs 0..10 in steps of 5
// (3 nodes), NOAZI values 1.0, 2.0, 3.0.
func noAziFixture() string {
	var b strings.Builder
	b.WriteString(field(fmt.Sprintf("%8s", "1.4"), "ANTEX VERSION / SYST"))
	b.WriteString(field("A", "PCV TYPE / REFANT"))
	b.WriteString(field("", "END OF HEADER"))

	b.WriteString(field("", "START OF ANTENNA"))
	b.WriteString(field(fmt.Sprintf("%-20s%-20s", "TESTANT", "12345"), "TYPE / SERIAL NO"))
	b.WriteString(field(triple(0, 10, 5), "ZEN1 / ZEN2 / DZEN"))
	b.WriteString(field(fmt.Sprintf("%8.1f", 0.0), "DAZI"))
	b.WriteString(field(fmt.Sprintf("%6d", 1), "# OF FREQUENCIES"))
	b.WriteString(field("   G01", "START OF FREQUENCY"))
	b.WriteString(field(triple(0, 0, 0), "NORTH / EAST / UP"))
	b.WriteString("NOAZI   " + valueRow([]float64{1.0, 2.0, 3.0}) + "\n")
	b.WriteString(field("", "END OF FREQUENCY"))
	b.WriteString(field("", "END OF ANTENNA"))

	return b.String()
}

// aziFixture builds a single-antenna, single-frequency ANTEX stream
// with an azimuth-dependent pattern: zenith 0..10 step 5 (3 nodes),
// azimuth 0..360 step 180 (3 nodes), uniform azimuth-dependent PCV value
// 5.0 everywhere (the NOAZI row is 1.0, 2.0, 3.0).
func aziFixture() string {
	var b strings.Builder
	b.WriteString(field(fmt.Sprintf("%8s", "1.4"), "ANTEX VERSION / SYST"))
	b.WriteString(field("A", "PCV TYPE / REFANT"))
	b.WriteString(field("", "END OF HEADER"))

	b.WriteString(field("", "START OF ANTENNA"))
	b.WriteString(field(fmt.Sprintf("%-20s%-20s", "TESTANT", "12345"), "TYPE / SERIAL NO"))
	b.WriteString(field(triple(0, 10, 5), "ZEN1 / ZEN2 / DZEN"))
	b.WriteString(field(fmt.Sprintf("%8.1f", 180.0), "DAZI"))
	b.WriteString(field(fmt.Sprintf("%6d", 1), "# OF FREQUENCIES"))
	b.WriteString(field("   G01", "START OF FREQUENCY"))
	b.WriteString(field(triple(0, 0, 0), "NORTH / EAST / UP"))
	b.WriteString("NOAZI   " + valueRow([]float64{1.0, 2.0, 3.0}) + "\n")
	for _, azi := range []float64{0.0, 180.0, 360.0} {
		b.WriteString(fmt.Sprintf("%8.1f", azi) + valueRow([]float64{5.0, 5.0, 5.0}) + "\n")
	}
	b.WriteString(field("", "END OF FREQUENCY"))
	b.WriteString(field("", "END OF ANTENNA"))

	return b.String()
}
