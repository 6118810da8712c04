// Command-line tool for inspecting IONEX and ANTEX files.
package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/golang/glog"
	"github.com/urfave/cli/v2"

	"github.com/dlr-gnss/ionexgo/pkg/antex"
	"github.com/dlr-gnss/ionexgo/pkg/calendar"
	"github.com/dlr-gnss/ionexgo/pkg/ionex"
)

func main() {
	app := &cli.App{
		Version:   "v0.0.1",
		Compiled:  time.Now(),
		HelpName:  "ionexgo",
		Usage:     "IONEX/ANTEX toolkit",
		ArgsUsage: "[args and such]",
		Commands: []*cli.Command{
			{
				Name:      "info",
				Usage:     "print an IONEX file's header metadata",
				ArgsUsage: "<file>",
				Action:    infoAction,
			},
			{
				Name:      "tec",
				Usage:     "query the TEC value at a point, optionally at a specific epoch",
				ArgsUsage: "<file> <lon> <lat> [epoch YYYY-MM-DDThh:mm:ss]",
				Action:    tecAction,
			},
			{
				Name:      "antennas",
				Usage:     "list the antennas recorded in an ANTEX file",
				ArgsUsage: "<file>",
				Action:    antennasAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		glog.Exitf("ionexgo: %v", err)
	}
}

func infoAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("info needs exactly one IONEX file", 1)
	}
	path := c.Args().Get(0)

	dec, err := ionex.Open(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("opening %s: %v", path, err), 1)
	}
	defer dec.Close()

	glog.Infof("parsed header for %s", path)
	fmt.Fprintf(c.App.Writer, "first epoch:  %s\n", dec.FirstEpoch())
	fmt.Fprintf(c.App.Writer, "last epoch:   %s\n", dec.LastEpoch())
	fmt.Fprintf(c.App.Writer, "interval:     %ds\n", dec.Interval())
	fmt.Fprintf(c.App.Writer, "map count:    %d\n", dec.MapCount())
	fmt.Fprintf(c.App.Writer, "exponent:     %d\n", dec.Exponent())
	return nil
}

func tecAction(c *cli.Context) error {
	if c.NArg() < 3 {
		return cli.Exit("tec needs <file> <lon> <lat> and optionally an epoch", 1)
	}
	path := c.Args().Get(0)
	lon, err := strconv.ParseFloat(c.Args().Get(1), 64)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid longitude: %v", err), 1)
	}
	lat, err := strconv.ParseFloat(c.Args().Get(2), 64)
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid latitude: %v", err), 1)
	}

	dec, err := ionex.Open(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("opening %s: %v", path, err), 1)
	}
	defer dec.Close()

	point := ionex.Point{Lon: lon, Lat: lat}

	if c.NArg() == 3 {
		epochs, values, err := dec.GetTecAt([]ionex.Point{point})
		if err != nil {
			return cli.Exit(fmt.Sprintf("get_tec_at: %v", err), 1)
		}
		for i, ep := range epochs {
			physical := values[0][i] * pow10(dec.Exponent())
			fmt.Fprintf(c.App.Writer, "%s  %v TECU\n", ep, physical)
		}
		return nil
	}

	at, err := parseEpoch(c.Args().Get(3))
	if err != nil {
		return cli.Exit(fmt.Sprintf("invalid epoch: %v", err), 1)
	}
	epochs, values, err := dec.Interpolate([]ionex.Point{point}, nil, nil, nil)
	if err != nil {
		return cli.Exit(fmt.Sprintf("interpolate: %v", err), 1)
	}
	for i, ep := range epochs {
		if ep.Equal(at) {
			physical := values[0][i] * pow10(dec.Exponent())
			fmt.Fprintf(c.App.Writer, "%s  %v TECU\n", ep, physical)
			return nil
		}
	}
	return cli.Exit(fmt.Sprintf("no output epoch at the file's native interval matched %s", at), 1)
}

func antennasAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("antennas needs exactly one ANTEX file", 1)
	}
	path := c.Args().Get(0)

	f, err := antex.Open(path)
	if err != nil {
		return cli.Exit(fmt.Sprintf("opening %s: %v", path, err), 1)
	}

	for _, ant := range f.Antennas() {
		azi := "no"
		if ant.HasAzimuthPCV() {
			azi = "yes"
		}
		systems := make([]string, 0, len(ant.Frequencies))
		for _, fp := range ant.Frequencies {
			systems = append(systems, fp.System.String())
		}
		fmt.Fprintf(c.App.Writer, "%-20s serial=%-10s freqs=%d azimuth-pcv=%s systems=%s\n",
			ant.Type, ant.Serial, len(ant.Frequencies), azi, strings.Join(systems, ","))
	}
	return nil
}

func parseEpoch(s string) (calendar.Epoch, error) {
	t, err := time.Parse("2006-01-02T15:04:05", strings.TrimSpace(s))
	if err != nil {
		return calendar.Epoch{}, err
	}
	return calendar.FromTime(t), nil
}

func pow10(exp int) float64 {
	v := 1.0
	if exp >= 0 {
		for i := 0; i < exp; i++ {
			v *= 10
		}
		return v
	}
	for i := 0; i < -exp; i++ {
		v /= 10
	}
	return v
}
