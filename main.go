// Package main builds a small demo diagram, prints its netlist and
// optionally exports it as a PNG.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"schematic-core/internal/config"
	"schematic-core/internal/diag"
	"schematic-core/internal/netlist"
	"schematic-core/internal/render"
	"schematic-core/internal/route"
	"schematic-core/internal/series"
	"schematic-core/internal/session"
	"schematic-core/internal/shape"
	"schematic-core/internal/version"
	"schematic-core/pkg/geometry"
)

const appTitle = "schematic-core"

var (
	accentFg  = lipgloss.Color("#7C3AED")
	baseDimFg = lipgloss.Color("#8A94A6")
	borderCol = lipgloss.Color("#243141")

	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
)

func main() {
	out := flag.String("out", "", "Write the diagram to this PNG file")
	prefsPath := flag.String("prefs", config.DefaultPath(), "Preferences file with render options")
	angle := flag.Float64("angle", 90, "Rotation applied to the demo arrow, in degrees")
	debug := flag.Bool("debug", false, "Log core diagnostics to stderr")
	showVersion := flag.Bool("version", false, "Print version and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("%s %s (built %s, commit %s)\n", appTitle, version.Version, version.BuildTime, version.GitCommit)
		return
	}

	log.SetFlags(log.LstdFlags | log.Lshortfile)
	if *debug {
		diag.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
	}

	sess := session.New()
	defer sess.Close()
	backend := render.NewBackend(sess.Scene())
	sess.SetHooks(backend)

	if err := buildDemo(sess, *angle); err != nil {
		log.Fatalf("Failed to build demo: %v", err)
	}

	nets := sess.Netlist()
	fmt.Println(report(sess, nets))

	if *out != "" {
		opts := config.RenderOptionsFrom(config.LoadFrom(*prefsPath))
		if err := backend.SavePNG(*out, opts, nets); err != nil {
			log.Fatalf("Failed to export %s: %v", *out, err)
		}
		log.Printf("Wrote %s", *out)
	}
}

// buildDemo lays out a divider feeding an amplifier, a plotted input
// waveform and a rotated arrow.
func buildDemo(sess *session.Session, angle float64) error {
	r1 := sess.AddComponent("R1", geometry.Pt(20, 20), geometry.Pt(60, 20))
	r2 := sess.AddComponent("R2", geometry.Pt(120, 80), geometry.Pt(120, 120))
	u1 := sess.AddComponent("U1", geometry.Pt(200, 40), geometry.Pt(200, 60), geometry.Pt(260, 50))

	if _, err := sess.Namespace().NewNet("VIN", r1.Points()[0]); err != nil {
		return err
	}
	if _, err := sess.AddWire(r1.Points()[1], r2.Points()[0]); err != nil {
		return err
	}
	tap := sess.Graph().NewPoint(geometry.Pt(160, 40))
	if _, err := sess.AddWire(r2.Points()[0], u1.Points()[0], route.Via{Point: tap, Pinned: true}); err != nil {
		return err
	}

	wave := series.New(0, 4, 8, 4, 0, -4, -8, -4, 0)
	series.NewPlot(sess.Scene(), wave, geometry.Pt(20, 180), 10, 2, sess.Hooks())
	wave.Append(4)

	arrow := sess.AddShape(shape.Polyline, "arrow",
		shape.At(300, 150), shape.At(340, 150), shape.At(330, 140), shape.At(340, 150), shape.At(330, 160))
	rot := sess.AddRotation(geometry.Pt(300, 150))
	rot.AddTarget(arrow)
	rot.SetAngle(angle)

	// Nudge a part so the wires reroute.
	r2.MoveBy(10, 0)
	return nil
}

func report(sess *session.Session, nets []netlist.Labeled) string {
	g := sess.Graph()
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s %s", appTitle, version.Version)))
	b.WriteString("\n")
	var shown []netlist.Labeled
	for _, n := range nets {
		// Unconnected, unnamed terminals are noise in the report.
		if len(n.Terminals) > 1 || !netlist.IsAutoName(n.Name) {
			shown = append(shown, n)
		}
	}
	b.WriteString(dimStyle.Render(fmt.Sprintf("%d shapes, %d nets, %d connected",
		len(sess.Scene().Shapes()), len(nets), len(shown))))
	b.WriteString("\n")
	for _, n := range shown {
		pts := make([]string, len(n.Terminals))
		for i, p := range n.Terminals {
			owner := sess.Scene().Shape(g.Owner(p))
			name := "?"
			if owner != nil {
				name = owner.ClassName()
			}
			pts[i] = fmt.Sprintf("%s%v", name, g.Point(p).Round())
		}
		fmt.Fprintf(&b, "%-8s %s\n", n.Name, strings.Join(pts, "  "))
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
