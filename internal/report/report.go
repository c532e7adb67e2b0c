// Package report renders squares and bounding boxes as text, CSV or JSON.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kailas-cloud/georegion/internal/domain/geo"
	"github.com/kailas-cloud/georegion/internal/domain/region"
)

// Precision limits for lat/lon decimals.
const (
	DefaultPrecision = 7
	MaxPrecision     = 12
)

// Options selects the sections written after the text table.
type Options struct {
	Precision int
	CSV       bool
	JSON      bool
}

// ClampPrecision bounds p to [0, MaxPrecision].
func ClampPrecision(p int) int {
	return max(0, min(MaxPrecision, p))
}

// WriteSquare writes the text table, then the optional CSV and JSON blocks.
func WriteSquare(w io.Writer, sq region.Square, opts Options) error {
	prec := ClampPrecision(opts.Precision)

	if err := writeSquareTable(w, sq, prec); err != nil {
		return err
	}
	if opts.CSV {
		if _, err := fmt.Fprintln(w); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
		if err := WriteSquareCSV(w, sq, prec); err != nil {
			return err
		}
	}
	if opts.JSON {
		if _, err := fmt.Fprintln(w); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
		if err := WriteJSON(w, SquareToJSON(sq)); err != nil {
			return err
		}
	}
	return nil
}

func writeSquareTable(w io.Writer, sq region.Square, prec int) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Center (lat,lon): %.*f, %.*f\n", prec, sq.Center.Lat, prec, sq.Center.Lon)
	fmt.Fprintf(&b, "Mode           : %s\n", sq.Mode)
	fmt.Fprintf(&b, "Half-side (km) : %.3f  |  Side length: %s  |  Diagonal: %s\n",
		sq.HalfSideKm, km(sq.SideKm()), km(sq.DiagonalKm()))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%-3s  %10s  %10s  %8s  %9s  %12s  %13s\n",
		"Corner", "east_km", "north_km", "bearing", "dist_km", "lat", "lon")
	b.WriteString(strings.Repeat("-", 78) + "\n")
	for _, c := range sq.Corners {
		fmt.Fprintf(&b, "%-3s  %10.3f  %10.3f  %8.3f  %9.3f  %.*f  %.*f\n",
			c.Name, c.Offset.EastKm, c.Offset.NorthKm, c.BearingDeg, c.DistanceKm,
			prec, c.Point.Lat, prec, c.Point.Lon)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write table: %w", err)
	}
	return nil
}

// WriteSquareCSV writes a header and one row per corner.
func WriteSquareCSV(w io.Writer, sq region.Square, precision int) error {
	prec := ClampPrecision(precision)
	cw := csv.NewWriter(w)

	rows := [][]string{{"name", "east_km", "north_km", "bearing_deg", "distance_km", "lat", "lon"}}
	for _, c := range sq.Corners {
		rows = append(rows, []string{
			string(c.Name),
			strconv.FormatFloat(c.Offset.EastKm, 'f', 6, 64),
			strconv.FormatFloat(c.Offset.NorthKm, 'f', 6, 64),
			strconv.FormatFloat(c.BearingDeg, 'f', 6, 64),
			strconv.FormatFloat(c.DistanceKm, 'f', 6, 64),
			strconv.FormatFloat(c.Point.Lat, 'f', prec, 64),
			strconv.FormatFloat(c.Point.Lon, 'f', prec, 64),
		})
	}

	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// WriteBounds writes a bounding box summary.
func WriteBounds(w io.Writer, center geo.Point, radiusKm float64, b region.BoundingBox, precision int) error {
	prec := ClampPrecision(precision)

	var sb strings.Builder
	fmt.Fprintf(&sb, "Center (lat,lon): %.*f, %.*f\n", prec, center.Lat, prec, center.Lon)
	fmt.Fprintf(&sb, "Radius         : %s\n", km(radiusKm))
	fmt.Fprintf(&sb, "TOP    = %.*f\n", prec, b.Top)
	fmt.Fprintf(&sb, "BOTTOM = %.*f\n", prec, b.Bottom)
	fmt.Fprintf(&sb, "LEFT   = %.*f\n", prec, b.Left)
	fmt.Fprintf(&sb, "RIGHT  = %.*f\n", prec, b.Right)
	if b.Wrapped {
		fmt.Fprintf(&sb, "WRAPPED: box crosses 0/360, west edge %.*f, east edge %.*f\n",
			prec, b.West(), prec, b.East())
	}

	if _, err := io.WriteString(w, sb.String()); err != nil {
		return fmt.Errorf("write bounds: %w", err)
	}
	return nil
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

func km(x float64) string {
	return fmt.Sprintf("%.3f km", x)
}
