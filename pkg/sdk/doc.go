// Package georegion computes regions of interest around a point on the WGS84
// ellipsoid: the four corners of a locally axis-aligned square and a
// latitude/longitude bounding box built from four cardinal geodesic probes.
//
//	client, _ := georegion.New(georegion.WithMaxRadius(1000))
//	sq, _ := client.Corners(ctx, 53.5461, -113.4938, 25, georegion.EncloseCircle)
//	for _, c := range sq.Corners {
//	    fmt.Println(c.Name, c.Point.Lat, c.Point.Lon)
//	}
//	box, _ := client.Bounds(ctx, 53.5461, -113.4938, 25)
//
// HalfSide and EncloseCircle produce identical squares: both use the radius as
// the half-side. InscribeInCircle uses radius/√2 so the corners lie on the circle.
//
// Boxes crossing the 0°/360° seam keep Left ≤ Right and set Wrapped; use
// Segments for the true longitude coverage.
package georegion
