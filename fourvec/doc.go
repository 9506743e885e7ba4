// Package fourvec provides energy-momentum four-vector math for jet clustering.
//
// Vectors are built from detector coordinates (pt, eta, phi) and carried as
// (px, py, pz, E) components in float64, even though event arrays store
// float32: the clustering distance metric is sensitive to cancellation when
// nearly collinear candidates are merged.
//
// # Usage
//
//	v := fourvec.FromPtEtaPhi(25.0, 0.4, -1.2)
//	w := fourvec.FromPtEtaPhi(18.0, 0.5, -1.1)
//	sum := v.Add(w)
//	kt := sum.Perp()
package fourvec
