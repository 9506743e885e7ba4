package fourvec

import "math"

// maxEta caps the pseudorapidity of vectors that are parallel to the beam
// axis (pt == 0 with nonzero pz), where the true value diverges.
const maxEta = 1e5

// Vec is an energy-momentum four-vector in (px, py, pz, E) representation.
// The zero value is the zero four-vector.
type Vec struct {
	Px, Py, Pz, E float64
}

// FromPtEtaPhi builds a massless four-vector from detector coordinates:
//
//	px = pt*cos(phi), py = pt*sin(phi), pz = pt*sinh(eta), E = pt*cosh(eta)
//
// A particle with pt == 0 maps to the zero vector regardless of eta and phi.
func FromPtEtaPhi(pt, eta, phi float64) Vec {
	if pt == 0 {
		return Vec{}
	}
	return Vec{
		Px: pt * math.Cos(phi),
		Py: pt * math.Sin(phi),
		Pz: pt * math.Sinh(eta),
		E:  pt * math.Cosh(eta),
	}
}

// Add returns the component-wise sum of v and w.
func (v Vec) Add(w Vec) Vec {
	return Vec{
		Px: v.Px + w.Px,
		Py: v.Py + w.Py,
		Pz: v.Pz + w.Pz,
		E:  v.E + w.E,
	}
}

// Perp2 returns the squared transverse momentum px² + py².
func (v Vec) Perp2() float64 {
	return v.Px*v.Px + v.Py*v.Py
}

// Perp returns the transverse momentum sqrt(px² + py²).
func (v Vec) Perp() float64 {
	return math.Sqrt(v.Perp2())
}

// Eta returns the pseudorapidity asinh(pz/pt).
// Vectors with pt == 0 return 0 if pz is also 0, otherwise ±maxEta.
func (v Vec) Eta() float64 {
	pt := v.Perp()
	if pt == 0 {
		if v.Pz == 0 {
			return 0
		}
		if v.Pz > 0 {
			return maxEta
		}
		return -maxEta
	}
	return math.Asinh(v.Pz / pt)
}

// Phi returns the azimuthal angle atan2(py, px) in (−π, π].
// The zero vector returns 0.
func (v Vec) Phi() float64 {
	if v.Px == 0 && v.Py == 0 {
		return 0
	}
	return math.Atan2(v.Py, v.Px)
}

// IsZero reports whether v is exactly the zero four-vector.
func (v Vec) IsZero() bool {
	return v.Px == 0 && v.Py == 0 && v.Pz == 0 && v.E == 0
}

// DeltaPhi returns phi1 − phi2 wrapped into (−π, π].
func DeltaPhi(phi1, phi2 float64) float64 {
	d := phi1 - phi2
	for d > math.Pi {
		d -= 2 * math.Pi
	}
	for d <= -math.Pi {
		d += 2 * math.Pi
	}
	return d
}

// DeltaR2 returns the squared angular separation (Δeta)² + (Δphi)²
// between two (eta, phi) directions, with the azimuthal difference wrapped.
func DeltaR2(eta1, phi1, eta2, phi2 float64) float64 {
	dEta := eta1 - eta2
	dPhi := DeltaPhi(phi1, phi2)
	return dEta*dEta + dPhi*dPhi
}
