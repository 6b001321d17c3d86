package vecmath

// Vec4 is a 4-dimensional vector of S. Particular's upstream exposes it mainly so homogeneous
// coordinates and padded SIMD lanes have a native vector type; the engine treats it like any
// other dimension.
type Vec4[S Float] struct {
	X, Y, Z, W S
}

func (v Vec4[S]) Add(o Vec4[S]) Vec4[S] {
	return Vec4[S]{v.X + o.X, v.Y + o.Y, v.Z + o.Z, v.W + o.W}
}

func (v Vec4[S]) Sub(o Vec4[S]) Vec4[S] {
	return Vec4[S]{v.X - o.X, v.Y - o.Y, v.Z - o.Z, v.W - o.W}
}

func (v Vec4[S]) Scale(s S) Vec4[S] {
	return Vec4[S]{v.X * s, v.Y * s, v.Z * s, v.W * s}
}

func (v Vec4[S]) Dot(o Vec4[S]) S { return v.X*o.X + v.Y*o.Y + v.Z*o.Z + v.W*o.W }

func (v Vec4[S]) ComponentMin(o Vec4[S]) Vec4[S] {
	return Vec4[S]{min(v.X, o.X), min(v.Y, o.Y), min(v.Z, o.Z), min(v.W, o.W)}
}

func (v Vec4[S]) ComponentMax(o Vec4[S]) Vec4[S] {
	return Vec4[S]{max(v.X, o.X), max(v.Y, o.Y), max(v.Z, o.Z), max(v.W, o.W)}
}

func (v Vec4[S]) ToArray() []S { return []S{v.X, v.Y, v.Z, v.W} }

// FromArray builds a Vec4 from a 4-element axis-ordered slice; the receiver is ignored.
func (Vec4[S]) FromArray(a []S) Vec4[S] { return Vec4[S]{a[0], a[1], a[2], a[3]} }

func (v Vec4[S]) Dim() int { return 4 }

// Vec4FromArray builds a Vec4 from a 4-element axis-ordered slice.
func Vec4FromArray[S Float](a []S) Vec4[S] {
	return Vec4[S]{a[0], a[1], a[2], a[3]}
}
