package types

// Vector is a fixed-length embedding. Its length is the dimension of the model that produced it.
type Vector []float32

// ZeroVector returns a zero vector of the given dimension
func ZeroVector(dim int) Vector {
	if dim < 0 {
		dim = 0
	}
	return make(Vector, dim)
}

// Dimension returns the vector length
func (v Vector) Dimension() int {
	return len(v)
}

// IsZero reports whether every element is zero
func (v Vector) IsZero() bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}
