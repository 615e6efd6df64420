package embeddings

import "github.com/viant/vec/search"

// Normalize scales vec to unit L2 norm in place. It returns ErrZeroVector
// if the vector has zero magnitude.
func Normalize(vec []float32) error {
	if len(vec) == 0 {
		return ErrZeroVector
	}
	mag := search.Float32s(vec).Magnitude()
	if mag == 0 {
		return ErrZeroVector
	}
	for i := range vec {
		vec[i] /= mag
	}
	return nil
}

// Norm returns the L2 norm of vec.
func Norm(vec []float32) float64 {
	if len(vec) == 0 {
		return 0
	}
	return float64(search.Float32s(vec).Magnitude())
}
