package math

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

/**
 * @brief a 4x4 matrix, typically used to represent object transformations.
 * Elements are stored row-major: the element at (row, col) lives at
 * Data[row*4+col]. Vectors are treated as rows multiplied on the left, so
 * translation lives in row 3.
 */
type Mat4 struct {
	/** @brief The matrix elements */
	Data [16]float32
}

/**
 * @brief Represents a single triangle of a mesh. The winding order of the
 * points is preserved as given.
 */
type Triangle struct {
	/** @brief The three corners of the triangle. */
	Points [3]Vec3
}
