package math

import (
	m "math"
)

const (
	/** @brief An approximate representation of PI. */
	K_PI float32 = 3.14159265358979323846
	/** @brief A multiplier used to convert degrees to radians. */
	K_DEG2RAD_MULTIPLIER float32 = K_PI / 180.0
	/** @brief A multiplier used to convert radians to degrees. */
	K_RAD2DEG_MULTIPLIER float32 = 180.0 / K_PI
	/** @brief Smallest positive number where 1.0 + FLOAT_EPSILON != 0 */
	K_FLOAT_EPSILON float32 = 1.192092896e-07
)

/**
 * Note that these are here in order to prevent having to import the
 * entire standard math package everywhere.
 */
func ksin(x float32) float32 {
	return float32(m.Sin(float64(x)))
}

func kcos(x float32) float32 {
	return float32(m.Cos(float64(x)))
}

func ktan(x float32) float32 {
	return float32(m.Tan(float64(x)))
}

func kabs(x float32) float32 {
	return float32(m.Abs(float64(x)))
}

// ------------------------------------------
// Vector 3
// ------------------------------------------

/**
 * @brief Creates and returns a new 3-element vector using the supplied values.
 *
 * @param x The x value.
 * @param y The y value.
 * @param z The z value.
 * @return A new 3-element vector.
 */
func NewVec3(x, y, z float32) Vec3 {
	return Vec3{
		X: x,
		Y: y,
		Z: z,
	}
}

/**
 * @brief Creates and returns a 3-component vector with all components set to 0.0f.
 */
func NewVec3Zero() Vec3 {
	return Vec3{0.0, 0.0, 0.0}
}

/**
 * @brief Adds other to v and returns a copy of the result.
 *
 * @param other The second vector.
 * @return The resulting vector.
 */
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{
		v.X + other.X,
		v.Y + other.Y,
		v.Z + other.Z}
}

/**
 * @brief Subtracts other from v and returns a copy of the result.
 *
 * @param other The second vector.
 * @return The resulting vector.
 */
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{
		v.X - other.X,
		v.Y - other.Y,
		v.Z - other.Z}
}

/**
 * @brief Multiplies all elements of v by scalar and returns a copy of the result.
 *
 * @param scalar The scalar value.
 * @return A copy of the resulting vector.
 */
func (v Vec3) MulScalar(scalar float32) Vec3 {
	return Vec3{
		v.X * scalar,
		v.Y * scalar,
		v.Z * scalar}
}

/**
 * @brief Compares all elements of v and other and ensures the difference
 * is less than tolerance.
 *
 * @param other The second vector.
 * @param tolerance The difference tolerance. Typically K_FLOAT_EPSILON or similar.
 * @return True if within tolerance; otherwise false.
 */
func (v Vec3) Compare(other Vec3, tolerance float32) bool {
	if kabs(v.X-other.X) > tolerance {
		return false
	}

	if kabs(v.Y-other.Y) > tolerance {
		return false
	}

	if kabs(v.Z-other.Z) > tolerance {
		return false
	}

	return true
}

// ------------------------------------------
// Mat4
// ------------------------------------------

/**
 * @brief Returns the element stored at the given row and column.
 * No bounds checking beyond what the backing array does.
 */
func (mt Mat4) Get(row, col int) float32 {
	return mt.Data[row*4+col]
}

/**
 * @brief Stores value at the given row and column.
 */
func (mt *Mat4) Set(row, col int, value float32) {
	mt.Data[row*4+col] = value
}

/**
 * @brief Creates and returns an identity matrix:
 *
 * {
 *   {1, 0, 0, 0},
 *   {0, 1, 0, 0},
 *   {0, 0, 1, 0},
 *   {0, 0, 0, 1}
 * }
 *
 * @return A new identity matrix
 */
func NewMat4Identity() Mat4 {
	out_matrix := Mat4{}
	out_matrix.Data[0] = 1.0
	out_matrix.Data[5] = 1.0
	out_matrix.Data[10] = 1.0
	out_matrix.Data[15] = 1.0
	return out_matrix
}

/**
 * @brief Returns the result of multiplying mt and other. Every output cell
 * is the dot product of a row of mt with a column of other.
 *
 * @param other The second matrix to be multiplied.
 * @return The result of the matrix multiplication.
 */
func (mt Mat4) Mul(other Mat4) Mat4 {
	out_matrix := Mat4{}

	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			sum := float32(0)
			for i := 0; i < 4; i++ {
				sum += mt.Data[row*4+i] * other.Data[i*4+col]
			}
			out_matrix.Data[row*4+col] = sum
		}
	}

	return out_matrix
}

/**
 * @brief Compares every element of mt and other against tolerance.
 *
 * @return True if all elements are within tolerance; otherwise false.
 */
func (mt Mat4) Compare(other Mat4, tolerance float32) bool {
	for i := 0; i < 16; i++ {
		if kabs(mt.Data[i]-other.Data[i]) > tolerance {
			return false
		}
	}
	return true
}

/**
 * @brief Creates and returns a perspective matrix. Typically used to render 3d scenes.
 * z is mapped into [0, far/(far-near)] and row 2 col 3 carries the input z
 * into w, which is what makes the later perspective divide necessary.
 * Degenerate fov/near/far values are not validated.
 *
 * @param fov_degrees The field of view in degrees.
 * @param aspect_ratio The aspect ratio (height / width).
 * @param near_clip The near clipping plane distance.
 * @param far_clip The far clipping plane distance.
 * @return A new perspective matrix.
 */
func NewMat4Projection(fov_degrees, aspect_ratio, near_clip, far_clip float32) Mat4 {
	fov_tan_inv := 1.0 / ktan(DegToRad(fov_degrees)*0.5)
	out_matrix := Mat4{}
	out_matrix.Set(0, 0, aspect_ratio*fov_tan_inv)
	out_matrix.Set(1, 1, fov_tan_inv)
	out_matrix.Set(2, 2, far_clip/(far_clip-near_clip))
	out_matrix.Set(3, 2, (-far_clip*near_clip)/(far_clip-near_clip))
	out_matrix.Set(2, 3, 1.0)
	out_matrix.Set(3, 3, 0.0)
	return out_matrix
}

/**
 * @brief Creates and returns a translation matrix from the given offsets.
 *
 * @return A newly created translation matrix.
 */
func NewMat4Translation(x, y, z float32) Mat4 {
	out_matrix := NewMat4Identity()
	out_matrix.Data[12] = x
	out_matrix.Data[13] = y
	out_matrix.Data[14] = z
	return out_matrix
}

/**
 * @brief Returns a scale matrix using the provided per-axis scale.
 *
 * @return A scale matrix.
 */
func NewMat4Scale(x, y, z float32) Mat4 {
	out_matrix := NewMat4Identity()
	out_matrix.Data[0] = x
	out_matrix.Data[5] = y
	out_matrix.Data[10] = z
	return out_matrix
}

/**
 * @brief Creates a rotation matrix about the x axis. Only the y/z plane is
 * touched. The sign layout is the row-vector one; flipping it reverses
 * the rotation direction of everything downstream.
 *
 * @param angle_radians The x angle in radians.
 * @return A rotation matrix.
 */
func NewMat4RotationX(angle_radians float32) Mat4 {
	out_matrix := NewMat4Identity()
	c := kcos(angle_radians)
	s := ksin(angle_radians)

	out_matrix.Data[5] = c
	out_matrix.Data[6] = s
	out_matrix.Data[9] = -s
	out_matrix.Data[10] = c
	return out_matrix
}

/**
 * @brief Creates a rotation matrix about the y axis.
 *
 * @param angle_radians The y angle in radians.
 * @return A rotation matrix.
 */
func NewMat4RotationY(angle_radians float32) Mat4 {
	out_matrix := NewMat4Identity()
	c := kcos(angle_radians)
	s := ksin(angle_radians)

	out_matrix.Data[0] = c
	out_matrix.Data[2] = s
	out_matrix.Data[8] = -s
	out_matrix.Data[10] = c
	return out_matrix
}

/**
 * @brief Creates a rotation matrix about the z axis.
 *
 * @param angle_radians The z angle in radians.
 * @return A rotation matrix.
 */
func NewMat4RotationZ(angle_radians float32) Mat4 {
	out_matrix := NewMat4Identity()

	c := kcos(angle_radians)
	s := ksin(angle_radians)

	out_matrix.Data[0] = c
	out_matrix.Data[1] = s
	out_matrix.Data[4] = -s
	out_matrix.Data[5] = c
	return out_matrix
}

/**
 * @brief Converts provided degrees to radians.
 *
 * @param degrees The degrees to be converted.
 * @return The amount in radians.
 */
func DegToRad(degrees float32) float32 {
	return degrees * K_DEG2RAD_MULTIPLIER
}

/**
 * @brief Converts provided radians to degrees.
 *
 * @param radians The radians to be converted.
 * @return The amount in degrees.
 */
func RadToDeg(radians float32) float32 {
	return radians * K_RAD2DEG_MULTIPLIER
}
