package math

/**
 * @brief Multiplies in (as a row vector with an implicit w of 1) by matrix.
 *
 * @param in The vector to transform.
 * @param matrix The 4x4 transform.
 * @return The transformed x/y/z and the resulting homogeneous w.
 */
func MultiplyMatrixVector(in Vec3, matrix Mat4) (Vec3, float32) {
	d := &matrix.Data
	out := Vec3{
		X: in.X*d[0] + in.Y*d[4] + in.Z*d[8] + d[12],
		Y: in.X*d[1] + in.Y*d[5] + in.Z*d[9] + d[13],
		Z: in.X*d[2] + in.Y*d[6] + in.Z*d[10] + d[14],
	}
	w := in.X*d[3] + in.Y*d[7] + in.Z*d[11] + d[15]
	return out, w
}

/**
 * @brief Divides x, y and z by w. A w of exactly zero leaves the vector untouched.
 */
func PerspectiveDivide(v Vec3, w float32) Vec3 {
	if w != 0.0 {
		v.X /= w
		v.Y /= w
		v.Z /= w
	}
	return v
}

/**
 * @brief Maps x and y from [-1, 1] to [0, width] and [0, height].
 * z keeps its post-divide depth.
 */
func NDCToScreen(v Vec3, width, height int) Vec3 {
	v.X = (v.X + 1.0) * 0.5 * float32(width)
	v.Y = (v.Y + 1.0) * 0.5 * float32(height)
	return v
}

/**
 * @brief Transforms in by matrix and applies the perspective divide.
 * The result is in normalized device coordinates.
 */
func ProjectToScreen(in Vec3, matrix Mat4) Vec3 {
	out, w := MultiplyMatrixVector(in, matrix)
	return PerspectiveDivide(out, w)
}

/**
 * @brief Same as ProjectToScreen, followed by the viewport mapping into a
 * width x height pixel grid. This is what the renderer calls per vertex.
 */
func ProjectToViewport(in Vec3, matrix Mat4, width, height int) Vec3 {
	return NDCToScreen(ProjectToScreen(in, matrix), width, height)
}

/**
 * @brief Rewrites p through matrix without a perspective divide; the
 * resulting w is dropped. Used for affine mesh edits.
 */
func TransformPoint(p Vec3, matrix Mat4) Vec3 {
	out, _ := MultiplyMatrixVector(p, matrix)
	return out
}
