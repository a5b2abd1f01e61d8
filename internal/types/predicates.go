package types

// Identical reports whether x and y are the same known type.
// An unknown (nil) or invalid type is identical to nothing.
func Identical(x, y *Basic) bool {
	if !IsKnown(x) || !IsKnown(y) {
		return false
	}
	return x.kind == y.kind
}

// IsKnown reports whether T is a usable type, i.e. neither nil nor Invalid.
func IsKnown(T *Basic) bool {
	return T != nil && T.kind != Invalid
}

// AssignableTo reports whether a value of type V may initialize or be
// assigned to a binding of type T. Besides identical types, an int value
// may be assigned to a float64 binding.
func AssignableTo(V, T *Basic) bool {
	if Identical(V, T) {
		return true
	}
	return isInteger(V) && isFloat(T)
}

// isBoolean reports whether T is bool.
func isBoolean(T *Basic) bool {
	return T != nil && T.info&IsBoolean != 0
}

// isInteger reports whether T is int.
func isInteger(T *Basic) bool {
	return T != nil && T.info&IsInteger != 0
}

// isFloat reports whether T is float64.
func isFloat(T *Basic) bool {
	return T != nil && T.info&IsFloat != 0
}

// isNumeric reports whether T is int or float64.
func isNumeric(T *Basic) bool {
	return T != nil && T.info&IsNumeric != 0
}

// isString reports whether T is string.
func isString(T *Basic) bool {
	return T != nil && T.info&IsString != 0
}

// Promote returns the result type of an arithmetic operation on x and y:
// float64 if either operand is float64, otherwise the left operand's type.
// The result is nil if either operand type is unknown.
func Promote(x, y *Basic) *Basic {
	if !IsKnown(x) || !IsKnown(y) {
		return nil
	}
	if isFloat(x) || isFloat(y) {
		return Typ[Float64]
	}
	return x
}
