package attr

// IsInt accepts int values.
func IsInt(v any) bool {
	_, ok := v.(int)
	return ok
}

// IsBool accepts bool values.
func IsBool(v any) bool {
	_, ok := v.(bool)
	return ok
}

// IsString accepts string values.
func IsString(v any) bool {
	_, ok := v.(string)
	return ok
}

// IntAtLeast accepts int values greater than or equal to lowest.
func IntAtLeast(lowest int) Validator {
	return func(v any) bool {
		i, ok := v.(int)
		return ok && i >= lowest
	}
}

// IsIntSlice accepts []int values.
func IsIntSlice(v any) bool {
	_, ok := v.([]int)
	return ok
}

// All accepts values accepted by every validator.
func All(validators ...Validator) Validator {
	return func(v any) bool {
		for _, fn := range validators {
			if !fn(v) {
				return false
			}
		}

		return true
	}
}
