package runtime

// Ref takes the address of a value produced by a non-addressable
// expression (a composite literal field, a function result), the way
// generated code needs to when assigning a scalar or enum constant to
// its pointer-typed surface field.
func Ref[T any](v T) *T { return &v }
