package runtime

import "fmt"

// BaseException is embedded by every generated exception struct (§4.5:
// "exception structs additionally inherit the surface's base exception
// type"). Go has no class inheritance, so embedding stands in for it:
// the marker is purely nominal, and Error() is defined per struct since
// it needs that struct's own String().
type BaseException struct{}

// FieldRequiredError reports a Builder.build() call made with a required
// field left unset (§4.5: "reject with an illegal-state error citing the
// field name").
func FieldRequiredError(structName, fieldName string) error {
	return fmt.Errorf("%s: field %s is required", structName, fieldName)
}

// UnionArityError reports a union Builder.build() call whose member count
// isn't exactly one (§4.5: "reject with an illegal-state error mentioning
// the count").
func UnionArityError(structName string, count int) error {
	return fmt.Errorf("%s: exactly one field must be set, got %d", structName, count)
}
