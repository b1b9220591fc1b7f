// Утилитарные функции общего назначения
package utils

// PtrOrNil возвращает nil для нулевого значения, иначе указатель на v.
// Удобно для JSON-полей, которые должны быть null, а не "".
func PtrOrNil[T comparable](v T) *T {
	var zero T
	if v == zero {
		return nil
	}
	return &v
}
