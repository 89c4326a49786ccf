package utils

// SafeDeref возвращает значение по указателю или нулевое значение типа.
// Удобно для необязательных вложенных объектов из ответов API.
func SafeDeref[T any](ptr *T) T {
	if ptr == nil {
		var zero T
		return zero
	}
	return *ptr
}

func ToPtr[T any](v T) *T {
	return &v
}
