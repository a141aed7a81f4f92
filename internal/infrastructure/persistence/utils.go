package persistence

// indexOf devuelve la posición del primer elemento que cumple match, o -1.
func indexOf[T any](list []T, match func(*T) bool) int {
	for i := range list {
		if match(&list[i]) {
			return i
		}
	}
	return -1
}
