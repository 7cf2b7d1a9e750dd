package utils

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// StrPtr returns a pointer to s.
func StrPtr(s string) *string {
	return &s
}
