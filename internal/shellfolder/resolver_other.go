//go:build !windows

package shellfolder

type nopResolver struct{}

// New returns a resolver that never resolves. File-manager introspection is
// a Windows-only feature; saves fall back to the configured directory.
func New() Resolver { return nopResolver{} }

func (nopResolver) Resolve(uintptr) (string, bool) { return "", false }
