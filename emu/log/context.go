package log

// A Context adds fields to every entry emitted after its registration.
type Context interface {
	AddLogContext(z *EntryZ)
}

var contexts []Context

// AddContext registers c, its fields are appended to all subsequent entries.
func AddContext(c Context) {
	contexts = append(contexts, c)
}

// RemoveContext unregisters c.
func RemoveContext(c Context) {
	for i := range contexts {
		if contexts[i] == c {
			contexts = append(contexts[:i], contexts[i+1:]...)
			return
		}
	}
}
