package tinycmd

// Handler runs a matched command. The Command it receives is valid only for
// the duration of the call.
type Handler interface {
	Handle(cmd *Command) error
}

// HandlerFunc adapts a plain function to the Handler interface.
type HandlerFunc func(cmd *Command) error

// Handle implements Handler.
func (f HandlerFunc) Handle(cmd *Command) error {
	return f(cmd)
}

// Entry maps a command name to its handler.
type Entry struct {
	Name    string
	Handler Handler
}

// Registry is a fixed-capacity, ordered command table. Entries are appended
// during setup and never removed. Names are not required to be unique; the
// first registration of a name wins on lookup.
type Registry struct {
	entries []Entry
	nameLen int
}

func newRegistry(cfg Config) *Registry {
	return &Registry{
		entries: make([]Entry, 0, cfg.ListSize),
		nameLen: cfg.NameLen,
	}
}

// Register appends a command. It fails with ErrNullCommand for a missing
// handler or empty name, ErrNameTooLong for a name longer than the configured
// NameLen, and ErrRegistryFull when every slot is taken.
func (r *Registry) Register(name string, h Handler) error {
	if isNilHandler(h) || name == "" {
		return ErrNullCommand
	}
	if len(name) > r.nameLen {
		return ErrNameTooLong
	}
	if len(r.entries) == cap(r.entries) {
		return ErrRegistryFull
	}
	r.entries = append(r.entries, Entry{Name: name, Handler: h})
	return nil
}

func isNilHandler(h Handler) bool {
	if h == nil {
		return true
	}
	if f, ok := h.(HandlerFunc); ok && f == nil {
		return true
	}
	return false
}

// Lookup returns the first entry whose name matches exactly.
func (r *Registry) Lookup(name string) (Entry, bool) {
	for _, e := range r.entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// lookupBytes is Lookup against a name still inside the line buffer.
func (r *Registry) lookupBytes(name []byte) (Entry, bool) {
	for _, e := range r.entries {
		if equalBytes(name, e.Name) {
			return e, true
		}
	}
	return Entry{}, false
}

// Len returns the number of registered commands.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Cap returns the registry capacity.
func (r *Registry) Cap() int {
	return cap(r.entries)
}

// Entries returns a snapshot of the table in registration order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}
