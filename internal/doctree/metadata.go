package doctree

// Common metadata names.
const (
	MetaResourceName = "resourceName"
	MetaContentType  = "Content-Type"
	MetaTitle        = "title"
	MetaAuthor       = "Author"
	MetaSubject      = "subject"
	MetaKeywords     = "Keywords"
	MetaCreator      = "creator"
	MetaProducer     = "producer"
	MetaCreated      = "created"
	MetaModified     = "modified"
	MetaPageCount    = "xmpTPg:NPages"
)

// MetaEntry is one name/value pair. Entries without a value are kept so the
// source order is stable, but they are never rendered.
type MetaEntry struct {
	Name  string
	Value Optional[string]
}

// Metadata is an ordered list of entries; a name appears at most once.
type Metadata []MetaEntry

// Set stores a present value for name.
func (m *Metadata) Set(name, value string) {
	m.SetOptional(name, Some(value))
}

// SetOptional stores value for name, replacing an earlier entry in place.
func (m *Metadata) SetOptional(name string, value Optional[string]) {
	for i := range *m {
		if (*m)[i].Name == name {
			(*m)[i].Value = value
			return
		}
	}
	*m = append(*m, MetaEntry{Name: name, Value: value})
}

// Get returns the value stored for name.
func (m Metadata) Get(name string) Optional[string] {
	for _, e := range m {
		if e.Name == name {
			return e.Value
		}
	}
	return None[string]()
}
