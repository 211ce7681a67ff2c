package session

// Entry is one session as reported by the store's list operation. Info is the
// opaque metadata blob recorded at creation; the store never parses it.
type Entry struct {
	SessionID      int64
	LastAccessTime int64
	Info           []byte
}
