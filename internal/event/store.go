package event

// Store is the persisted document: every event, sorted by date.
type Store struct {
	Events []Event `json:"event"`
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{Events: make([]Event, 0)}
}

// Len returns the number of events.
func (s *Store) Len() int {
	return len(s.Events)
}

// Insert appends an event and re-sorts the list.
func (s *Store) Insert(e Event) {
	s.Events = append(s.Events, e)
	Sort(s.Events)
}

// RemoveAt deletes the event at index and returns it.
func (s *Store) RemoveAt(index int) (Event, error) {
	if index < 0 {
		return Event{}, &Error{Kind: KindUsage, Msg: "index out of range"}
	}
	if index >= len(s.Events) {
		return Event{}, &Error{Kind: KindIndex, Msg: "index out of range"}
	}
	removed := s.Events[index]
	s.Events = append(s.Events[:index], s.Events[index+1:]...)
	return removed, nil
}
