package serve

import (
	"github.com/bgraf/trackheat/geotrack"
	"github.com/google/uuid"
)

// trackStore assigns ids to parsed tracks and keeps them in upload order.
type trackStore struct {
	byID  map[uuid.UUID]*geotrack.Track
	order []uuid.UUID
}

func newTrackStore() *trackStore {
	return &trackStore{
		byID: make(map[uuid.UUID]*geotrack.Track),
	}
}

func (s *trackStore) Add(track *geotrack.Track) uuid.UUID {
	guid, err := uuid.NewRandom()
	if err != nil {
		panic(err)
	}

	s.byID[guid] = track
	s.order = append(s.order, guid)

	return guid
}

func (s *trackStore) ByID(guid uuid.UUID) (*geotrack.Track, bool) {
	t, ok := s.byID[guid]
	return t, ok
}

func (s *trackStore) Remove(guid uuid.UUID) bool {
	if _, ok := s.byID[guid]; !ok {
		return false
	}

	delete(s.byID, guid)
	for i, id := range s.order {
		if id == guid {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	return true
}

// IDs returns the ids in upload order.
func (s *trackStore) IDs() []uuid.UUID {
	return append([]uuid.UUID(nil), s.order...)
}

func (s *trackStore) Tracks() []*geotrack.Track {
	tracks := make([]*geotrack.Track, len(s.order))
	for i, id := range s.order {
		tracks[i] = s.byID[id]
	}
	return tracks
}
