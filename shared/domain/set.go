package domain

import (
	"encoding/json"
	"slices"
	"strconv"
)

// IdSet is a set of user ids (likes, watchees). On the wire it is an array of
// ids in ascending order, in snapshots it is a presence map (see PresenceMap).
type IdSet map[UserId]struct{}

func NewIdSet(ids ...UserId) IdSet {
	s := make(IdSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

// Toggle adds id when on is true and removes it otherwise. Both directions are
// idempotent.
func (s IdSet) Toggle(id UserId, on bool) {
	if on {
		s[id] = struct{}{}
		return
	}
	delete(s, id)
}

func (s IdSet) Has(id UserId) bool {
	_, ok := s[id]
	return ok
}

func (s IdSet) Sorted() []UserId {
	ids := make([]UserId, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

func (s IdSet) Clone() IdSet {
	c := make(IdSet, len(s))
	for id := range s {
		c[id] = struct{}{}
	}
	return c
}

func (s IdSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Sorted())
}

func (s *IdSet) UnmarshalJSON(data []byte) error {
	var ids []UserId
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewIdSet(ids...)
	return nil
}

// PresenceMap is the snapshot encoding of an IdSet: {"<id>": true}.
type PresenceMap map[string]bool

func (s IdSet) PresenceMap() PresenceMap {
	m := make(PresenceMap, len(s))
	for id := range s {
		m[strconv.FormatInt(id, 10)] = true
	}
	return m
}

// IdSet converts a presence map back, skipping keys that are not ids and
// entries that are not true.
func (m PresenceMap) IdSet() IdSet {
	s := make(IdSet, len(m))
	for k, present := range m {
		if !present {
			continue
		}
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			continue
		}
		s[id] = struct{}{}
	}
	return s
}
