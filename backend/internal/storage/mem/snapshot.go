package mem

import (
	"cmp"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/itchan-dev/forum/shared/domain"
)

// snapshot is the persisted document. Collections are keyed by the decimal id,
// likes and watchees are presence maps.
type snapshot struct {
	Users    map[string]userRecord    `json:"users"`
	Threads  map[string]threadRecord  `json:"threads"`
	Comments map[string]commentRecord `json:"comments"`
}

type userRecord struct {
	Email    string  `json:"email"`
	Name     string  `json:"name"`
	Password string  `json:"password"`
	Image    *string `json:"image"`
	Admin    bool    `json:"admin"`
}

type threadRecord struct {
	Id        int64              `json:"id"`
	CreatorId int64              `json:"creatorId"`
	Title     string             `json:"title"`
	IsPublic  bool               `json:"isPublic"`
	Content   string             `json:"content"`
	Lock      bool               `json:"lock"`
	CreatedAt time.Time          `json:"createdAt"`
	Likes     domain.PresenceMap `json:"likes"`
	Watchees  domain.PresenceMap `json:"watchees"`
	Seq       uint64             `json:"seq,omitempty"`
}

type commentRecord struct {
	Id              int64              `json:"id"`
	CreatorId       int64              `json:"creatorId"`
	ThreadId        int64              `json:"threadId"`
	ParentCommentId *int64             `json:"parentCommentId"`
	Content         string             `json:"content"`
	CreatedAt       time.Time          `json:"createdAt"`
	Likes           domain.PresenceMap `json:"likes"`
}

func key(id int64) string {
	return strconv.FormatInt(id, 10)
}

func encode(d *data) ([]byte, error) {
	snap := snapshot{
		Users:    make(map[string]userRecord, len(d.users)),
		Threads:  make(map[string]threadRecord, len(d.threads)),
		Comments: make(map[string]commentRecord, len(d.comments)),
	}
	for id, u := range d.users {
		snap.Users[key(id)] = userRecord{
			Email:    u.Email,
			Name:     u.Name,
			Password: u.Password,
			Image:    u.Image,
			Admin:    u.Admin,
		}
	}
	for id, t := range d.threads {
		snap.Threads[key(id)] = threadRecord{
			Id:        t.Id,
			CreatorId: t.CreatorId,
			Title:     t.Title,
			IsPublic:  t.IsPublic,
			Content:   t.Content,
			Lock:      t.Lock,
			CreatedAt: t.CreatedAt,
			Likes:     t.Likes.PresenceMap(),
			Watchees:  t.Watchees.PresenceMap(),
			Seq:       t.Seq,
		}
	}
	for id, c := range d.comments {
		snap.Comments[key(id)] = commentRecord{
			Id:              c.Id,
			CreatorId:       c.CreatorId,
			ThreadId:        c.ThreadId,
			ParentCommentId: c.ParentCommentId,
			Content:         c.Content,
			CreatedAt:       c.CreatedAt,
			Likes:           c.Likes.PresenceMap(),
		}
	}
	return json.MarshalIndent(snap, "", "  ")
}

// decode is the inverse of encode. Map keys are authoritative for ids.
// Threads saved without seq get sequence numbers in ascending id order.
func decode(raw []byte) (*data, error) {
	var snap snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return nil, err
	}

	d := newData()
	for k, r := range snap.Users {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad user id %q: %w", k, err)
		}
		d.users[id] = &domain.User{
			Id:       id,
			Email:    r.Email,
			Name:     r.Name,
			Password: r.Password,
			Image:    r.Image,
			Admin:    r.Admin,
		}
	}

	var unsequenced []*domain.Thread
	for k, r := range snap.Threads {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad thread id %q: %w", k, err)
		}
		t := &domain.Thread{
			Id:        id,
			CreatorId: r.CreatorId,
			Title:     r.Title,
			Content:   r.Content,
			IsPublic:  r.IsPublic,
			Lock:      r.Lock,
			CreatedAt: r.CreatedAt,
			Likes:     r.Likes.IdSet(),
			Watchees:  r.Watchees.IdSet(),
			Seq:       r.Seq,
		}
		d.threads[id] = t
		d.seq = max(d.seq, r.Seq)
		if r.Seq == 0 {
			unsequenced = append(unsequenced, t)
		}
	}
	slices.SortFunc(unsequenced, func(a, b *domain.Thread) int { return cmp.Compare(a.Id, b.Id) })
	for _, t := range unsequenced {
		d.seq++
		t.Seq = d.seq
	}

	for k, r := range snap.Comments {
		id, err := strconv.ParseInt(k, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad comment id %q: %w", k, err)
		}
		d.comments[id] = &domain.Comment{
			Id:              id,
			CreatorId:       r.CreatorId,
			ThreadId:        r.ThreadId,
			ParentCommentId: r.ParentCommentId,
			Content:         r.Content,
			CreatedAt:       r.CreatedAt,
			Likes:           r.Likes.IdSet(),
		}
	}
	return d, nil
}
