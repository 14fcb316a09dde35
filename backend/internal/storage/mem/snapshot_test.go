package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A snapshot as the previous version of the server wrote it: no seq, user
// records without an id field, presence maps for likes.
const legacySnapshot = `{
  "users": {
    "12345": {"email": "betty@email.com", "name": "Betty", "password": "cardigan", "image": null, "admin": true},
    "23456": {"email": "aug@email.com", "name": "Augustine", "password": "august", "image": "data:image/png;base64,AAAA", "admin": false}
  },
  "threads": {
    "500000": {"id": 500000, "creatorId": 12345, "title": "b", "isPublic": true, "content": "x", "lock": false,
               "createdAt": "2024-01-01T00:00:00.000Z", "likes": {"23456": true}, "watchees": {}},
    "200000": {"id": 200000, "creatorId": 12345, "title": "a", "isPublic": false, "content": "y", "lock": true,
               "createdAt": "2024-01-01T00:00:00.000Z", "likes": {}, "watchees": {"12345": true}}
  },
  "comments": {
    "300000": {"id": 300000, "creatorId": 23456, "threadId": 500000, "parentCommentId": null, "content": "hi",
               "createdAt": "2024-01-02T00:00:00.000Z", "likes": {"12345": true}}
  }
}`

func TestDecodeLegacySnapshot(t *testing.T) {
	d, err := decode([]byte(legacySnapshot))
	require.NoError(t, err)

	require.Len(t, d.users, 2)
	assert.Equal(t, "Augustine", d.users[23456].Name)
	require.NotNil(t, d.users[23456].Image)
	assert.Equal(t, int64(23456), d.users[23456].Id)

	// legacy threads are sequenced by ascending id
	assert.Equal(t, uint64(1), d.threads[200000].Seq)
	assert.Equal(t, uint64(2), d.threads[500000].Seq)
	assert.Equal(t, uint64(2), d.seq)

	assert.Equal(t, []int64{23456}, d.threads[500000].Likes.Sorted())
	assert.True(t, d.threads[200000].Lock)
	assert.True(t, d.threads[200000].Watchees.Has(12345))

	c := d.comments[300000]
	assert.Nil(t, c.ParentCommentId)
	assert.True(t, c.Likes.Has(12345))
}

func TestEncodeWritesPresenceMaps(t *testing.T) {
	d, err := decode([]byte(legacySnapshot))
	require.NoError(t, err)

	raw, err := encode(d)
	require.NoError(t, err)

	again, err := decode(raw)
	require.NoError(t, err)
	assert.Equal(t, d.threads[500000].Seq, again.threads[500000].Seq)
	assert.Contains(t, string(raw), `"likes": {
        "23456": true
      }`)
}

func TestDecodeRejectsBadKeys(t *testing.T) {
	_, err := decode([]byte(`{"users": {"abc": {}}, "threads": {}, "comments": {}}`))
	assert.Error(t, err)
}
