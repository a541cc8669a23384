package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserQuery_Normalize_Defaults(t *testing.T) {
	q := UserQuery{Username: "  alice "}.Normalize()

	assert.Equal(t, "alice", q.Username)
	assert.Equal(t, int64(1), q.Page.Current)
	assert.Equal(t, int64(DefaultPageSize), q.Page.Size)
}

func TestUserQuery_Normalize_ClampsSize(t *testing.T) {
	q := UserQuery{Page: &Pagination{Current: 3, Size: 5000}}.Normalize()

	assert.Equal(t, int64(3), q.Page.Current)
	assert.Equal(t, int64(MaxPageSize), q.Page.Size)
}

func TestUserQuery_Offset(t *testing.T) {
	assert.Equal(t, 0, UserQuery{}.Offset())
	assert.Equal(t, 20, UserQuery{Page: &Pagination{Current: 3, Size: 10}}.Offset())
}

func TestUserQuery_CacheKey(t *testing.T) {
	a := UserQuery{Username: "alice"}
	b := UserQuery{Username: " alice", Page: &Pagination{Current: 1, Size: DefaultPageSize}}
	c := UserQuery{Username: "bob"}

	assert.Equal(t, a.CacheKey(), b.CacheKey(), "equivalent queries share a key")
	assert.NotEqual(t, a.CacheKey(), c.CacheKey())
	assert.NotEqual(t, a.CacheKey(), UserQuery{Username: "alice", Page: &Pagination{Current: 2}}.CacheKey())
}

func TestNewPage(t *testing.T) {
	p := NewPage[int](nil, 41, Pagination{Current: 2, Size: 20})

	assert.Equal(t, []int{}, p.Records)
	assert.Equal(t, int64(3), p.Pages)
	assert.Equal(t, int64(2), p.Current)
}

func TestDescription_IsDeleted(t *testing.T) {
	var d Description
	assert.False(t, d.IsDeleted())
	d.Deleted = 1
	assert.True(t, d.IsDeleted())
}
