package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMetaMiddlePage(t *testing.T) {
	// 25 items at 10 per page gives pages 1..3
	meta := GetMeta(&Params{Page: 2, Limit: 10}, 25)

	assert.Equal(t, int64(25), meta.Total)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 2, meta.CurrentPage)
	require.NotNil(t, meta.NextPage)
	assert.Equal(t, 3, *meta.NextPage)
	require.NotNil(t, meta.PrevPage)
	assert.Equal(t, 1, *meta.PrevPage)
}

func TestGetMetaFirstPage(t *testing.T) {
	meta := GetMeta(&Params{Page: 1, Limit: 10}, 25)

	assert.Nil(t, meta.PrevPage)
	require.NotNil(t, meta.NextPage)
	assert.Equal(t, 2, *meta.NextPage)
}

func TestGetMetaLastPage(t *testing.T) {
	meta := GetMeta(&Params{Page: 3, Limit: 10}, 25)

	assert.Nil(t, meta.NextPage)
	require.NotNil(t, meta.PrevPage)
	assert.Equal(t, 2, *meta.PrevPage)
}

func TestGetMetaPastTheEnd(t *testing.T) {
	meta := GetMeta(&Params{Page: 4, Limit: 10}, 25)

	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 4, meta.CurrentPage)
	assert.Nil(t, meta.NextPage)
	require.NotNil(t, meta.PrevPage)
	assert.Equal(t, 3, *meta.PrevPage)
}

func TestGetMetaExactMultiple(t *testing.T) {
	meta := GetMeta(&Params{Page: 1, Limit: 10}, 30)

	assert.Equal(t, 3, meta.TotalPages)
}

func TestGetMetaEmpty(t *testing.T) {
	meta := GetMeta(&Params{Page: 1, Limit: 10}, 0)

	assert.Equal(t, 0, meta.TotalPages)
	assert.Nil(t, meta.NextPage)
	assert.Nil(t, meta.PrevPage)
}
