package submstore_test

import (
	"context"
	"testing"

	"github.com/programme-lv/contest/conf"
	"github.com/programme-lv/contest/subm"
	"github.com/programme-lv/contest/subm/submstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenMemory(t *testing.T) {
	repo, err := submstore.Open(context.Background(), conf.Config{SubmStore: conf.StoreMemory}, nil)
	require.NoError(t, err)
	assert.IsType(t, &subm.InMemRepo{}, repo)
}

func TestOpenUnknown(t *testing.T) {
	_, err := submstore.Open(context.Background(), conf.Config{SubmStore: "mongo"}, nil)
	require.ErrorContains(t, err, "mongo")
}
