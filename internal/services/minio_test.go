package services

import (
	"context"
	"mime/multipart"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageKey(t *testing.T) {
	key, err := ImageKey(42, "image/png")
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^products/42/[0-9a-f-]{36}\.png$`), key)

	_, err = ImageKey(42, "application/pdf")
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestNilImageStore(t *testing.T) {
	var store *ImageStore
	assert.Nil(t, NewImageStore(nil, "products"))

	_, err := store.Upload(context.Background(), 1, &multipart.FileHeader{Size: 10})
	assert.ErrorIs(t, err, ErrImageStoreDisabled)
	assert.NoError(t, store.Remove(context.Background(), "products/1/x.png"))
	assert.Equal(t, "products/1/x.png", store.URL(context.Background(), "products/1/x.png"))
}
