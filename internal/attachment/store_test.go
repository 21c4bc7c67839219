package attachment

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	data := []byte("hello")
	ref, err := store.Put(ctx, "notes.txt", "text/plain", data)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "blob:"))
	data[0] = 'j'

	blob, err := store.Get(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(blob.Data))
	assert.Equal(t, "notes.txt", blob.Name)

	_, err = store.Get(ctx, "blob:unknown")
	assert.ErrorIs(t, err, ErrNotFound)
}

type fakeObjects struct {
	objects map[string]*s3.PutObjectInput
	bodies  map[string][]byte
}

func (f *fakeObjects) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	body, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(in.Key)
	f.objects[key] = in
	f.bodies[key] = body
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	key := aws.ToString(in.Key)
	put, ok := f.objects[key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{
		Body:        io.NopCloser(bytes.NewReader(f.bodies[key])),
		ContentType: put.ContentType,
		Metadata:    put.Metadata,
	}, nil
}

func TestS3Store_RoundTrip(t *testing.T) {
	objects := &fakeObjects{objects: map[string]*s3.PutObjectInput{}, bodies: map[string][]byte{}}
	store := NewS3Store(objects, "chat-files")
	ctx := context.Background()

	ref, err := store.Put(ctx, "../../etc/cv.pdf", "application/pdf", []byte("%PDF"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, "s3://chat-files/attachments/"))
	assert.True(t, strings.HasSuffix(ref, "/cv.pdf"))

	blob, err := store.Get(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(blob.Data))
	assert.Equal(t, "application/pdf", blob.MIME)
	assert.Equal(t, "../../etc/cv.pdf", blob.Name)

	_, err = store.Get(ctx, "s3://other-bucket/x")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = store.Get(ctx, "s3://chat-files/attachments/missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
