package blobstore

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = params
	f.body, _ = io.ReadAll(params.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestStore_Put(t *testing.T) {
	client := &fakeS3{}
	store := NewWithClient(client, Config{Bucket: "consulting", Region: "eu-central-1"})

	url, err := store.Put(context.Background(), "/calendar/reservations.ics", "text/calendar", []byte("BEGIN:VCALENDAR"))
	require.NoError(t, err)

	assert.Equal(t, "https://consulting.s3.eu-central-1.amazonaws.com/calendar/reservations.ics", url)
	assert.Equal(t, "consulting", aws.ToString(client.input.Bucket))
	assert.Equal(t, "calendar/reservations.ics", aws.ToString(client.input.Key))
	assert.Equal(t, "text/calendar", aws.ToString(client.input.ContentType))
	assert.Equal(t, "BEGIN:VCALENDAR", string(client.body))
}

func TestStore_URL(t *testing.T) {
	withBase := NewWithClient(&fakeS3{}, Config{Bucket: "b", PublicBaseURL: "https://cdn.example.com/"})
	assert.Equal(t, "https://cdn.example.com/feed.ics", withBase.URL("feed.ics"))

	minio := NewWithClient(&fakeS3{}, Config{Bucket: "b", Endpoint: "http://localhost:9000"})
	assert.Equal(t, "http://localhost:9000/b/feed.ics", minio.URL("feed.ics"))
}

func TestStore_PutError(t *testing.T) {
	store := NewWithClient(&fakeS3{err: errors.New("access denied")}, Config{Bucket: "b", Region: "us-east-1"})

	_, err := store.Put(context.Background(), "feed.ics", "text/calendar", nil)
	assert.ErrorIs(t, err, ErrPut)
}
