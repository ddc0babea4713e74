package objectclient

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseURI(t *testing.T) {
	cases := []struct {
		in, bucket, key string
	}{
		{"s3://docs/in/a.pdf", "docs", "in/a.pdf"},
		{"s3://docs/", "docs", ""},
		{"s3://docs", "docs", ""},
	}
	for _, tc := range cases {
		bucket, key, err := ParseURI(tc.in)
		require.NoError(t, err, tc.in)
		assert.Equal(t, tc.bucket, bucket, tc.in)
		assert.Equal(t, tc.key, key, tc.in)
	}
}

func TestParseURIRejects(t *testing.T) {
	for _, in := range []string{"docs/a.pdf", "https://docs.s3.amazonaws.com/a", "s3:///a.pdf"} {
		_, _, err := ParseURI(in)
		assert.Error(t, err, in)
	}
	assert.False(t, IsURI("/tmp/a.pdf"))
	assert.True(t, IsURI("s3://b/k"))
}

func TestNewS3ClientValidatesCredentials(t *testing.T) {
	_, err := NewS3Client(t.Context(), S3Options{}, nil)
	assert.ErrorContains(t, err, "AWS_REGION")

	_, err = NewS3Client(t.Context(), S3Options{Region: "us-east-2", AccessKey: "AKIA"}, nil)
	assert.ErrorContains(t, err, "must be set together")
}
