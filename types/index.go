package types

import (
	"io"
	"time"
)

// ObjectRecord is one listing entry. Key is the only identity used across buckets.
type ObjectRecord struct {
	Key          string
	Size         int64
	LastModified time.Time
	ETag         string
	ContentType  string
	Metadata     map[string]string
}

// IsDirectoryMarker reports whether the key denotes an empty "folder" placeholder.
func (o ObjectRecord) IsDirectoryMarker() bool {
	return len(o.Key) > 0 && o.Key[len(o.Key)-1] == '/'
}

// ObjectPage is a single listing response.
type ObjectPage struct {
	Objects []ObjectRecord
	// NextToken is empty when the listing is exhausted.
	NextToken string
}

// Object is a fetched object body with the attributes preserved on copy.
type Object struct {
	Body          io.ReadCloser
	ContentType   string
	ContentLength int64
	Metadata      map[string]string
}
