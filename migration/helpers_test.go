package migration

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/0chain/bucketxfer/types"
	"github.com/0chain/bucketxfer/util"
	"github.com/spf13/afero"
)

func TestMain(m *testing.M) {
	util.Fs = afero.NewMemMapFs()
	retryInitialInterval = time.Millisecond
	os.Exit(m.Run())
}

type memObject struct {
	data        []byte
	contentType string
	metadata    map[string]string
}

// memBucket is an in-memory Bucket. Listing tokens are the last key of the
// previous page.
type memBucket struct {
	name string

	mu       sync.Mutex
	objects  map[string]memObject
	failPut  map[string]error
	failList error

	gets int
	puts int
}

func newMemBucket(name string) *memBucket {
	return &memBucket{name: name, objects: map[string]memObject{}, failPut: map[string]error{}}
}

func (b *memBucket) add(key, data, contentType string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = memObject{data: []byte(data), contentType: contentType, metadata: map[string]string{"origin": b.name}}
}

func (b *memBucket) get(key string) (memObject, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	o, ok := b.objects[key]
	return o, ok
}

func (b *memBucket) Name() string { return b.name }

func (b *memBucket) ListPage(_ context.Context, token string, pageSize int) (*types.ObjectPage, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failList != nil {
		return nil, b.failList
	}

	keys := make([]string, 0, len(b.objects))
	for k := range b.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	start := 0
	if token != "" {
		start = sort.SearchStrings(keys, token)
		if start < len(keys) && keys[start] == token {
			start++
		}
	}
	end := start + pageSize
	if end > len(keys) {
		end = len(keys)
	}

	page := &types.ObjectPage{}
	for _, k := range keys[start:end] {
		page.Objects = append(page.Objects, types.ObjectRecord{Key: k, Size: int64(len(b.objects[k].data)), ETag: `"` + k + `"`})
	}
	if end < len(keys) {
		page.NextToken = keys[end-1]
	}
	return page, nil
}

func (b *memBucket) Exists(_ context.Context, key string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.objects[key]
	return ok, nil
}

func (b *memBucket) GetObject(_ context.Context, key string) (*types.Object, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.gets++
	o, ok := b.objects[key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return &types.Object{
		Body:          io.NopCloser(bytes.NewReader(o.data)),
		ContentType:   o.contentType,
		ContentLength: int64(len(o.data)),
		Metadata:      o.metadata,
	}, nil
}

func (b *memBucket) PutObject(_ context.Context, key string, body io.ReadSeeker, size int64, contentType string, metadata map[string]string) error {
	data, err := io.ReadAll(body)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failPut[key]; err != nil {
		return err
	}
	b.puts++
	b.objects[key] = memObject{data: data, contentType: contentType, metadata: metadata}
	return nil
}

func records(keys ...string) []types.ObjectRecord {
	recs := make([]types.ObjectRecord, 0, len(keys))
	for _, k := range keys {
		recs = append(recs, types.ObjectRecord{Key: k})
	}
	return recs
}
