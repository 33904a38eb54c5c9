package storage

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/mosaicdev/mosaic-registry/interfaces"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeIPFS emulates the parts of the IPFS HTTP API used by IPFSStore.
type fakeIPFS struct {
	mu      sync.Mutex
	content map[string][]byte
}

func (f *fakeIPFS) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch strings.TrimPrefix(r.URL.Path, "/api/v0/") {
	case "version":
		_ = json.NewEncoder(w).Encode(map[string]string{"Version": "0.29.0", "Commit": "test"})
	case "id":
		_ = json.NewEncoder(w).Encode(map[string]string{"ID": "12D3KooWTest"})
	case "add":
		mr, err := r.MultipartReader()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		var data []byte
		for {
			part, err := mr.NextPart()
			if err != nil {
				break
			}
			if part.Header.Get("Content-Type") == "application/x-directory" {
				continue
			}
			chunk, _ := io.ReadAll(part)
			data = append(data, chunk...)
		}
		sum := sha256.Sum256(data)
		cid := "bafy" + hex.EncodeToString(sum[:8])

		f.mu.Lock()
		f.content[cid] = data
		f.mu.Unlock()

		_ = json.NewEncoder(w).Encode(map[string]string{"Name": cid, "Hash": cid, "Size": "1"})
	case "cat":
		cid := strings.TrimPrefix(r.URL.Query().Get("arg"), "/ipfs/")
		f.mu.Lock()
		data, ok := f.content[cid]
		f.mu.Unlock()
		if !ok {
			w.WriteHeader(http.StatusInternalServerError)
			_ = json.NewEncoder(w).Encode(map[string]interface{}{"Message": "not found", "Code": 0, "Type": "error"})
			return
		}
		_, _ = w.Write(data)
	default:
		http.NotFound(w, r)
	}
}

func TestIPFSStore(t *testing.T) {
	server := httptest.NewServer(&fakeIPFS{content: make(map[string][]byte)})
	defer server.Close()

	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	store := NewIPFSStore(u.Hostname(), u.Port(), discardLogger())
	ctx := context.Background()

	assert.True(t, store.Available(ctx))

	_, err = store.Load(ctx)
	assert.ErrorIs(t, err, interfaces.ErrRecordNotFound)

	record := testRecord()
	require.NoError(t, store.Save(ctx, record))
	assert.NotEmpty(t, store.LastCID())

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, record.Address, loaded.Address)
	assert.Equal(t, record.Network, loaded.Network)
}

func TestIPFSStore_NodeDown(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	server.Close()

	store := NewIPFSStore(u.Hostname(), u.Port(), discardLogger())
	assert.False(t, store.Available(context.Background()))
	assert.ErrorIs(t, store.Save(context.Background(), testRecord()), interfaces.ErrBackendUnavailable)
}
