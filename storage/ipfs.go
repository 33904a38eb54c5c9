package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	shell "github.com/ipfs/go-ipfs-api"
	"github.com/mosaicdev/mosaic-registry/interfaces"
)

// IPFSStore publishes the deployment record to an IPFS node. IPFS content is
// immutable, so every Save yields a new CID; Load reads the last CID written
// by this store.
type IPFSStore struct {
	shell       *shell.Shell
	host        string
	port        string
	log         *slog.Logger
	locationURI string

	mu      sync.Mutex
	lastCID string
}

// NewIPFSStore creates a new IPFS record store connected to the node API at host:port.
func NewIPFSStore(host, port string, log *slog.Logger) *IPFSStore {
	apiURL := fmt.Sprintf("%s:%s", host, port)
	return &IPFSStore{
		shell:       shell.NewShell(apiURL),
		host:        host,
		port:        port,
		log:         log,
		locationURI: fmt.Sprintf("ipfs://%s", apiURL),
	}
}

// Save adds the record to IPFS and logs the resulting CID.
// Returns ErrBackendUnavailable if the IPFS node is not accessible.
func (s *IPFSStore) Save(ctx context.Context, record *interfaces.DeploymentRecord) error {
	data, err := encodeRecord(record)
	if err != nil {
		return err
	}

	if !s.shell.IsUp() {
		return interfaces.ErrBackendUnavailable
	}

	cid, err := s.shell.Add(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("failed to add data to IPFS: %w", err)
	}

	s.mu.Lock()
	s.lastCID = cid
	s.mu.Unlock()

	s.log.Info("Stored deployment record in IPFS",
		slog.String("ipfsCID", cid),
		slog.String("address", record.Address.Hex()))
	return nil
}

// LastCID returns the CID of the most recent Save, or an empty string.
func (s *IPFSStore) LastCID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastCID
}

// Load fetches the record stored by the last Save.
func (s *IPFSStore) Load(ctx context.Context) (*interfaces.DeploymentRecord, error) {
	cid := s.LastCID()
	if cid == "" {
		return nil, interfaces.ErrRecordNotFound
	}

	reader, err := s.shell.Cat("/ipfs/" + cid)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch data from IPFS: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read data from IPFS: %w", err)
	}
	return decodeRecord(data)
}

// Available checks if the IPFS node is accessible.
func (s *IPFSStore) Available(ctx context.Context) bool {
	return s.shell.IsUp()
}

// Name returns a unique identifier for this store.
func (s *IPFSStore) Name() string {
	return fmt.Sprintf("ipfs-%s-%s", s.host, s.port)
}

// LocationURI returns the URI that identifies this store.
func (s *IPFSStore) LocationURI() string {
	return s.locationURI
}
