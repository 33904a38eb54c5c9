package storage

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"

	"github.com/mosaicdev/mosaic-registry/interfaces"
)

// ErrInvalidLocationURI is returned for store URIs that cannot be parsed.
var ErrInvalidLocationURI = errors.New("invalid storage location URI")

// RecordStoreFactory creates record stores from URI strings and composes
// them into a MultiStore.
type RecordStoreFactory struct {
	log *slog.Logger
}

// NewRecordStoreFactory creates a new factory instance.
func NewRecordStoreFactory(logger *slog.Logger) *RecordStoreFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &RecordStoreFactory{log: logger}
}

// RecordStoreFor creates a record store from a location URI.
// The URI format should be [scheme]://[auth@]host[:port][/path][?params]
//
// Supported schemes:
//   - file:// (or a bare path) - Local deployment.json
//   - s3:// - Amazon S3 or compatible object storage
//   - ipfs:// - IPFS node API
//   - vault:// - HashiCorp Vault KV v2
//
// Returns an error if the URI is invalid or the scheme is unsupported.
func (sf *RecordStoreFactory) RecordStoreFor(locationURI string) (interfaces.RecordStore, error) {
	locationURI = strings.TrimSpace(locationURI)
	if locationURI == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidLocationURI)
	}
	if !strings.Contains(locationURI, "://") {
		return NewFileStore(locationURI, sf.log)
	}

	u, err := url.Parse(locationURI)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLocationURI, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return sf.createFileStore(u)
	case "s3":
		return sf.createS3Store(u)
	case "ipfs":
		return sf.createIPFSStore(u)
	case "vault":
		return sf.createVaultStore(u)
	default:
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidLocationURI, u.Scheme)
	}
}

// CreateMultiStore creates the deployer's record sink: primary must be
// valid, mirrors that cannot be created are logged and skipped.
func (sf *RecordStoreFactory) CreateMultiStore(primaryURI string, mirrorURIs []string) (*MultiStore, error) {
	primary, err := sf.RecordStoreFor(primaryURI)
	if err != nil {
		return nil, fmt.Errorf("primary store: %w", err)
	}

	mirrors := make([]interfaces.RecordStore, 0, len(mirrorURIs))
	for _, uri := range mirrorURIs {
		if strings.TrimSpace(uri) == "" {
			continue
		}
		mirror, err := sf.RecordStoreFor(uri)
		if err != nil {
			sf.log.Warn("Failed to create mirror store",
				"err", err,
				slog.String("locationURI", redactURI(uri)))
			continue
		}
		mirrors = append(mirrors, mirror)
	}

	return NewMultiStore(primary, mirrors, sf.log), nil
}

// createFileStore creates a local file store.
// URI format: file:///absolute/path/deployment.json or file://./relative/dir/
func (sf *RecordStoreFactory) createFileStore(u *url.URL) (interfaces.RecordStore, error) {
	path := u.Path
	if u.Host != "" {
		path = u.Host + "/" + strings.TrimPrefix(path, "/")
	}
	if path == "" {
		return nil, fmt.Errorf("%w: empty path in file URI", ErrInvalidLocationURI)
	}
	return NewFileStore(path, sf.log)
}

// createS3Store creates an S3 or S3-compatible store.
// URI format: s3://[ACCESS_KEY:SECRET_KEY@]bucket-name/prefix/?region=us-west-2&endpoint=http://minio:9000&pathstyle=true&acl=public-read
func (sf *RecordStoreFactory) createS3Store(u *url.URL) (interfaces.RecordStore, error) {
	query := u.Query()
	cfg := S3Config{
		Bucket:   u.Host,
		Prefix:   strings.TrimPrefix(u.Path, "/"),
		Region:   query.Get("region"),
		Endpoint: query.Get("endpoint"),
		ACL:      query.Get("acl"),
	}
	if ps := query.Get("pathstyle"); ps != "" {
		pathStyle, err := strconv.ParseBool(ps)
		if err != nil {
			return nil, fmt.Errorf("%w: pathstyle: %v", ErrInvalidLocationURI, err)
		}
		cfg.PathStyle = pathStyle
	} else {
		cfg.PathStyle = cfg.Endpoint != ""
	}
	if u.User != nil {
		cfg.AccessKey = u.User.Username()
		cfg.SecretKey, _ = u.User.Password()
	}
	return NewS3Store(cfg, sf.log)
}

// createIPFSStore creates an IPFS store.
// URI format: ipfs://host:port
func (sf *RecordStoreFactory) createIPFSStore(u *url.URL) (interfaces.RecordStore, error) {
	host := u.Hostname()
	if host == "" {
		return nil, fmt.Errorf("%w: missing IPFS host", ErrInvalidLocationURI)
	}
	port := u.Port()
	if port == "" {
		port = "5001" // Default IPFS API port
	}
	return NewIPFSStore(host, port, sf.log), nil
}

// createVaultStore creates a Vault KV v2 store.
// URI format: vault://host:port/mount/path/to/secret?tls=false
func (sf *RecordStoreFactory) createVaultStore(u *url.URL) (interfaces.RecordStore, error) {
	mount, dataPath, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/")
	scheme := "https"
	if u.Query().Get("tls") == "false" {
		scheme = "http"
	}
	return NewVaultStore(scheme+"://"+u.Host, mount, dataPath, "", sf.log)
}

// redactURI strips the password from a URI for logging.
func redactURI(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "***")
	}
	return u.String()
}
