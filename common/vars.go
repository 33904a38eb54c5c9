package common

var (
	// Version is set at build time with -ldflags "-X github.com/mosaicdev/mosaic-registry/common.Version=..."
	Version = "dev"

	PackageName = "github.com/mosaicdev/mosaic-registry"
)
