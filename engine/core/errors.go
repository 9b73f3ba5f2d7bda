package core

import (
	"errors"
)

var (
	ErrApplicationCreate   = errors.New("application refused to start")
	ErrMeshLoadUnsupported = errors.New("mesh file loading is not supported")
	ErrUnknownBackend      = errors.New("unknown platform backend")
	ErrBackendNotBuilt     = errors.New("platform backend not compiled into this binary")
	ErrUnknownAssetType    = errors.New("unknown asset type")
	ErrAssetManagerClosed  = errors.New("asset manager already closed")
	ErrInvalidMeshID       = errors.New("invalid mesh id")
)
