package docs

import (
	_ "embed"
)

// OpenAPI is the embedded API document.
//
//go:embed openapi.yaml
var OpenAPI []byte
