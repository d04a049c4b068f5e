package docs

import _ "embed"

// OpenAPI is the hand-maintained OpenAPI 3 document served at /openapi.yaml.
//
//go:embed openapi.yaml
var OpenAPI []byte
