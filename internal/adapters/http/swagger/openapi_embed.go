package swagger

import _ "embed"

// OpenAPI contains the embedded description of the ops API.
//
//go:embed openapi.yaml
var OpenAPI []byte
