package swaggerkit

import docs "ballotbox/internal/services/api/docs"

// docReader returns the registered OpenAPI document
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }
