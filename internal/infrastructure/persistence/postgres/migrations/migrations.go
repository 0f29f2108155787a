// Package migrations embute os scripts SQL aplicados pelo goose na inicialização.
package migrations

import "embed"

//go:embed *.sql
var FS embed.FS
