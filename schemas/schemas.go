// Package schemas embeds the JSON Schema files that describe documents accepted from outside the process.
package schemas

import _ "embed"

// Resume is the JSON Schema for an uploaded or stored ResumeDocument.
//
//go:embed resume.schema.json
var Resume []byte
