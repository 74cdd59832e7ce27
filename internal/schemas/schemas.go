package schemas

import (
	"embed"
	"fmt"
)

//go:embed *.json
var schemaFiles embed.FS

// Load returns the embedded schema document with the given filename.
func Load(filename string) (string, error) {
	data, err := schemaFiles.ReadFile(filename)
	if err != nil {
		return "", &SchemaLoadError{
			Message: fmt.Sprintf("failed to read embedded schema %s", filename),
			Cause:   err,
		}
	}
	return string(data), nil
}

// MustLoad is like Load but panics on failure. Embedded schemas are part
// of the binary, so a failure here is a build defect.
func MustLoad(filename string) string {
	content, err := Load(filename)
	if err != nil {
		panic(err)
	}
	return content
}
