// Command schemagen writes the JSON schema of the folio configuration. It must
// run from the module root, so that doc comments can be read.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/macropower/folio/pkg/config"
	"github.com/macropower/folio/pkg/yaml"
)

var outFile = flag.String("o", config.SchemaFile, "Output file for the generated schema")

func main() {
	flag.Parse()

	gen := yaml.NewSchemaGenerator(config.NewConfig(),
		"github.com/macropower/folio/pkg/config",
		"github.com/macropower/folio/pkg/policy",
		"github.com/macropower/folio/pkg/ui",
		"github.com/macropower/folio/pkg/keys",
	)

	jsData, err := gen.Generate()
	if err != nil {
		log.Fatalf("generate JSON schema: %v", err)
	}

	err = os.WriteFile(*outFile, jsData, 0o600)
	if err != nil {
		log.Fatalf("write schema file: %v", err)
	}
}
