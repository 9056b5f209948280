// Command mindala-vet checks tracked functions for package variable accesses
// that bypass the tracer. Use it standalone or as go vet -vettool.
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/sirkon/mindala/internal/globalreads"
)

func main() {
	singlechecker.Main(globalreads.Analyzer)
}
