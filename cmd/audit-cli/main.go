// Command audit-cli ejecuta una toma física sin servidor: carga el Excel,
// lee escaneos por stdin y al terminar (EOF) escribe el informe PDF.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdin, os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
