// bola inspects and exercises the ABR algorithms against a configured ladder.
//
// Usage:
//
//	bola params -c abr.yaml
//	bola select -c abr.yaml --buffer 6.5
//	bola sweep -c abr.yaml -o sweep.qlog
//	bola ladder average --sizes avg_sizes.yaml --ssims avg_ssims.yaml
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
