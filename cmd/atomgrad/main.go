// Package main provides the AtomGrad CLI.
package main

import (
	"fmt"
	"os"

	"github.com/atomgrad/atomgrad/config"
	"github.com/atomgrad/atomgrad/model"
)

const version = "v0.0.1-dev"

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "version":
			fmt.Printf("AtomGrad %s\n", version)
			return
		case "check-config":
			if len(os.Args) < 3 {
				fmt.Fprintln(os.Stderr, "usage: atomgrad check-config <file.yaml>")
				os.Exit(2)
			}
			cfg, err := config.Load(os.Args[2])
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			fmt.Printf("ok: %s (%d features, %d basis, cutoff %g)\n",
				cfg.Model.Architecture, cfg.Model.NumFeatures, cfg.Model.NumBasis, cfg.Model.Cutoff)
			return
		}
	}

	fmt.Println("AtomGrad - Graph Interatomic Potentials for Go")
	fmt.Printf("Version: %s\n\n", version)
	fmt.Println("Commands:")
	fmt.Println("  version                    Show version")
	fmt.Println("  check-config <file.yaml>   Validate a model configuration")
	fmt.Println("")
	fmt.Printf("Architectures: %v\n", model.Architectures())
}
