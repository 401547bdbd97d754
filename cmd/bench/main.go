// Command bench runs randomized workloads against the avl and splay
// packages, configured by one or more TOML files, and reports the wall time
// each case took.
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
)

func main() {
	dir := flag.String("dir", "./cmd/bench/input/", "directory of .toml bench case files")
	flag.Parse()

	paths, err := findTOMLFiles(*dir)
	if err != nil {
		log.Fatalf("could not read %s: %v", *dir, err)
	}
	if len(paths) == 0 {
		log.Fatalf("no .toml bench cases found in %s", *dir)
	}

	for _, p := range paths {
		bc, err := loadBenchCase(p)
		if err != nil {
			log.Printf("skipping %s: %v", p, err)
			continue
		}

		dur, err := runBenchCase(bc)
		if err != nil {
			log.Printf("error running %s: %v", bc.Name, err)
			continue
		}
		log.Print(reportResult(bc, dur))
	}
}

func findTOMLFiles(dir string) ([]string, error) {
	ent, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, f := range ent {
		if !f.IsDir() && strings.EqualFold(filepath.Ext(f.Name()), ".toml") {
			paths = append(paths, filepath.Join(dir, f.Name()))
		}
	}
	return paths, nil
}
