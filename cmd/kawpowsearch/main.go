// Command kawpowsearch is a thin demonstration binary for the search
// core: it scans a nonce range against a synthetic DAG and reports the
// first nonce meeting a target, using the CPU reference oracle. It
// does not perform DAG generation, pool networking, or GPU dispatch -
// those are external collaborators named in package external.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decred/slog"
	"github.com/tmthrgd/go-hex"

	"github.com/robvanmieghem/kawpow-search/kawpow"
	"github.com/robvanmieghem/kawpow-search/search"
	"github.com/robvanmieghem/kawpow-search/search/cpuref"
)

var backend = slog.NewBackend(os.Stdout)
var log = backend.Logger("MAIN")

func init() {
	search.UseLogger(backend.Logger("SRCH"))
	cpuref.UseLogger(backend.Logger("CPUR"))
}

func main() {
	startNonce := flag.Uint64("start", 0, "first nonce to scan")
	count := flag.Uint64("count", 1<<16, "number of consecutive nonces to scan")
	dagSize := flag.Int("dagsize", 1<<20, "synthetic DAG size in bytes, a multiple of 64 and at least 16384")
	targetHex := flag.String("target", "ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff", "32-byte target, hex, little-endian word order")
	flag.Parse()

	target, err := parseTarget(*targetHex)
	if err != nil {
		log.Errorf("invalid target: %v", err)
		os.Exit(1)
	}

	dag, err := kawpow.NewTestDag(*dagSize)
	if err != nil {
		log.Errorf("build synthetic dag: %v", err)
		os.Exit(1)
	}

	var header kawpow.Header
	log.Infof("scanning %d nonces starting at %d against a %d-byte synthetic dag", *count, *startNonce, dag.Size())

	hit, ok := cpuref.FirstHit(&header, dag, target, *startNonce, *count)
	if !ok {
		log.Infof("no nonce in range met the target")
		return
	}
	fmt.Printf("nonce=%d hash=%x mix=%x\n", hit.Nonce, hit.Digest, hit.Mix)
}

func parseTarget(s string) (search.Target, error) {
	var t search.Target
	if len(s) != len(t)*2 {
		return t, fmt.Errorf("target must be %d hex characters, got %d", len(t)*2, len(s))
	}
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return t, fmt.Errorf("invalid hex: %w", err)
	}
	copy(t[:], decoded)
	return t, nil
}
