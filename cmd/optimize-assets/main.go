// Command optimize-assets resizes sprite override PNGs to the size the
// game draws them at and recompresses them.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/automoto/lodis-galaga/assets"
)

func main() {
	dir := flag.String("dir", "assets", "Directory of PNG sprite overrides")
	backup := flag.Bool("backup", true, "Copy originals to <dir>/originals before overwriting")
	flag.Parse()

	results := Optimize(*dir, assets.Catalog(), *backup)
	var failed int
	var before, after int64
	for _, r := range results {
		switch {
		case r.Missing:
			fmt.Printf("- %s not found, skipping\n", r.Name)
		case r.Err != nil:
			failed++
			fmt.Printf("x %s: %v\n", r.Name, r.Err)
		default:
			before += r.OldBytes
			after += r.NewBytes
			fmt.Printf("+ %s: %dx%d -> %dx%d (%.1fKB -> %.1fKB, %.1f%% saved)\n",
				r.Name, r.OldW, r.OldH, r.NewW, r.NewH,
				float64(r.OldBytes)/1024, float64(r.NewBytes)/1024, r.Savings())
		}
	}
	if before > 0 {
		fmt.Printf("total: %.1fKB -> %.1fKB\n", float64(before)/1024, float64(after)/1024)
	}
	if failed > 0 {
		log.Printf("Warning: %d sprites could not be optimized", failed)
		os.Exit(1)
	}
}
