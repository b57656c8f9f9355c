// Command hashpass prints a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
//
//	go run ./cmd/hashpass -cost 12 'my admin password'
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/Timmy-id/fyyur/internal/utils"
)

func main() {
	cost := flag.Int("cost", 0, "bcrypt cost (0 uses the library default)")
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: hashpass [-cost N] <password>")
		os.Exit(2)
	}
	hash, err := utils.HashPassword(flag.Arg(0), *cost)
	if err != nil {
		log.Fatalf("hash: %v", err)
	}
	fmt.Println(hash)
}
