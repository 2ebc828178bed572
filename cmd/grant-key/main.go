// Package main provides a one-shot utility for contributor grant keys.
//
// Without arguments it emits the asymmetric keypair used to sign and verify
// contributor grants. The "mint" subcommand signs a grant for a contributor.
package main

import (
	"os"

	"github.com/Jdubedition/dapp-owaat/internal/platform/config"
	"github.com/Jdubedition/dapp-owaat/internal/tools/grantkey"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "mint" {
		if err := grantkey.Mint(os.Stdout, os.Args[2:], os.LookupEnv); err != nil {
			config.Exitf("mint contributor grant: %v", err)
		}
		return
	}
	if err := grantkey.Run(os.Stdout, nil); err != nil {
		config.Exitf("generate contributor grant key: %v", err)
	}
}
