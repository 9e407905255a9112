// Copyright (C) 2026 Ben Grimm. Licensed under AGPL-3.0 (https://www.gnu.org/licenses/agpl-3.0.txt)

// gen-config-docs generates configuration reference documentation from
// descriptor files and tagged Go structs.
//
// Usage:
//
//	gen-config-docs generate
//	gen-config-docs check
//	gen-config-docs watch
//	gen-config-docs cache list
//	gen-config-docs -c docs/cfgdoc.hcl generate
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
