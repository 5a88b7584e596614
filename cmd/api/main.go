package main

import (
	"os"

	"github.com/shopspring/decimal"
)

func main() {
	// amounts go out as JSON numbers, e.g. 33.34
	decimal.MarshalJSONWithoutQuotes = true

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
