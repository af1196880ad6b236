package main

import (
	"fmt"
	"os"

	"github.com/lzkit/oappscan/cmd/oappscan"
)

func main() {
	rootCmd := oappscan.BuildOAppScanCmd()

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
