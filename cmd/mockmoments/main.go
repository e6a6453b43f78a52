// Package main 启动 mockmoments 命令行.
package main

import (
	"fmt"
	"os"

	"github.com/yeisme/mockmoments/pkg/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
