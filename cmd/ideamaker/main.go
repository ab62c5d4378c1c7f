package main

import (
	"os"

	"k8s.io/klog/v2"
)

func main() {
	code := execute(newRootCmd(os.Stdout), os.Stderr)
	klog.Flush()
	os.Exit(code)
}
