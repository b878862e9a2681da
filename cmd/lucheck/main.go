// SPDX-License-Identifier: MIT

// Command lucheck runs every factorization of the lufact library over a
// catalogue of demo matrices and reports whether the factors reconstruct
// their input.
package main

import (
	goflag "flag"
	"os"

	"github.com/spf13/pflag"
	"k8s.io/klog/v2"
)

func main() {
	klog.InitFlags(nil)
	defer klog.Flush()

	pflag.CommandLine.AddGoFlagSet(goflag.CommandLine)
	cmd := newRootCommand(os.Stdout)
	cmd.PersistentFlags().AddFlagSet(pflag.CommandLine)
	if err := cmd.Execute(); err != nil {
		klog.Flush()
		os.Exit(1)
	}
}
