// SPDX-License-Identifier: MIT

// Command lvlike evaluates Gaussian-family likelihoods from YAML files.
//
//	lvlike requirements --config run.yaml
//	lvlike eval --config run.yaml --data data.yaml --h0 70 --omega-m 0.3 --param sn_M=-19.3
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := newRootCmd(os.Stdout, os.Stderr)
	if err := root.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "lvlike",
		Short:         "Evaluate cosmology likelihoods",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.AddCommand(newEvalCmd(), newRequirementsCmd())

	return root
}
