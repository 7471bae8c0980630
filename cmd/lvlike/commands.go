// SPDX-License-Identifier: MIT
package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lvlike/config"
	"github.com/katalvlaran/lvlike/connector"
	"github.com/katalvlaran/lvlike/dataset"
	"github.com/katalvlaran/lvlike/likelihood"
	"github.com/katalvlaran/lvlike/modeling"
	"github.com/katalvlaran/lvlike/parameters"
)

var errBadParam = errors.New("lvlike: parameter must be name=value")

// evalOutput is the YAML form of one evaluation.
type evalOutput struct {
	RunID    string             `yaml:"run_id"`
	Loglike  float64            `yaml:"loglike"`
	Chisq    *float64           `yaml:"chisq,omitempty"`
	Rejected bool               `yaml:"rejected,omitempty"`
	Reason   string             `yaml:"reason,omitempty"`
	Derived  map[string]float64 `yaml:"derived,omitempty"`
}

func newEvalCmd() *cobra.Command {
	var (
		configPath string
		dataPath   string
		h0, omegaM float64
		rawParams  []string
	)
	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate the configured likelihood at one parameter point",
		Long: `Reads the data set, builds the likelihood from the config and evaluates it
against a flat ΛCDM cosmology. A rejected point (bad parameter values,
non-finite result) is reported in the output, not as a failure.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params, err := parseParams(rawParams)
			if err != nil {
				return err
			}
			cfg, err := config.LoadFile(configPath)
			if err != nil {
				return err
			}
			logger, err := cfg.Log.NewLogger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			like, err := cfg.Build(logger)
			if err != nil {
				return err
			}
			src, err := dataset.LoadFile(dataPath)
			if err != nil {
				return err
			}
			cosmo, err := modeling.NewFlatLCDM(h0, omegaM)
			if err != nil {
				return err
			}
			conn, err := connector.New(like, src, connector.WithLogger(logger))
			if err != nil {
				return err
			}

			out := evalOutput{RunID: conn.RunID()}
			res, err := conn.Evaluate(cmd.Context(), cosmo, params)
			switch {
			case err == nil:
				out.Loglike = res.Loglike
				if res.HasChisq {
					out.Chisq = &res.Chisq
				}
				if res.Derived.Len() > 0 {
					out.Derived = res.Derived.Map()
				}
			case likelihood.IsRejection(err):
				out.Rejected, out.Reason = true, err.Error()
			default:
				return err
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			defer enc.Close()

			return enc.Encode(out)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "run configuration (YAML)")
	f.StringVarP(&dataPath, "data", "d", "", "data set (YAML)")
	f.Float64Var(&h0, "h0", 70, "Hubble constant in km/s/Mpc")
	f.Float64Var(&omegaM, "omega-m", 0.3, "matter density parameter")
	f.StringArrayVarP(&rawParams, "param", "p", nil, "sampled parameter as name=value (repeatable)")
	_ = cmd.MarkFlagRequired("config")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

func newRequirementsCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "requirements",
		Short: "List the parameters the configured likelihood samples",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadFile(configPath)
			if err != nil {
				return err
			}
			like, err := cfg.Build(nil)
			if err != nil {
				return err
			}
			for _, name := range like.RequiredParameters().Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}

			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "run configuration (YAML)")
	_ = cmd.MarkFlagRequired("config")

	return cmd
}

// parseParams turns name=value pairs into a ParamsMap.
func parseParams(raw []string) (parameters.ParamsMap, error) {
	out := make(parameters.ParamsMap, len(raw))
	for _, kv := range raw {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("%q: %w", kv, errBadParam)
		}
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, fmt.Errorf("%q: %w: %w", kv, errBadParam, err)
		}
		out[name] = v
	}

	return out, nil
}
