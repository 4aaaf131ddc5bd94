package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"Pumpcalc/internal/auth"
	"Pumpcalc/internal/calc/pump"
	"Pumpcalc/internal/calc/sweep"
	"Pumpcalc/internal/config"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pumpcli",
		Short:         "Pump hydraulic and brake power calculator",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newCalcCmd(), newSweepCmd(), newTokenCmd())
	return root
}

type calcOptions struct {
	flow       float64
	head       float64
	density    float64
	efficiency float64
	precision  int
}

func newCalcCmd() *cobra.Command {
	o := &calcOptions{}
	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Compute hydraulic and brake power for one duty point",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalc(cmd.OutOrStdout(), o)
		},
	}
	f := cmd.Flags()
	f.Float64Var(&o.flow, "flow", 0.01, "flow rate Q, m3/s")
	f.Float64Var(&o.head, "head", 20, "head H, m")
	f.Float64Var(&o.density, "density", pump.DefaultDensity, "fluid density, kg/m3")
	f.Float64Var(&o.efficiency, "efficiency", 0.70, "pump efficiency (0..1]")
	f.IntVar(&o.precision, "precision", pump.DefaultPrecision, "decimals in the output")
	return cmd
}

func runCalc(w io.Writer, o *calcOptions) error {
	res, err := pump.Compute(o.flow, o.head, o.density, o.efficiency)
	if err != nil {
		return err
	}
	hyd, brake := res.Format(o.precision)
	fmt.Fprintf(w, "Hydraulic power: %s\n", hyd)
	fmt.Fprintf(w, "Brake power:     %s\n", brake)
	return nil
}

type sweepOptions struct {
	head       float64
	efficiency float64
	center     float64
	points     int
	minFlow    float64
	density    float64
}

func newSweepCmd() *cobra.Command {
	o := &sweepOptions{}
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Print brake power over a range of flow rates",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSweep(cmd.OutOrStdout(), o)
		},
	}
	f := cmd.Flags()
	f.Float64Var(&o.head, "head", 20, "head H, m")
	f.Float64Var(&o.efficiency, "efficiency", 0.70, "pump efficiency (0..1]")
	f.Float64Var(&o.center, "center", 0.05, "duty flow rate the sweep is centred on, m3/s")
	f.IntVar(&o.points, "points", sweep.DefaultPoints, "number of samples")
	f.Float64Var(&o.minFlow, "min-flow", sweep.DefaultMinFlowRate, "lowest sampled flow rate, m3/s")
	f.Float64Var(&o.density, "density", pump.DefaultDensity, "fluid density, kg/m3")
	return cmd
}

func runSweep(w io.Writer, o *sweepOptions) error {
	g := sweep.Generator{Points: o.points, MinFlowRate: o.minFlow, Density: o.density}
	points, err := g.Generate(o.head, o.efficiency, o.center)
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "Q, m3/s", "P, kW"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	for i, p := range points {
		table.Append([]string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%.4f", p.FlowRate),
			fmt.Sprintf("%.3f", p.PowerKW),
		})
	}
	table.Render()
	return nil
}

type tokenOptions struct {
	subject string
	ttl     time.Duration
}

func newTokenCmd() *cobra.Command {
	o := &tokenOptions{}
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the premium tools using TOKEN_KEY",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			env := &auth.Authenv{JWTkey: []byte(cfg.Service.TokenKey)}
			token, err := env.IssueToken(o.subject, o.ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&o.subject, "subject", "", "who the token is issued to")
	cmd.Flags().DurationVar(&o.ttl, "ttl", auth.DefaultTTL, "token lifetime")
	_ = cmd.MarkFlagRequired("subject")
	return cmd
}
