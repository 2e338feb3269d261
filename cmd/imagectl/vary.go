package main

import (
	"github.com/spf13/cobra"

	"imagestudio/internal/domain"
	"imagestudio/internal/imagegen"
)

func newVaryCmd(a *app) *cobra.Command {
	var (
		strength float64
		seed     int
		useMock  bool
	)
	cmd := &cobra.Command{
		Use:   "vary <image>",
		Short: "Create a variation of an existing image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := imagegen.VariationRequest{ImagePath: args[0], Strength: strength, UseMock: useMock}
			if cmd.Flags().Changed("seed") {
				req.Seed = &seed
			}
			img, err := a.gateway.CreateVariation(cmd.Context(), req)
			if err != nil {
				return err
			}
			return a.printImages([]domain.GeneratedImage{img})
		},
	}
	cmd.Flags().Float64Var(&strength, "strength", imagegen.DefaultVariationStrength, "variation strength in [0, 1]")
	cmd.Flags().IntVar(&seed, "seed", 0, "noise seed; random when unset")
	cmd.Flags().BoolVar(&useMock, "mock", false, "force the local path")
	return cmd
}
