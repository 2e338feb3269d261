package main

import (
	"github.com/spf13/cobra"

	"imagestudio/internal/domain"
	"imagestudio/internal/imagegen"
	"imagestudio/internal/prompt"
)

func newGenerateCmd(a *app) *cobra.Command {
	var (
		params   prompt.Params
		seed     int
		useMock  bool
		quantity int
	)
	cmd := &cobra.Command{
		Use:   "generate [prompt]",
		Short: "Generate images from a text prompt",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				params.Prompt = args[0]
			}
			if cmd.Flags().Changed("seed") {
				params.Seed = &seed
			}
			req := imagegen.TextRequest{Params: params, UseMock: useMock}
			if quantity == 1 {
				img, err := a.gateway.GenerateFromText(cmd.Context(), req)
				if err != nil {
					return err
				}
				return a.printImages([]domain.GeneratedImage{img})
			}
			imgs, err := a.gateway.GenerateBatch(cmd.Context(), req, quantity)
			if err != nil {
				return err
			}
			return a.printImages(imgs)
		},
	}
	cmd.Flags().StringVarP(&params.Style, "style", "s", "", "style name or alias")
	cmd.Flags().StringVarP(&params.Quality, "quality", "q", "standard", "quality tier")
	cmd.Flags().StringVarP(&params.AspectRatio, "aspect-ratio", "r", "1:1", "aspect ratio")
	cmd.Flags().StringVarP(&params.NegativePrompt, "negative", "n", "", "negative prompt")
	cmd.Flags().StringSliceVarP(&params.Enhancers, "enhancer", "e", nil, "prompt enhancer, repeatable")
	cmd.Flags().IntVar(&seed, "seed", 0, "seed in [1, 2147483647]; random when unset")
	cmd.Flags().BoolVar(&useMock, "mock", false, "skip the remote API and synthesize locally")
	cmd.Flags().IntVar(&quantity, "quantity", 1, "number of images, seeds increase by one")
	return cmd
}
