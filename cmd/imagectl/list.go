package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

var listShort = map[string]string{
	"styles":    "List styles and their prompt suffixes",
	"qualities": "List quality tiers",
	"ratios":    "List aspect ratios",
	"enhancers": "List prompt enhancers",
}

func newListCmd(a *app, what string) *cobra.Command {
	return &cobra.Command{
		Use:   what,
		Short: listShort[what],
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.list(what)
		},
	}
}

func (a *app) list(what string) error {
	lang := a.cfg.PromptLanguage
	switch what {
	case "styles":
		return a.printMap(a.gateway.ListStyles(lang))
	case "enhancers":
		return a.printMap(a.gateway.ListEnhancers())
	case "qualities":
		tiers := a.gateway.ListQualityTiers()
		if a.opts.JSON {
			return a.printJSON(tiers)
		}
		for _, t := range a.gateway.Registry().Qualities() {
			q := tiers[t.Name]
			fmt.Fprintf(a.out, "%s\t%s\t%dx%d\tsteps=%d\n", t.Name, q.Alias, q.Width, q.Height, q.Steps)
		}
		return nil
	case "ratios":
		ratios := a.gateway.ListAspectRatios(lang)
		if a.opts.JSON {
			return a.printJSON(ratios)
		}
		for _, r := range a.gateway.Registry().AspectRatios() {
			info := ratios[r.Name]
			fmt.Fprintf(a.out, "%s\t%d:%d\t%s\n", r.Name, info.WidthRatio, info.HeightRatio, info.Description)
		}
		return nil
	}
	return fmt.Errorf("unknown listing %q", what)
}

func (a *app) printMap(m map[string]string) error {
	if a.opts.JSON {
		return a.printJSON(m)
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fmt.Fprintf(a.out, "%s\t%s\n", k, m[k])
	}
	return nil
}
