package imagegen

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"imagestudio/internal/domain"
)

// GenerateBatch resolves req once and produces quantity images concurrently.
// Image i uses seed base+i wrapped into [1, domain.MaxSeed]; each image runs
// the same remote-then-local sequence as GenerateFromText.
func (g *Gateway) GenerateBatch(ctx context.Context, req TextRequest, quantity int) ([]domain.GeneratedImage, error) {
	if quantity < 1 || quantity > g.maxBatch {
		return nil, domain.Resolutionf("quantity %d outside [1, %d]", quantity, g.maxBatch)
	}
	base, err := g.resolver.Resolve(req.Params)
	if err != nil {
		return nil, err
	}
	if quantity == 1 {
		img, err := g.produce(ctx, base, req.UseMock)
		if err != nil {
			return nil, err
		}
		return []domain.GeneratedImage{img}, nil
	}

	images := make([]domain.GeneratedImage, quantity)
	eg, egCtx := errgroup.WithContext(ctx)
	for i := 0; i < quantity; i++ {
		item := base
		item.Seed = domain.WrapSeed(int64(base.Seed) + int64(i))
		eg.Go(func() error {
			img, err := g.produce(egCtx, item, req.UseMock)
			if err != nil {
				return fmt.Errorf("image %d (seed %d): %w", i+1, item.Seed, err)
			}
			images[i] = img
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return images, nil
}
