// Package orchestrator coordinates batch clip generation: one capture
// per catalog product, with caption files and optional transcoding.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/user/promoreel/pkg/capture"
	"github.com/user/promoreel/pkg/catalog"
	"github.com/user/promoreel/pkg/ports"
)

// ErrNoProducts is returned by Run when the catalog is empty.
var ErrNoProducts = errors.New("orchestrator: no products to render")

// Config contains the run parameters of a batch render.
type Config struct {
	OutputDir string
	Transcode bool
}

// ProductResult describes the outcome of rendering one product.
type ProductResult struct {
	ProductID     string
	Title         string
	ClipPath      string
	CaptionPath   string
	TranscodePath string
	ClipBytes     int
	Err           error
}

// RunResult summarizes a batch render.
type RunResult struct {
	Rendered int
	Failed   int
	Results  []ProductResult
}

// Orchestrator renders each product of a catalog into a clip plus
// caption file. Products are processed sequentially; the capture
// pipeline records one clip at a time.
type Orchestrator struct {
	pipeline   *capture.Pipeline
	transcoder ports.Transcoder
	fs         ports.FileSystem
	sink       ports.DebugSink
	logger     ports.Logger
}

// New creates a new Orchestrator.
func New(
	pipeline *capture.Pipeline,
	transcoder ports.Transcoder,
	fs ports.FileSystem,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		pipeline:   pipeline,
		transcoder: transcoder,
		fs:         fs,
		sink:       sink,
		logger:     logger,
	}
}

// Run renders all products. A failure on one product is logged and the
// run continues with the next; only an empty catalog or a cancelled
// context aborts the whole run.
func (o *Orchestrator) Run(ctx context.Context, products []catalog.Product, config Config) (RunResult, error) {
	if len(products) == 0 {
		return RunResult{}, ErrNoProducts
	}

	if err := o.fs.MkdirAll(config.OutputDir); err != nil {
		return RunResult{}, fmt.Errorf("create output dir: %w", err)
	}

	o.logger.Info("Rendering %d products to %s", len(products), config.OutputDir)

	result := RunResult{}
	for _, product := range products {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		o.logger.Info("Rendering product %s: %s", product.ID, product.Title)
		pr := o.renderProduct(ctx, product, config)
		if pr.Err != nil {
			if errors.Is(pr.Err, context.Canceled) || errors.Is(pr.Err, context.DeadlineExceeded) {
				return result, pr.Err
			}
			o.logger.Error("Failed to render product %s: %s", product.ID, pr.Err)
			result.Failed++
		} else {
			result.Rendered++
		}
		result.Results = append(result.Results, pr)
	}

	o.logger.Info("Rendered %d/%d products", result.Rendered, len(products))
	return result, nil
}

func (o *Orchestrator) renderProduct(ctx context.Context, product catalog.Product, config Config) ProductResult {
	pr := ProductResult{ProductID: product.ID, Title: product.Title}

	clip, err := o.pipeline.Start(ctx, product)
	if err != nil {
		pr.Err = err
		return pr
	}

	pr.ClipPath = filepath.Join(config.OutputDir, fmt.Sprintf("%s.mp4", product.ID))
	if err := o.fs.WriteFile(pr.ClipPath, clip.Data); err != nil {
		pr.Err = fmt.Errorf("write clip: %w", err)
		return pr
	}
	pr.ClipBytes = clip.Size()
	o.logger.Info("Clip saved to %s", pr.ClipPath)

	caption := product.Caption
	if caption == "" {
		caption = catalog.DeriveCaption(product)
	}
	pr.CaptionPath = filepath.Join(config.OutputDir, fmt.Sprintf("%s.caption.txt", product.ID))
	if err := o.fs.WriteFile(pr.CaptionPath, []byte(caption)); err != nil {
		pr.Err = fmt.Errorf("write caption: %w", err)
		return pr
	}
	o.logger.Info("Caption saved to %s", pr.CaptionPath)

	if config.Transcode {
		if o.sink.Enabled() {
			_ = o.sink.SaveClip(fmt.Sprintf("%s.raw.mp4", product.ID), clip.Data)
		}
		o.logger.Info("Transcoding clip for product %s", product.ID)
		transcoded, err := o.transcoder.Transcode(ctx, clip)
		if err != nil {
			pr.Err = fmt.Errorf("transcode: %w", err)
			return pr
		}
		o.logger.Info("Transcoded clip: %d bytes", transcoded.Size())

		pr.TranscodePath = filepath.Join(config.OutputDir, fmt.Sprintf("%s.h264.mp4", product.ID))
		if err := o.fs.WriteFile(pr.TranscodePath, transcoded.Data); err != nil {
			pr.Err = fmt.Errorf("write transcoded clip: %w", err)
			return pr
		}
		o.logger.Info("Clip saved to %s", pr.TranscodePath)
	}

	return pr
}
