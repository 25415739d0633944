package touchkit

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Source names an image to load: a file path, encoded bytes, or an already
// decoded image. Exactly one field should be set.
type Source struct {
	Path  string
	Data  []byte
	Image image.Image
}

// FromFile returns a Source reading the file at path.
func FromFile(path string) Source { return Source{Path: path} }

// FromBytes returns a Source decoding encoded image bytes.
func FromBytes(data []byte) Source { return Source{Data: data} }

// FromImage returns a Source wrapping a decoded image.
func FromImage(img image.Image) Source { return Source{Image: img} }

// String describes the source for logs.
func (s Source) String() string {
	switch {
	case s.Image != nil:
		return "image"
	case s.Path != "":
		return s.Path
	case s.Data != nil:
		return fmt.Sprintf("%d bytes", len(s.Data))
	default:
		return "empty"
	}
}

// Loader loads a Source. Implementations are called from their own goroutine
// and must not touch kit state.
type Loader interface {
	Load(ctx context.Context, src Source) (image.Image, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context, src Source) (image.Image, error)

// Load calls f.
func (f LoaderFunc) Load(ctx context.Context, src Source) (image.Image, error) {
	return f(ctx, src)
}

// DefaultLoader decodes PNG, JPEG, GIF, WebP, BMP, and TIFF from files or
// bytes and passes decoded images through.
type DefaultLoader struct{}

var errEmptySource = errors.New("empty source")

// Load implements Loader.
func (DefaultLoader) Load(ctx context.Context, src Source) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	switch {
	case src.Image != nil:
		return src.Image, nil
	case src.Data != nil:
		return decode(src.Data)
	case src.Path != "":
		data, err := os.ReadFile(src.Path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", src.Path, err)
		}
		img, err := decode(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", src.Path, err)
		}
		return img, nil
	default:
		return nil, errEmptySource
	}
}

func decode(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return img, nil
}

// loadRequest is captured when a load is issued. gen pins the registry
// generation; a completion under an older generation is discarded.
type loadRequest struct {
	gen   uint64
	id    ElementID
	src   Source
	apply func(img image.Image)
}

type loadResult struct {
	req loadRequest
	img image.Image
	err error
}

// load starts an asynchronous load. The completion is posted to k.results
// and applied on the owning goroutine by drainLoads or Settle.
func (k *Kit) load(id ElementID, src Source, apply func(image.Image)) {
	req := loadRequest{gen: k.reg.Generation(), id: id, src: src, apply: apply}
	k.inflight++
	ctx, loader, results := k.ctx, k.loader, k.results
	go func() {
		img, err := loader.Load(ctx, req.src)
		if err == nil && img == nil {
			err = errEmptySource
		}
		select {
		case results <- loadResult{req: req, img: img, err: err}:
		case <-ctx.Done():
		}
	}()
}

// drainLoads applies every completion that is ready without blocking.
func (k *Kit) drainLoads() {
	for {
		select {
		case r := <-k.results:
			k.applyLoad(r)
		default:
			return
		}
	}
}

// Settle blocks until every in-flight load has completed and been applied,
// or ctx is done. Headless callers use it before composing.
func (k *Kit) Settle(ctx context.Context) error {
	for k.inflight > 0 && !k.torn {
		select {
		case r := <-k.results:
			k.applyLoad(r)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Pending returns the number of loads not yet applied.
func (k *Kit) Pending() int {
	return k.inflight
}

func (k *Kit) applyLoad(r loadResult) {
	k.inflight--
	if k.torn || r.req.gen != k.reg.Generation() {
		k.logger.Debug("discarding stale load", "element", r.req.id, "source", r.req.src)
		return
	}
	if r.err != nil {
		err := &LoadError{ID: r.req.id, Err: r.err}
		k.logger.Warn("image load failed", "element", r.req.id, "source", r.req.src, "err", r.err)
		if k.onLoadError != nil {
			k.onLoadError(r.req.id, err)
		}
		return
	}
	r.req.apply(r.img)
}
