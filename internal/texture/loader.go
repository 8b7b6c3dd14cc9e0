// Package texture fetches, decodes and resizes the logo images wrapped around
// the spheres.
package texture

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/anthonynsimon/bild/transform"
	"github.com/san-kum/memespheres/internal/dynamo"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultProxy       = "https://wsrv.nl/"
	DefaultSize        = 256
	DefaultTimeout     = 15 * time.Second
	DefaultConcurrency = 8

	// maxBody caps a single response so a misbehaving host cannot exhaust memory.
	maxBody = 8 << 20

	userAgent = "memespheres/1.0"
)

// Result is the outcome of one fetch. Exactly one of Image and Err is set.
type Result struct {
	URL   string
	Image image.Image
	Err   error
}

func (r Result) OK() bool { return r.Err == nil && r.Image != nil }

// Loader fetches a batch of images and returns one result per url, in order.
// It returns only after every fetch has finished.
type Loader interface {
	LoadAll(ctx context.Context, urls []string) []Result
}

type HTTPLoader struct {
	Client      *http.Client
	Size        int // square edge in pixels, 0 keeps the decoded size
	Concurrency int
}

func NewHTTPLoader(timeout time.Duration, size int) *HTTPLoader {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &HTTPLoader{
		Client:      &http.Client{Timeout: timeout},
		Size:        size,
		Concurrency: DefaultConcurrency,
	}
}

func (l *HTTPLoader) LoadAll(ctx context.Context, urls []string) []Result {
	results := make([]Result, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	if l.Concurrency > 0 {
		g.SetLimit(l.Concurrency)
	}
	for i, u := range urls {
		g.Go(func() error {
			img, err := l.Load(ctx, u)
			results[i] = Result{URL: u, Image: img, Err: err}
			// failures are per-image; never cancel siblings
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// Load fetches and decodes a single image.
func (l *HTTPLoader) Load(ctx context.Context, src string) (image.Image, error) {
	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: DefaultTimeout}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return nil, fmt.Errorf("texture: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("texture: %w: %w", dynamo.ErrFetch, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("texture: HTTP %d: %w", resp.StatusCode, dynamo.ErrFetch)
	}

	img, _, err := image.Decode(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", src, err)
	}
	return Fit(img, l.Size), nil
}

// Fit resizes img to a size x size square. Images already that size, and a
// non-positive size, are returned unchanged.
func Fit(img image.Image, size int) image.Image {
	if size <= 0 {
		return img
	}
	b := img.Bounds()
	if b.Dx() == size && b.Dy() == size {
		return img
	}
	return transform.Resize(img, size, size, transform.Linear)
}

// ProxyURL routes src through an image proxy that serves it as a size x size
// square. An empty proxy returns src unchanged.
func ProxyURL(proxy, src string, size int) (string, error) {
	if proxy == "" {
		return src, nil
	}
	base, err := url.Parse(proxy)
	if err != nil {
		return "", fmt.Errorf("texture: proxy: %w", err)
	}
	q := base.Query()
	q.Set("url", src)
	if size > 0 {
		q.Set("w", strconv.Itoa(size))
		q.Set("h", strconv.Itoa(size))
	}
	base.RawQuery = q.Encode()
	return base.String(), nil
}

// ProxyAll applies ProxyURL to every source.
func ProxyAll(proxy string, srcs []string, size int) ([]string, error) {
	out := make([]string, 0, len(srcs))
	for _, s := range srcs {
		u, err := ProxyURL(proxy, s, size)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, nil
}

// Valid returns the decoded images of the successful results, in order.
func Valid(results []Result) []image.Image {
	var imgs []image.Image
	for _, r := range results {
		if r.OK() {
			imgs = append(imgs, r.Image)
		}
	}
	return imgs
}
