package draftkit

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/alnah/go-draftkit/internal/fileutil"
	"github.com/alnah/go-draftkit/internal/process"
)

// printer turns a printable HTML document into PDF bytes. It abstracts the
// browser so the exporter can be tested without one.
type printer interface {
	Print(ctx context.Context, htmlDoc string) ([]byte, error)
	Close() error
}

var _ printer = (*rodPrinter)(nil)

// A4 in inches. Margins come from the page's @page rule.
const (
	a4WidthInches  = 8.27
	a4HeightInches = 11.69
)

// imageSettledJS resolves once the image has loaded or failed.
const imageSettledJS = `() => this.complete ? true : new Promise((resolve) => {
	this.addEventListener('load', () => resolve(true), { once: true });
	this.addEventListener('error', () => resolve(false), { once: true });
})`

// rodPrinter prints through headless Chrome via go-rod.
// The browser is launched lazily on first use and reused afterwards.
type rodPrinter struct {
	timeout      time.Duration
	imageTimeout time.Duration
	settleDelay  time.Duration

	mu       sync.Mutex
	browser  *rod.Browser
	launcher *launcher.Launcher
}

func newRodPrinter(timeout, imageTimeout, settleDelay time.Duration) *rodPrinter {
	return &rodPrinter{
		timeout:      timeout,
		imageTimeout: imageTimeout,
		settleDelay:  settleDelay,
	}
}

// ensureBrowser lazily launches and connects to the browser.
func (p *rodPrinter) ensureBrowser() (*rod.Browser, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.browser != nil {
		return p.browser, nil
	}

	l := launcher.New()
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	if os.Getenv("ROD_NO_SANDBOX") == "1" || os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("%w: %v", ErrBrowserConnect, err)
	}

	p.launcher = l
	p.browser = browser
	return browser, nil
}

// Close shuts the browser down and kills any helper processes it left.
func (p *rodPrinter) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var err error
	if p.browser != nil {
		err = p.browser.Close()
		p.browser = nil
	}
	if p.launcher != nil {
		process.KillProcessGroup(p.launcher.PID())
		p.launcher.Kill()
		p.launcher = nil
	}
	return err
}

// Print loads htmlDoc from a temp file, waits for images to settle and
// prints the page to A4.
func (p *rodPrinter) Print(ctx context.Context, htmlDoc string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	timeout := p.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tmpPath, cleanup, err := fileutil.WriteTempFile(htmlDoc, "html")
	if err != nil {
		return nil, err
	}
	defer cleanup()

	browser, err := p.ensureBrowser()
	if err != nil {
		return nil, err
	}

	page, err := browser.Context(ctx).Page(proto.TargetCreateTarget{URL: fileURL(tmpPath)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}
	defer page.Close()

	if err := page.WaitLoad(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	if p.settleDelay > 0 {
		select {
		case <-time.After(p.settleDelay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	if err := p.waitForImages(ctx, page); err != nil {
		return nil, err
	}

	reader, err := page.PDF(&proto.PagePrintToPDF{
		PaperWidth:        floatPtr(a4WidthInches),
		PaperHeight:       floatPtr(a4HeightInches),
		PrintBackground:   true,
		PreferCSSPageSize: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageLoad, err)
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("%w: reading PDF stream: %v", ErrPageLoad, err)
	}
	return data, nil
}

// waitForImages blocks until every <img> has loaded or failed, or until the
// image timeout elapses. A timeout is not an error: the page prints with
// whatever arrived.
func (p *rodPrinter) waitForImages(ctx context.Context, page *rod.Page) error {
	images, err := page.Elements("img")
	if err != nil {
		return fmt.Errorf("%w: listing images: %v", ErrPageLoad, err)
	}
	if len(images) == 0 {
		return nil
	}

	signals := make([]func(context.Context), len(images))
	for i, img := range images {
		signals[i] = func(ctx context.Context) {
			_, _ = img.Context(ctx).Eval(imageSettledJS)
		}
	}

	waitForSignals(ctx, signals, p.imageTimeout)
	return ctx.Err()
}

// waitForSignals runs every signal concurrently and returns when all have
// returned or timeout elapses, whichever is first. It reports whether the
// timeout (or ctx) won. Signals receive a context canceled on return.
func waitForSignals(ctx context.Context, signals []func(context.Context), timeout time.Duration) (timedOut bool) {
	if len(signals) == 0 {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	done := make(chan struct{}, len(signals))
	for _, signal := range signals {
		go func() {
			signal(ctx)
			done <- struct{}{}
		}()
	}

	for pending := len(signals); pending > 0; pending-- {
		select {
		case <-done:
		case <-ctx.Done():
			return true
		}
	}
	return false
}

func fileURL(path string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}

func floatPtr(v float64) *float64 {
	return &v
}
