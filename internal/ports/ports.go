// Package ports defines interfaces for external dependencies.
// Ports are contracts that adapters implement, allowing the application
// layer to depend on abstractions rather than concrete implementations.
//
// Port Design Principles:
//   - Context as first parameter for cancellation
//   - Return domain types, never adapter-internal types
//   - Error returns use domain error types (ErrInputNotFound, ...)
//   - Keep interfaces small and focused
package ports

import (
	"context"

	"github.com/brewmecoffee/quote-generator/internal/domain"
)

// QuoteSource yields the ordered sequence of quotes to render.
type QuoteSource interface {
	// Quotes parses the input and returns all quotes in file order,
	// numbered 1-based. Returns domain.ErrInputNotFound if the input
	// does not exist and domain.ErrNoQuotes if nothing usable parsed.
	Quotes(ctx context.Context) ([]domain.Quote, error)
}

// QuoteRenderer produces one image file per quote.
type QuoteRenderer interface {
	// Render lays out the quote within the canvas described by opts and
	// writes the encoded image to outPath, creating the destination
	// directory if absent. A missing font falls back to the default
	// face instead of failing; text that cannot fit at the minimum
	// font size is clipped, not rejected. Write failures return
	// domain.ErrOutputWrite.
	Render(ctx context.Context, quote domain.Quote, opts domain.RenderOptions, outPath string) (*domain.RenderResult, error)
}

// ProgressReporter receives batch progress updates. Implementations
// must tolerate concurrent Advance calls when the batch renders in
// parallel.
type ProgressReporter interface {
	// Start announces the total number of quotes in the batch.
	Start(total int)

	// Advance reports one finished quote (rendered or failed).
	Advance(done, total int, label string)

	// Finish completes the progress display.
	Finish()
}
