package algorithms

import "errors"

var (
	// ErrInvalidConfiguration reports buffer bounds or ladders that make the
	// parameter solve ill-defined. It indicates a misconfigured deployment.
	ErrInvalidConfiguration = errors.New("invalid abr configuration")

	// ErrMissingCatalogData reports a (format, timestamp) pair the channel
	// could not provide a size or quality for.
	ErrMissingCatalogData = errors.New("missing catalog data")

	// ErrNonPositiveV reports a solve that produced V <= 0, which only
	// happens when utility is not non-decreasing in size across the ladder.
	ErrNonPositiveV = errors.New("bola parameter V is not positive")

	ErrNoFormats   = errors.New("channel has no video formats")
	ErrNoNextChunk = errors.New("client has no next chunk")
	ErrEmptyLadder = errors.New("empty ladder")
	ErrUnknownAlgo = errors.New("unknown abr algorithm")
)
