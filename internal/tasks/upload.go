package tasks

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/desertthunder/cvx/internal/services"
	"github.com/desertthunder/cvx/internal/shared"
	"golang.org/x/time/rate"
)

// UploadOpts tunes the upload worker pool.
type UploadOpts struct {
	NumWorkers int     // Concurrent uploads (default: 5)
	RateLimit  float64 // Upload starts per second (default: 5)
}

// BatchSummary aggregates one batch after every upload settles.
type BatchSummary struct {
	Total     int
	Succeeded int
	Failed    int
}

// UploadEngine drives one independent upload-and-parse request per accepted
// file. Each file's failure is independent and terminal; there is no batch
// retry.
type UploadEngine struct {
	parser services.Parser
	opts   UploadOpts
}

// NewUploadEngine creates an engine over the given parser service.
func NewUploadEngine(parser services.Parser, opts UploadOpts) *UploadEngine {
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	return &UploadEngine{parser: parser, opts: opts}
}

// PrepareBatch validates each path and builds the batch. Accepted files
// become queued UploadItems in submission order; rejected files never
// produce an item and are returned with their reasons. No network I/O
// happens here.
func (e *UploadEngine) PrepareBatch(paths []string) (*Batch, []Rejection) {
	batch := NewBatch()
	var rejections []Rejection

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			rejections = append(rejections, Rejection{
				Filename: path,
				Reason:   fmt.Errorf("%w: cannot read %q: %v", shared.ErrValidation, path, err),
			})
			continue
		}

		if err := ValidateFile(path, info.Size()); err != nil {
			rejections = append(rejections, Rejection{Filename: path, Reason: err})
			continue
		}

		batch.Append(UploadItem{
			ID:       shared.GenerateID(),
			Filename: info.Name(),
			Path:     path,
			Size:     info.Size(),
			Status:   StatusQueued,
		})
	}

	return batch, rejections
}

// Run uploads every queued item in the batch through a bounded worker pool,
// streaming identifier-scoped updates into the channel, and blocks until
// all requests settle. The caller owns both the channel and the live batch
// state; Run never mutates the batch it was given.
func (e *UploadEngine) Run(ctx context.Context, batch *Batch, updates chan<- ItemUpdate) (*BatchSummary, error) {
	if e.parser == nil {
		return nil, fmt.Errorf("%w: parser service not initialized", shared.ErrServiceUnavailable)
	}

	items := batch.Items()
	summary := &BatchSummary{Total: len(items)}
	if len(items) == 0 {
		return summary, nil
	}

	limiter := rate.NewLimiter(rate.Limit(e.opts.RateLimit), 1)
	jobs := make(chan UploadItem, len(items))
	results := make(chan ItemUpdate, len(items))

	var wg sync.WaitGroup
	for i := 0; i < e.opts.NumWorkers; i++ {
		wg.Add(1)
		go e.uploadWorker(ctx, &wg, limiter, jobs, results, updates)
	}

	for _, item := range items {
		jobs <- item
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	for res := range results {
		// Terminal updates are delivered on both channels; results feeds
		// the summary, updates feeds the live display.
		sendUpdate(updates, res)
		if res.Status == StatusSucceeded {
			summary.Succeeded++
		} else {
			summary.Failed++
		}
	}

	return summary, nil
}

// uploadWorker drains the jobs channel, driving one upload at a time.
func (e *UploadEngine) uploadWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan UploadItem,
	results chan<- ItemUpdate,
	updates chan<- ItemUpdate,
) {
	defer wg.Done()

	for item := range jobs {
		if err := limiter.Wait(ctx); err != nil {
			results <- ItemUpdate{ID: item.ID, Status: StatusFailed, Err: userMessage(shared.ClassifyTransport(err, e.parser.Name()))}
			continue
		}

		sendUpdate(updates, ItemUpdate{ID: item.ID, Status: StatusUploading, Progress: 0})

		candidate, err := e.parser.UploadResume(ctx, item.Path, func(pct int) {
			trySendUpdate(updates, ItemUpdate{ID: item.ID, Status: StatusUploading, Progress: pct})
		})

		if err != nil {
			results <- ItemUpdate{ID: item.ID, Status: StatusFailed, Err: userMessage(err)}
			continue
		}

		results <- ItemUpdate{ID: item.ID, Status: StatusSucceeded, Progress: 100, Candidate: candidate}
	}
}

// sendUpdate delivers an update, blocking until the consumer takes it.
// Used for status transitions, which must never be lost.
func sendUpdate(updates chan<- ItemUpdate, u ItemUpdate) {
	if updates == nil {
		return
	}
	updates <- u
}

// trySendUpdate delivers a progress tick without blocking; a full channel
// drops the tick rather than stalling the transfer.
func trySendUpdate(updates chan<- ItemUpdate, u ItemUpdate) {
	if updates == nil {
		return
	}
	select {
	case updates <- u:
	default:
	}
}

// userMessage flattens a classified error into the human-readable message
// stored on a failed UploadItem.
func userMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
