package batch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Kamar-Folarin/ghost-vault/internal/config"
)

// Progress is a snapshot of a ProcessItems run
type Progress struct {
	TotalBatches     int       `json:"total_batches"`
	ProcessedBatches int       `json:"processed_batches"`
	TotalItems       int       `json:"total_items"`
	ProcessedItems   int       `json:"processed_items"`
	StartTime        time.Time `json:"start_time"`
	LastUpdateTime   time.Time `json:"last_update_time"`
	Errors           []string  `json:"errors,omitempty"`
}

// Processor handles batch processing of items with a bounded worker pool
type Processor[T any] struct {
	config     config.BatchConfig
	statusChan chan Progress
	mu         sync.Mutex
}

// NewProcessor creates a new batch processor
func NewProcessor[T any](cfg config.BatchConfig) *Processor[T] {
	if cfg.Size <= 0 {
		cfg.Size = 100
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Processor[T]{
		config:     cfg,
		statusChan: make(chan Progress, 1),
	}
}

// ProcessItems splits items into batches and runs processFn on each, at most
// Workers at a time. Every batch is attempted; the first failure is returned.
func (p *Processor[T]) ProcessItems(ctx context.Context, items []T, processFn func(ctx context.Context, batch []T) error) error {
	totalItems := len(items)
	if totalItems == 0 {
		return nil
	}

	batchSize := p.config.Size
	totalBatches := (totalItems + batchSize - 1) / batchSize
	progress := Progress{
		TotalBatches:   totalBatches,
		TotalItems:     totalItems,
		StartTime:      time.Now(),
		LastUpdateTime: time.Now(),
	}

	p.updateProgress(progress)

	workerChan := make(chan struct{}, p.config.Workers)
	var wg sync.WaitGroup
	var processErr error
	var mu sync.Mutex

dispatch:
	for i := 0; i < totalBatches; i++ {
		select {
		case <-ctx.Done():
			mu.Lock()
			progress.Errors = append(progress.Errors, ctx.Err().Error())
			if processErr == nil {
				processErr = ctx.Err()
			}
			mu.Unlock()
			break dispatch
		case workerChan <- struct{}{}:
			wg.Add(1)
			go func(batchNum int) {
				defer wg.Done()
				defer func() { <-workerChan }()

				start := batchNum * batchSize
				end := min(start+batchSize, totalItems)
				batch := items[start:end]

				err := p.processBatchWithRetry(ctx, batch, processFn)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					if processErr == nil {
						processErr = err
					}
					progress.Errors = append(progress.Errors, err.Error())
				} else {
					progress.ProcessedBatches++
					progress.ProcessedItems += len(batch)
				}
				progress.LastUpdateTime = time.Now()
				p.updateProgress(progress)
			}(i)

			if p.config.BatchDelay > 0 && i < totalBatches-1 {
				select {
				case <-ctx.Done():
				case <-time.After(p.config.BatchDelay):
				}
			}
		}
	}

	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	p.updateProgress(progress)
	return processErr
}

// GetProgress returns the progress channel. It always holds the latest snapshot.
func (p *Processor[T]) GetProgress() <-chan Progress {
	return p.statusChan
}

// processBatchWithRetry processes a batch with linear backoff between attempts
func (p *Processor[T]) processBatchWithRetry(ctx context.Context, batch []T, processFn func(ctx context.Context, batch []T) error) error {
	var lastErr error
	for retry := 0; retry <= p.config.MaxRetries; retry++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := processFn(ctx, batch)
		if err == nil {
			return nil
		}
		lastErr = err

		if retry < p.config.MaxRetries {
			backoff := time.Duration(float64(p.config.BatchDelay) * float64(retry+1))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}
	}

	return fmt.Errorf("failed to process batch after %d retries: %w", p.config.MaxRetries, lastErr)
}

// updateProgress replaces the buffered snapshot with progress
func (p *Processor[T]) updateProgress(progress Progress) {
	p.mu.Lock()
	defer p.mu.Unlock()

	progress.Errors = append([]string(nil), progress.Errors...)
	select {
	case p.statusChan <- progress:
	default:
		<-p.statusChan
		p.statusChan <- progress
	}
}
