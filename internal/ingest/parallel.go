package ingest

import (
	"sync"

	"vocabparse/internal/extract"
)

// ProgressCallback is called after each chunk of blocks is extracted.
type ProgressCallback func(done, total int)

// blockChunk is one worker job: a contiguous run of blocks.
type blockChunk struct {
	start  int
	blocks []RawBlock
}

// ParallelExtract analyzes blocks on a worker pool. Results are written back
// by block index, so the output order equals SequentialExtract's.
func ParallelExtract(
	blocks []RawBlock,
	x *extract.Extractor,
	workers int,
	chunkSize int,
	callback ProgressCallback,
) []extract.Analysis {
	if workers <= 1 || len(blocks) == 0 {
		return SequentialExtract(blocks, x)
	}
	if chunkSize <= 0 {
		chunkSize = len(blocks) / workers
		if chunkSize < 100 {
			chunkSize = 100
		}
	}

	var chunks []blockChunk
	for i := 0; i < len(blocks); i += chunkSize {
		end := i + chunkSize
		if end > len(blocks) {
			end = len(blocks)
		}
		chunks = append(chunks, blockChunk{start: i, blocks: blocks[i:end]})
	}

	analyses := make([]extract.Analysis, len(blocks))

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		done int
	)

	jobs := make(chan int, len(chunks))
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				chunk := chunks[idx]
				for i, b := range chunk.blocks {
					analyses[chunk.start+i] = x.Analyze(b.Text)
				}

				if callback != nil {
					mu.Lock()
					done++
					callback(done, len(chunks))
					mu.Unlock()
				}
			}
		}()
	}

	for i := range chunks {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return analyses
}
