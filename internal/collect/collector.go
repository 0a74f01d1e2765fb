package collect

import (
	"sync"

	"cclog/internal/compdb"
)

// Collector accumulates compilation database entries from many wrapper
// invocations and is the sole writer of the database file while the daemon
// runs. Entries arrive unordered (parallel builds give no arrival guarantees)
// and are de-duplicated on merge.
type Collector struct {
	writer *compdb.Writer

	mu      sync.Mutex
	pending []compdb.Entry

	quitOnce sync.Once
	quitChan chan struct{}
}

func MakeCollector(outputFileName string) *Collector {
	return &Collector{
		writer:   compdb.MakeWriter(outputFileName),
		pending:  make([]compdb.Entry, 0, 64),
		quitChan: make(chan struct{}),
	}
}

func (c *Collector) Add(entries []compdb.Entry) {
	if len(entries) == 0 {
		return
	}
	c.mu.Lock()
	c.pending = append(c.pending, entries...)
	c.mu.Unlock()
}

// Flush merges everything received so far into the database file.
// On failure the entries are put back, so the next flush retries them.
func (c *Collector) Flush() error {
	c.mu.Lock()
	batch := c.pending
	c.pending = make([]compdb.Entry, 0, 64)
	c.mu.Unlock()

	if len(batch) == 0 {
		return nil
	}

	if err := c.writer.Merge(batch); err != nil {
		c.mu.Lock()
		c.pending = append(batch, c.pending...)
		c.mu.Unlock()
		return err
	}

	logCollect.Info(1, "flushed entries", "count", len(batch), "file", c.writer.FileName())
	return nil
}

func (c *Collector) QuitGracefully(reason string) {
	c.quitOnce.Do(func() {
		logCollect.Info(0, "daemon quitting", "reason", reason)
		close(c.quitChan)
	})
}
