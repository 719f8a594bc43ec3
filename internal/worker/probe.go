package worker

import "time"

// ProbeFunc measures one endpoint and returns its latency.
type ProbeFunc func(url string) (time.Duration, error)

// ProbeResult is one finished probe, keyed by the probed URL.
type ProbeResult struct {
	URL     string
	Latency time.Duration
	Err     error
}

// ProbeWorker measures endpoint latency with coalesce-to-latest semantics:
// when requests queue up faster than probes complete, only the most recent
// request is honored and the stale ones are drained and discarded.
type ProbeWorker struct {
	reqCh chan string
	resCh chan ProbeResult
}

// StartProbe spawns the probe worker.
func StartProbe(probe ProbeFunc) *ProbeWorker {
	w := &ProbeWorker{
		reqCh: make(chan string, 16),
		resCh: make(chan ProbeResult, 16),
	}

	go func() {
		defer close(w.resCh)
		for url := range w.reqCh {
			// Coalesce to latest: honor only the newest queued request.
		drain:
			for {
				select {
				case next, ok := <-w.reqCh:
					if !ok {
						break drain
					}
					url = next
				default:
					break drain
				}
			}

			latency, err := probe(url)
			w.resCh <- ProbeResult{URL: url, Latency: latency, Err: err}
		}
	}()

	return w
}

// Submit enqueues a probe request keyed by url.
func (w *ProbeWorker) Submit(url string) {
	w.reqCh <- url
}

// TryRecv drains one result without blocking.
func (w *ProbeWorker) TryRecv() (ProbeResult, bool) {
	select {
	case res, ok := <-w.resCh:
		return res, ok
	default:
		return ProbeResult{}, false
	}
}

// Recv blocks until one result is available or the worker has shut down.
func (w *ProbeWorker) Recv() (ProbeResult, bool) {
	res, ok := <-w.resCh
	return res, ok
}

// Close stops the worker after the in-flight probe finishes.
func (w *ProbeWorker) Close() {
	close(w.reqCh)
}
