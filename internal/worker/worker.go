// Package worker runs long-running discovery and install operations off
// the interactive foreground loop. Each worker owns one goroutine, one
// request channel, and one result channel; the foreground drains results
// non-blockingly each tick and matches them back by correlation key.
//
// There is no true cancellation: once dispatched, a request runs to
// completion, and "cancelling" only means ignoring the result when it
// arrives with a key the caller no longer cares about.
package worker

import (
	"strings"

	"github.com/smy-101/skillsync/internal/types"
)

// SkillsService is the service surface the skills worker drives.
type SkillsService interface {
	ListSkills() ([]types.Skill, error)
	Install(spec string, app types.AppType) (*types.InstalledSkill, error)
}

// ResultKind discriminates the two result payloads.
type ResultKind int

const (
	ResultDiscover ResultKind = iota
	ResultInstall
)

type skillsRequest struct {
	kind  ResultKind
	query string
	spec  string
	app   types.AppType
}

// SkillsResult is one finished operation. Key is the correlation key the
// request was submitted with: the query for discovery, the spec for
// installs.
type SkillsResult struct {
	Kind      ResultKind
	Key       string
	Skills    []types.Skill
	Installed *types.InstalledSkill
	Err       error
}

// SkillsWorker processes discovery and install requests sequentially, one
// in flight at a time.
type SkillsWorker struct {
	reqCh chan skillsRequest
	resCh chan SkillsResult
}

// StartSkills spawns the skills worker.
func StartSkills(service SkillsService) *SkillsWorker {
	w := &SkillsWorker{
		reqCh: make(chan skillsRequest, 16),
		resCh: make(chan SkillsResult, 16),
	}

	go func() {
		defer close(w.resCh)
		for req := range w.reqCh {
			switch req.kind {
			case ResultDiscover:
				skills, err := service.ListSkills()
				if err == nil {
					skills = filterSkills(skills, req.query)
				}
				w.resCh <- SkillsResult{
					Kind:   ResultDiscover,
					Key:    req.query,
					Skills: skills,
					Err:    err,
				}
			case ResultInstall:
				installed, err := service.Install(req.spec, req.app)
				w.resCh <- SkillsResult{
					Kind:      ResultInstall,
					Key:       req.spec,
					Installed: installed,
					Err:       err,
				}
			}
		}
	}()

	return w
}

// Discover enqueues a discovery request; query doubles as the correlation
// key and as a case-insensitive filter over the result list.
func (w *SkillsWorker) Discover(query string) {
	w.reqCh <- skillsRequest{kind: ResultDiscover, query: query}
}

// Install enqueues an install request keyed by spec.
func (w *SkillsWorker) Install(spec string, app types.AppType) {
	w.reqCh <- skillsRequest{kind: ResultInstall, spec: spec, app: app}
}

// TryRecv drains one result without blocking.
func (w *SkillsWorker) TryRecv() (SkillsResult, bool) {
	select {
	case res, ok := <-w.resCh:
		return res, ok
	default:
		return SkillsResult{}, false
	}
}

// Recv blocks until one result is available or the worker has shut down.
func (w *SkillsWorker) Recv() (SkillsResult, bool) {
	res, ok := <-w.resCh
	return res, ok
}

// Close stops the worker after it finishes the queued requests.
func (w *SkillsWorker) Close() {
	close(w.reqCh)
}

func filterSkills(skills []types.Skill, query string) []types.Skill {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return skills
	}
	out := skills[:0]
	for _, s := range skills {
		if strings.Contains(strings.ToLower(s.Name), query) ||
			strings.Contains(strings.ToLower(s.Directory), query) ||
			strings.Contains(strings.ToLower(s.Description), query) ||
			strings.Contains(strings.ToLower(s.Key), query) {
			out = append(out, s)
		}
	}
	return out
}
