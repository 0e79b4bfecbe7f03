package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stackflow/pkg/observability"
)

// logHooks reports graph loading, compute passes and rendering at debug
// level.
type logHooks struct {
	logger *log.Logger
}

func (h logHooks) OnComputeStart(_ context.Context, graphID string, nodes int) {
	h.logger.Debug("computing", "graph", graphID, "nodes", nodes)
}

func (h logHooks) OnSortComplete(_ context.Context, graphID string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("sort failed", "graph", graphID, "duration", d, "err", err)
		return
	}
	h.logger.Debug("sort complete", "graph", graphID, "duration", d)
}

func (h logHooks) OnNodeComputed(_ context.Context, nodeID string, paramSets int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("node failed", "node", nodeID, "duration", d, "err", err)
		return
	}
	h.logger.Debug("node computed", "node", nodeID, "param_sets", paramSets, "duration", d)
}

func (h logHooks) OnComputeComplete(_ context.Context, graphID string, nodes int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("compute failed", "graph", graphID, "duration", d, "err", err)
		return
	}
	h.logger.Debug("compute complete", "graph", graphID, "nodes", nodes, "duration", d)
}

func (h logHooks) OnLoadStart(_ context.Context, path string) {
	h.logger.Debug("loading graph", "path", path)
}

func (h logHooks) OnLoadComplete(_ context.Context, path string, nodes, edges int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "path", path, "duration", d, "err", err)
		return
	}
	h.logger.Debug("load complete", "path", path, "nodes", nodes, "edges", edges, "duration", d)
}

func (h logHooks) OnRenderStart(_ context.Context, format string) {
	h.logger.Debug("rendering", "format", format)
}

func (h logHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "format", format, "duration", d, "err", err)
		return
	}
	h.logger.Debug("render complete", "format", format, "bytes", size, "duration", d)
}

// installHooks registers logHooks when debug logging is on.
func installHooks(l *log.Logger) {
	if l.GetLevel() > log.DebugLevel {
		return
	}
	h := logHooks{logger: l}
	observability.SetComputeHooks(h)
	observability.SetLoadHooks(h)
	observability.SetRenderHooks(h)
}
