// Package toolserver also hosts the dispatch loop that reads line-framed
// Requests from an io.Reader and writes line-framed Responses to an
// io.Writer, bridging the assistant host to the parser, index, reranker,
// and primer packages, grounded on the teacher's internal/rpc dispatch
// shape scaled down to this module's six operations.
package toolserver

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/steveyegge/mind/internal/parser"
	"github.com/steveyegge/mind/internal/primer"
	"github.com/steveyegge/mind/internal/retrieval"
	"github.com/steveyegge/mind/internal/types"
)

// Server dispatches tool-server requests against a parser, a retrieval
// index, and an optional reranker. Now defaults to time.Now and is
// overridable for deterministic tests. The index pointer is guarded by a
// mutex rather than exposed as a bare field, since a watch-triggered
// reindex (internal/watch) swaps it from a goroutine concurrently with
// Serve's dispatch loop reading it.
type Server struct {
	Parser   *parser.Parser
	Reranker retrieval.Reranker
	Now      func() time.Time

	mu    sync.RWMutex
	index *retrieval.Index
}

// New builds a Server with a fresh parser and the supplied index.
// reranker may be nil, in which case OpRerank degrades to
// retrieval.SimpleReranker.
func New(index *retrieval.Index, reranker retrieval.Reranker) *Server {
	return &Server{
		Parser:   parser.New(),
		index:    index,
		Reranker: reranker,
		Now:      time.Now,
	}
}

// Index returns the index currently in use.
func (s *Server) Index() *retrieval.Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// SetIndex atomically swaps in a freshly built index, e.g. after
// internal/watch detects a MEMORY.md change.
func (s *Server) SetIndex(index *retrieval.Index) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = index
}

// Serve reads one Request per line from r and writes one Response per
// line to w until r is exhausted or ctx is cancelled. A malformed request
// line produces an error Response rather than stopping the loop, so one
// bad line from the host never kills the session.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)
	enc := json.NewEncoder(w)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if isWhitespaceLine(line) {
			continue
		}

		var req Request
		if err := json.Unmarshal(line, &req); err != nil {
			if encErr := enc.Encode(Response{Success: false, Error: fmt.Sprintf("malformed request: %v", err)}); encErr != nil {
				return encErr
			}
			continue
		}

		resp := s.dispatch(ctx, req)
		resp.RequestID = req.RequestID
		if err := enc.Encode(resp); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func isWhitespaceLine(line []byte) bool {
	for _, b := range line {
		if b != ' ' && b != '\t' && b != '\r' {
			return false
		}
	}
	return true
}

func (s *Server) dispatch(ctx context.Context, req Request) Response {
	switch req.Operation {
	case OpParse:
		return s.handleParse(req.Args)
	case OpScanInline:
		return s.handleScanInline(req.Args)
	case OpIndexAdd:
		return s.handleIndexAdd(req.Args)
	case OpIndexRemove:
		return s.handleIndexRemove(req.Args)
	case OpIndexClear:
		return s.handleIndexClear()
	case OpIndexContains:
		return s.handleIndexContains(req.Args)
	case OpIndexSize:
		return s.handleIndexSize()
	case OpIndexSearch:
		return s.handleIndexSearch(ctx, req.Args)
	case OpRerank:
		return s.handleRerank(ctx, req.Args)
	case OpPrimerGenerate:
		return s.handlePrimerGenerate(req.Args)
	default:
		return errorResponse(fmt.Errorf("unknown operation %q", req.Operation))
	}
}

func (s *Server) handleParse(raw json.RawMessage) Response {
	var args ParseArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return errorResponse(fmt.Errorf("decoding parse args: %w", err))
	}
	result := s.Parser.Parse(args.Text, args.Source)
	return dataResponse(result)
}

func (s *Server) handleScanInline(raw json.RawMessage) Response {
	var args ScanInlineArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return errorResponse(fmt.Errorf("decoding scan_inline args: %w", err))
	}
	entities := s.Parser.ScanInline(args.Directory)
	return dataResponse(entities)
}

func (s *Server) handleIndexAdd(raw json.RawMessage) Response {
	var args IndexAddArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return errorResponse(fmt.Errorf("decoding index_add args: %w", err))
	}
	s.Index().Add(args.ID, args.Text, args.Metadata)
	return Response{Success: true}
}

func (s *Server) handleIndexRemove(raw json.RawMessage) Response {
	var args IndexRemoveArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return errorResponse(fmt.Errorf("decoding index_remove args: %w", err))
	}
	s.Index().Remove(args.ID)
	return Response{Success: true}
}

func (s *Server) handleIndexClear() Response {
	s.Index().Clear()
	return Response{Success: true}
}

func (s *Server) handleIndexContains(raw json.RawMessage) Response {
	var args IndexContainsArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return errorResponse(fmt.Errorf("decoding index_contains args: %w", err))
	}
	return dataResponse(IndexContainsResult{Contains: s.Index().Contains(args.ID)})
}

func (s *Server) handleIndexSize() Response {
	return dataResponse(IndexSizeResult{Size: s.Index().Size()})
}

func (s *Server) handleIndexSearch(ctx context.Context, raw json.RawMessage) Response {
	var args IndexSearchArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return errorResponse(fmt.Errorf("decoding index_search args: %w", err))
	}
	mode := types.SearchMode(args.Mode)
	if mode == "" {
		mode = types.ModeHybrid
	}
	results := s.Index().Search(ctx, args.Query, mode, args.TopK)
	return dataResponse(results)
}

func (s *Server) handleRerank(ctx context.Context, raw json.RawMessage) Response {
	var args RerankArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return errorResponse(fmt.Errorf("decoding rerank args: %w", err))
	}

	reranker := s.Reranker
	if reranker == nil {
		reranker = retrieval.SimpleReranker{}
	}

	results := s.Index().Search(ctx, args.Query, types.ModeHybrid, fetchWidth(args.TopK))
	reranked := reranker.Rerank(ctx, args.Query, results, args.TopK)
	return dataResponse(reranked)
}

// fetchWidth over-fetches candidates before reranking, the same
// FetchMultiplier-style widening the retrieval package applies to hybrid
// fusion, so the reranker has more than topK to choose from.
func fetchWidth(topK int) int {
	if topK <= 0 {
		return 0
	}
	return topK * 3
}

func (s *Server) handlePrimerGenerate(raw json.RawMessage) Response {
	var args PrimerGenerateArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return errorResponse(fmt.Errorf("decoding primer_generate args: %w", err))
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}

	result := primer.Generate(
		args.Project,
		args.PriorSession,
		args.Issues,
		args.Decisions,
		args.Edges,
		primer.AccessStats(args.AccessStats),
		now(),
	)
	return dataResponse(result)
}

func dataResponse(v any) Response {
	data, err := json.Marshal(v)
	if err != nil {
		return errorResponse(fmt.Errorf("encoding response data: %w", err))
	}
	return Response{Success: true, Data: data}
}

func errorResponse(err error) Response {
	return Response{Success: false, Error: err.Error()}
}
