package toolserver

import (
	"bufio"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/steveyegge/mind/internal/retrieval"
	"github.com/steveyegge/mind/internal/types"
)

func newTestServer() *Server {
	idx := retrieval.NewIndex(retrieval.NewHashEmbedder(retrieval.Dimension), retrieval.DefaultConfig())
	s := New(idx, nil)
	s.Now = func() time.Time { return time.Date(2025, 1, 20, 12, 0, 0, 0, time.UTC) }
	return s
}

func roundTrip(t *testing.T, s *Server, req Request) Response {
	t.Helper()
	reqLine, err := json.Marshal(req)
	require.NoError(t, err)

	var out strings.Builder
	err = s.Serve(context.Background(), strings.NewReader(string(reqLine)+"\n"), &out)
	require.NoError(t, err)

	var resp Response
	require.NoError(t, json.Unmarshal([]byte(firstLine(out.String())), &resp))
	return resp
}

func firstLine(s string) string {
	sc := bufio.NewScanner(strings.NewReader(s))
	sc.Scan()
	return sc.Text()
}

func TestServe_Parse(t *testing.T) {
	s := newTestServer()
	args, err := json.Marshal(ParseArgs{Text: "- Decided: use postgres\n", Source: "MEMORY.md"})
	require.NoError(t, err)

	resp := roundTrip(t, s, Request{Operation: OpParse, RequestID: "1", Args: args})
	assert.True(t, resp.Success)
	assert.Equal(t, "1", resp.RequestID)

	var result types.ParseResult
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	require.Len(t, result.Entities, 1)
	assert.Equal(t, types.KindDecision, result.Entities[0].Kind)
}

func TestServe_IndexAddSearchRoundTrip(t *testing.T) {
	s := newTestServer()

	addArgs, err := json.Marshal(IndexAddArgs{ID: "doc_1", Text: "postgres migration rollback plan"})
	require.NoError(t, err)
	resp := roundTrip(t, s, Request{Operation: OpIndexAdd, Args: addArgs})
	require.True(t, resp.Success)

	searchArgs, err := json.Marshal(IndexSearchArgs{Query: "postgres rollback", Mode: "keyword_only", TopK: 5})
	require.NoError(t, err)
	resp = roundTrip(t, s, Request{Operation: OpIndexSearch, Args: searchArgs})
	require.True(t, resp.Success)

	var results []types.SearchResult
	require.NoError(t, json.Unmarshal(resp.Data, &results))
	require.Len(t, results, 1)
	assert.Equal(t, "doc_1", results[0].ID)
}

func TestServe_IndexSizeAndContains(t *testing.T) {
	s := newTestServer()
	addArgs, err := json.Marshal(IndexAddArgs{ID: "doc_1", Text: "hello world"})
	require.NoError(t, err)
	require.True(t, roundTrip(t, s, Request{Operation: OpIndexAdd, Args: addArgs}).Success)

	sizeResp := roundTrip(t, s, Request{Operation: OpIndexSize})
	var size IndexSizeResult
	require.NoError(t, json.Unmarshal(sizeResp.Data, &size))
	assert.Equal(t, 1, size.Size)

	containsArgs, err := json.Marshal(IndexContainsArgs{ID: "doc_1"})
	require.NoError(t, err)
	containsResp := roundTrip(t, s, Request{Operation: OpIndexContains, Args: containsArgs})
	var contains IndexContainsResult
	require.NoError(t, json.Unmarshal(containsResp.Data, &contains))
	assert.True(t, contains.Contains)
}

func TestServe_RerankWithNilRerankerDegradesToSimple(t *testing.T) {
	s := newTestServer()
	for _, doc := range []struct{ id, text string }{
		{"a", "postgres rollback plan"},
		{"b", "unrelated filler text"},
	} {
		addArgs, err := json.Marshal(IndexAddArgs{ID: doc.id, Text: doc.text})
		require.NoError(t, err)
		require.True(t, roundTrip(t, s, Request{Operation: OpIndexAdd, Args: addArgs}).Success)
	}

	rerankArgs, err := json.Marshal(RerankArgs{Query: "postgres rollback", TopK: 2})
	require.NoError(t, err)
	resp := roundTrip(t, s, Request{Operation: OpRerank, Args: rerankArgs})
	require.True(t, resp.Success)

	var results []types.SearchResult
	require.NoError(t, json.Unmarshal(resp.Data, &results))
	require.NotEmpty(t, results)
	assert.Equal(t, "a", results[0].ID)
}

func TestServe_PrimerGenerate(t *testing.T) {
	s := newTestServer()
	args, err := json.Marshal(PrimerGenerateArgs{
		Project: types.Project{Goal: "demo"},
		Issues: []types.Issue{
			{ID: "iss_1", Title: "fix the thing", Severity: types.SeverityBlocking},
		},
	})
	require.NoError(t, err)

	resp := roundTrip(t, s, Request{Operation: OpPrimerGenerate, Args: args})
	require.True(t, resp.Success)

	var result types.PrimerResult
	require.NoError(t, json.Unmarshal(resp.Data, &result))
	require.Len(t, result.Issues, 1)
	assert.Equal(t, "iss_1", result.Issues[0].Issue.ID)
	assert.NotEmpty(t, result.Briefing)
}

func TestServe_UnknownOperation_ReturnsErrorNotCrash(t *testing.T) {
	s := newTestServer()
	resp := roundTrip(t, s, Request{Operation: "bogus"})
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "unknown operation")
}

func TestServe_MalformedLine_KeepsProcessingSubsequentLines(t *testing.T) {
	s := newTestServer()
	addArgs, err := json.Marshal(IndexAddArgs{ID: "x", Text: "hello"})
	require.NoError(t, err)
	validReq, err := json.Marshal(Request{Operation: OpIndexAdd, RequestID: "2", Args: addArgs})
	require.NoError(t, err)

	input := "{not json\n" + string(validReq) + "\n"
	var out strings.Builder
	err = s.Serve(context.Background(), strings.NewReader(input), &out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)

	var first, second Response
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &second))
	assert.False(t, first.Success)
	assert.True(t, second.Success)
	assert.Equal(t, "2", second.RequestID)
}
