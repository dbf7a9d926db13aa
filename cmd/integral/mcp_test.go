package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	integral "github.com/JpHernandez277/Pendientes-John"
	"github.com/JpHernandez277/Pendientes-John/internal/metrics"
)

func callMCP(t *testing.T, ctx context.Context, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	m := metrics.New(prometheus.NewRegistry())
	req := mcp.CallToolRequest{}
	req.Params.Name = name
	req.Params.Arguments = args
	res, err := toolHandler(integral.NewEngine(), m, name)(ctx, req)
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "content is %T", res.Content[0])
	return text.Text
}

func TestMCPTool_DefiniteIntegral(t *testing.T) {
	res := callMCP(t, context.Background(), "definite_integral", map[string]interface{}{
		"expr": "2*x + 1", "a": 0.0, "b": 2.0, "method": "symbolic",
	})
	assert.False(t, res.IsError)

	var resp integral.ToolResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &resp))
	result := resp.Result.(map[string]interface{})
	assert.Equal(t, "6", result["exact"])
	assert.Equal(t, 3.0, result["mean_value"])
}

func TestMCPTool_Errors(t *testing.T) {
	tests := []struct {
		name string
		tool string
		args map[string]interface{}
		want string
	}{
		{"missing expr", "indefinite_integral", map[string]interface{}{}, "expr"},
		{"kind prefix", "definite_integral", map[string]interface{}{"expr": "log(x)", "a": -2.0, "b": -1.0}, "domain: "},
		{"bounds", "definite_integral", map[string]interface{}{"expr": "x", "a": 1.0, "b": 1.0}, "lower bound must be less than upper bound"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callMCP(t, context.Background(), tt.tool, tt.args)
			assert.True(t, res.IsError)
			assert.Contains(t, resultText(t, res), tt.want)
		})
	}
}

func TestMCPTool_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := callMCP(t, ctx, "normalize", map[string]interface{}{"expr": "x^2"})
	assert.True(t, res.IsError)
	assert.Equal(t, "request cancelled", resultText(t, res))
}

func TestMCPTool_Examples(t *testing.T) {
	res := callMCP(t, context.Background(), "examples", nil)
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), `"antiderivative":"-cos(x)"`)
}

func TestMCPServer_ListsTools(t *testing.T) {
	s := newMCPServer(integral.NewEngine(), metrics.New(prometheus.NewRegistry()))
	ctx := context.Background()

	s.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2025-03-26","capabilities":{},"clientInfo":{"name":"test","version":"0"}}}`))
	msg := s.HandleMessage(ctx, []byte(`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`))
	raw, err := json.Marshal(msg)
	require.NoError(t, err)

	var out struct {
		Result struct {
			Tools []struct {
				Name string `json:"name"`
			} `json:"tools"`
		} `json:"result"`
	}
	require.NoError(t, json.Unmarshal(raw, &out))
	var names []string
	for _, tool := range out.Result.Tools {
		names = append(names, tool.Name)
	}
	assert.ElementsMatch(t, []string{"normalize", "definite_integral", "indefinite_integral", "sample", "examples"}, names)
}

func TestMCPHandler_ExposesMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	en := integral.NewEngine()
	srv := httptest.NewServer(newMCPHandler(newMCPServer(en, m), reg))
	defer srv.Close()

	req := mcp.CallToolRequest{}
	req.Params.Name = "normalize"
	req.Params.Arguments = map[string]interface{}{"expr": "ln(x)"}
	_, err := toolHandler(en, m, "normalize")(context.Background(), req)
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `integral_requests_total{method="",operation="normalize",outcome="ok"} 1`)
}

func TestMCPTool_WithoutMetrics(t *testing.T) {
	req := mcp.CallToolRequest{}
	req.Params.Name = "normalize"
	req.Params.Arguments = map[string]interface{}{"expr": "x^2"}
	res, err := toolHandler(integral.NewEngine(), nil, "normalize")(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), `"result":"x**2"`)
}
