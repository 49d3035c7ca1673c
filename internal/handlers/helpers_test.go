// internal/handlers/helpers_test.go
package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// testLogger はテスト中のログ出力を抑制します
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newJSONRequest はJSONボディ付きのリクエストを作ります。
// body に string を渡すと生のペイロードとして送ります (壊れたJSONのテスト用)。
func newJSONRequest(t *testing.T, method, target string, body interface{}) *http.Request {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		if raw, ok := body.(string); ok {
			reqBody = strings.NewReader(raw)
		} else {
			data, err := json.Marshal(body)
			require.NoError(t, err)
			reqBody = bytes.NewBuffer(data)
		}
	}
	req, err := http.NewRequest(method, target, reqBody)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req
}

// decodeErrorCode はエラーレスポンスからエラーコードを取り出します
func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error.Code
}
