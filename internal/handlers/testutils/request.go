package testutils

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

// PerformRequest Helper for performing JSON requests in tests.
func PerformRequest(router *gin.Engine, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	switch b := body.(type) {
	case nil:
		reqBody = &bytes.Buffer{}
	case string:
		reqBody = bytes.NewBufferString(b)
	default:
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			panic("failed to marshal request body: " + err.Error())
		}
		reqBody = bytes.NewBuffer(jsonBytes)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

// PerformFormRequest posts form as application/x-www-form-urlencoded.
func PerformFormRequest(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}
