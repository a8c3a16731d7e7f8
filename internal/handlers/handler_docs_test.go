package handlers_test

import (
	"encoding/json"
	"strings"

	"github.com/SscSPs/buildledger/cmd/docs"
)

func (suite *HandlerTestSuite) TestEveryRouteIsDocumented() {
	var doc struct {
		BasePath string                    `json:"basePath"`
		Paths    map[string]map[string]any `json:"paths"`
	}
	suite.Require().NoError(json.Unmarshal([]byte(docs.SwaggerInfo.ReadDoc()), &doc))
	suite.Equal("/api/v1", doc.BasePath)

	documented := 0
	for _, route := range suite.router.Routes() {
		if !strings.HasPrefix(route.Path, doc.BasePath+"/") {
			continue
		}
		path := strings.TrimPrefix(route.Path, doc.BasePath)
		path = strings.ReplaceAll(path, ":id", "{id}")
		ops, ok := doc.Paths[path]
		if suite.True(ok, "undocumented path %s", path) {
			suite.Contains(ops, strings.ToLower(route.Method), "undocumented %s %s", route.Method, path)
			documented++
		}
	}
	suite.Equal(27, documented)
}
