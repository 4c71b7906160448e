package handlers_test

import (
	"encoding/json"
	"regexp"
	"sort"
	"strings"
	"testing"

	"github.com/SscSPs/access_governance_app/cmd/docs"
	"github.com/SscSPs/access_governance_app/internal/core/services"
	"github.com/SscSPs/access_governance_app/internal/handlers"
	"github.com/SscSPs/access_governance_app/internal/repositories/memory"
	"github.com/SscSPs/access_governance_app/internal/seed"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ginParam = regexp.MustCompile(`:([A-Za-z]+)`)

func TestSwaggerDocs_MatchRegisteredRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	fixtures, err := seed.Load()
	require.NoError(t, err)
	repos := memory.NewRepositoryProvider(memory.NewStore(fixtures), memory.NewSessionRepository(""))
	r := gin.New()
	require.NoError(t, handlers.RegisterRoutes(r, testConfig(), services.NewServiceContainer(testConfig(), repos)))

	raw := docs.SwaggerInfo.ReadDoc()
	var doc struct {
		BasePath string                                `json:"basePath"`
		Paths    map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	routed := map[string]bool{}
	for _, route := range r.Routes() {
		if !strings.HasPrefix(route.Path, doc.BasePath+"/") {
			continue
		}
		path := ginParam.ReplaceAllString(strings.TrimPrefix(route.Path, doc.BasePath), "{$1}")
		method := strings.ToLower(route.Method)
		routed[method+" "+path] = true
		_, ok := doc.Paths[path][method]
		assert.True(t, ok, "route %s %s has no swagger entry", route.Method, path)
	}
	for path, ops := range doc.Paths {
		for method := range ops {
			assert.True(t, routed[method+" "+path], "swagger entry %s %s has no route", method, path)
		}
	}

	// Paths are emitted in key order, as the generator writes them.
	var order []string
	for path := range doc.Paths {
		order = append(order, path)
	}
	sort.Strings(order)
	last := -1
	for _, path := range order {
		at := strings.Index(raw, `"`+path+`": {`)
		require.GreaterOrEqual(t, at, 0, path)
		assert.Greater(t, at, last, "path %s is out of order", path)
		last = at
	}
}
