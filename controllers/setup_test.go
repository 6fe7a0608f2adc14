package controllers_test

import (
	"testing"

	"github.com/gin-gonic/gin"
	"tatvadirect/backend/config"
	"tatvadirect/backend/controllers"
	"tatvadirect/backend/controllers/testutils"
	"tatvadirect/backend/routes"
)

var _ controllers.Storage = (*testutils.MemoryStore)(nil)

func newRouter(t *testing.T) (*gin.Engine, *testutils.MemoryStore, config.Config) {
	t.Helper()
	return newRouterWith(t, testutils.Config())
}

func newRouterWith(t *testing.T, cfg config.Config) (*gin.Engine, *testutils.MemoryStore, config.Config) {
	t.Helper()
	store := testutils.NewMemoryStore()
	r := gin.New()
	routes.Register(r, cfg, store)
	return r, store, cfg
}
