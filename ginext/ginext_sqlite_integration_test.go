//go:build integration
// +build integration

package ginext

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harshal6927/advanced-alchemy/base"
	"github.com/Harshal6927/advanced-alchemy/config"
	"github.com/Harshal6927/advanced-alchemy/dberrors"
	"github.com/Harshal6927/advanced-alchemy/filters"
	"github.com/Harshal6927/advanced-alchemy/internal/testutil"
	"github.com/Harshal6927/advanced-alchemy/repository"
)

type note struct {
	base.BigIntAuditBase
	Body string
}

func newTestConfig(commitMode string) *Config {
	dbs := config.NewDatabaseSettings()
	dbs.DSN = fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	ss := config.NewSessionSettings()
	ss.CommitMode = commitMode
	ss.CreateAll = true

	reg := base.NewRegistry()
	reg.Register(base.DefaultBindKey, &note{})

	return &Config{Database: *dbs, Session: *ss, Registry: reg}
}

func setupApp(t *testing.T, configs ...*Config) (*gin.Engine, *Plugin) {
	t.Helper()

	p, err := New(testutil.SetupTestLogger(t), configs...)
	require.NoError(t, err)
	require.NoError(t, p.Start(context.Background()))
	t.Cleanup(func() {
		require.NoError(t, p.Shutdown())
	})

	r := gin.New()
	require.NoError(t, p.Apply(r))
	return r, p
}

func serve(r *gin.Engine, method string, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func countNotes(t *testing.T, p *Plugin, engineKey string) int64 {
	t.Helper()

	var n int64
	require.NoError(t, p.Engine(engineKey).Model(&note{}).Count(&n).Error)
	return n
}

func TestCommitOnSuccessStatus(t *testing.T) {
	r, p := setupApp(t, newTestConfig(config.CommitModeAutocommit))
	r.POST("/notes", func(c *gin.Context) {
		if err := Session(c).Create(&note{Body: "hello"}).Error; err != nil {
			Error(c, dberrors.Translate(err))
			return
		}
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	w := serve(r, http.MethodPost, "/notes")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 1, countNotes(t, p, config.DefaultEngineKey))
}

func TestRollbackOnErrorStatus(t *testing.T) {
	r, p := setupApp(t, newTestConfig(config.CommitModeAutocommit))
	r.POST("/notes", func(c *gin.Context) {
		require.NoError(t, Session(c).Create(&note{Body: "doomed"}).Error)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false})
	})

	w := serve(r, http.MethodPost, "/notes")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.EqualValues(t, 0, countNotes(t, p, config.DefaultEngineKey))
}

func TestRedirectRollsBackInAutocommitMode(t *testing.T) {
	r, p := setupApp(t, newTestConfig(config.CommitModeAutocommit))
	r.POST("/notes", func(c *gin.Context) {
		require.NoError(t, Session(c).Create(&note{Body: "moved"}).Error)
		c.Redirect(http.StatusFound, "/elsewhere")
	})

	w := serve(r, http.MethodPost, "/notes")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.EqualValues(t, 0, countNotes(t, p, config.DefaultEngineKey))
}

func TestRedirectCommitsInRedirectMode(t *testing.T) {
	r, p := setupApp(t, newTestConfig(config.CommitModeAutocommitRedirect))
	r.POST("/notes", func(c *gin.Context) {
		require.NoError(t, Session(c).Create(&note{Body: "moved"}).Error)
		c.Redirect(http.StatusFound, "/elsewhere")
	})

	w := serve(r, http.MethodPost, "/notes")
	assert.Equal(t, http.StatusFound, w.Code)
	assert.EqualValues(t, 1, countNotes(t, p, config.DefaultEngineKey))
}

func TestManualModeLeavesTransactionControl(t *testing.T) {
	r, p := setupApp(t, newTestConfig(config.CommitModeManual))
	r.POST("/notes", func(c *gin.Context) {
		require.NoError(t, Session(c).Create(&note{Body: "kept"}).Error)
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false})
	})

	w := serve(r, http.MethodPost, "/notes")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.EqualValues(t, 1, countNotes(t, p, config.DefaultEngineKey))
}

func TestSessionReusedWithinRequest(t *testing.T) {
	r, _ := setupApp(t, newTestConfig(config.CommitModeAutocommit))
	r.GET("/ping", func(c *gin.Context) {
		first := Session(c)
		second := Session(c)
		assert.Same(t, first, second)
		assert.NotSame(t, first, Engine(c))
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := serve(r, http.MethodGet, "/ping")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequestWithoutSessionAccess(t *testing.T) {
	r, p := setupApp(t, newTestConfig(config.CommitModeAutocommit))
	r.GET("/static", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w := serve(r, http.MethodGet, "/static")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, countNotes(t, p, config.DefaultEngineKey))
}

func TestErrorHandlerRollsBackMappedErrors(t *testing.T) {
	log := testutil.SetupTestLogger(t)

	r, p := setupApp(t, newTestConfig(config.CommitModeAutocommit))
	r.POST("/notes", func(c *gin.Context) {
		repo, err := RequestRepository[note](c, log)
		if err != nil {
			Error(c, err)
			return
		}
		require.NoError(t, repo.Add(c.Request.Context(), &note{Body: "orphan"}))

		if _, err := repo.Get(c.Request.Context(), 999); err != nil {
			Error(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	w := serve(r, http.MethodPost, "/notes")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "failed to fetch record")
	assert.EqualValues(t, 0, countNotes(t, p, config.DefaultEngineKey))
}

func TestMultipleBindings(t *testing.T) {
	primary := newTestConfig(config.CommitModeAutocommit)
	audit := newTestConfig(config.CommitModeAutocommit)
	audit.Session.SessionKey = "audit_session"
	audit.Session.EngineKey = "audit_engine"

	r, p := setupApp(t, primary, audit)
	r.POST("/notes", func(c *gin.Context) {
		require.NoError(t, Session(c).Create(&note{Body: "primary"}).Error)
		require.NoError(t, SessionByKey(c, "audit_session").Create(&note{Body: "audit"}).Error)
		c.JSON(http.StatusCreated, gin.H{"ok": true})
	})

	w := serve(r, http.MethodPost, "/notes")
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.EqualValues(t, 1, countNotes(t, p, config.DefaultEngineKey))
	assert.EqualValues(t, 1, countNotes(t, p, "audit_engine"))
}

func TestListEndToEnd(t *testing.T) {
	log := testutil.SetupTestLogger(t)

	r, p := setupApp(t, newTestConfig(config.CommitModeAutocommit))
	for _, body := range []string{"alpha", "beta", "gamma"} {
		require.NoError(t, p.Engine(config.DefaultEngineKey).Create(&note{Body: body}).Error)
	}

	cfg := filters.Config{
		PaginationType: filters.PaginationLimitOffset,
		PaginationSize: 2,
		Search:         "body",
		SortField:      "id",
	}
	r.GET("/notes", Filters(cfg), func(c *gin.Context) {
		repo, err := RequestRepository[note](c, log)
		if err != nil {
			Error(c, err)
			return
		}
		fs := BoundFilters(c)
		items, total, err := repo.ListAndCount(c.Request.Context(), fs...)
		if err != nil {
			Error(c, err)
			return
		}
		c.JSON(http.StatusOK, repository.Paginate(items, total, fs))
	})

	w := serve(r, http.MethodGet, "/notes")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":3`)
	assert.Contains(t, w.Body.String(), `"limit":2`)
	assert.Contains(t, w.Body.String(), "alpha")
	assert.NotContains(t, w.Body.String(), "gamma")

	w = serve(r, http.MethodGet, "/notes?searchString=beta")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)
	assert.Contains(t, w.Body.String(), "beta")
}
