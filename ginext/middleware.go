package ginext

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Harshal6927/advanced-alchemy/filters"
	"github.com/Harshal6927/advanced-alchemy/logger"
)

// DefaultFiltersKey is the context key the filter middleware stores the
// bound filter list under
const DefaultFiltersKey = "filters"

const makerKeySuffix = "::maker"

func makerKey(sessionKey string) string {
	return sessionKey + makerKeySuffix
}

// sessionMiddleware publishes the binding in the request context and resolves
// the session, if the request created one, once the handler chain is done
func (p *Plugin) sessionMiddleware(b *binding) gin.HandlerFunc {
	sessionKey := b.cfg.Session.SessionKey
	return func(c *gin.Context) {
		c.Set(b.cfg.Session.EngineKey, b.maker.Engine())
		c.Set(makerKey(sessionKey), b.maker)

		c.Next()

		v, ok := c.Get(sessionKey)
		if !ok {
			return
		}
		tx, ok := v.(*gorm.DB)
		if !ok || tx == nil {
			return
		}

		c.Set(sessionKey, (*gorm.DB)(nil))
		if err := b.maker.Finalize(tx, c.Writer.Status()); err != nil {
			p.log.Error("Failed to finalize session: ", err)
		}
	}
}

// ErrorHandler turns errors attached to the context into JSON responses when
// the handler chain did not write one itself. The last attached error decides
// the status
func ErrorHandler(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		status := HTTPStatus(err)
		if status >= http.StatusInternalServerError {
			log.Error("Request failed: ", err)
		}

		message := err.Error()
		c.JSON(status, ErrorResponse{Message: &message})
	}
}

// Filters binds the request query against a filter config and stores the
// aggregated filter list under DefaultFiltersKey. Invalid configs panic at
// registration time, unparseable query values abort the request with a 400
func Filters(cfg filters.Config) gin.HandlerFunc {
	binder, err := filters.For(cfg)
	if err != nil {
		panic(err.Error())
	}

	return func(c *gin.Context) {
		fs, err := binder.Bind(c.Request.URL.Query())
		if err != nil {
			message := err.Error()
			c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Message: &message})
			return
		}
		c.Set(DefaultFiltersKey, fs)
		c.Next()
	}
}
