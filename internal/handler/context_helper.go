package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/rentall-dev/fleet-admin-api/internal/middleware"
	"github.com/rentall-dev/fleet-admin-api/internal/models"
	"github.com/rentall-dev/fleet-admin-api/internal/search"
	"github.com/rentall-dev/fleet-admin-api/internal/service"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func identityFromContext(c *gin.Context) service.RunnerIdentity {
	claims := claimsFromContext(c)
	if claims == nil {
		return service.RunnerIdentity{}
	}
	return service.RunnerIdentity{
		ClientID:   claims.ClientID,
		UserID:     claims.UserID,
		CustomerID: c.Query("customerId"),
	}
}

// searchQueryFrom folds the request's query string into a loose search
// query. page and size are reserved; every other parameter becomes a filter
// and the normalizer decides what survives.
func searchQueryFrom(c *gin.Context) search.Query {
	q := search.Query{Filters: make(map[string]interface{})}
	for key, values := range c.Request.URL.Query() {
		if len(values) == 0 {
			continue
		}
		switch key {
		case "page":
			if page, err := strconv.Atoi(values[0]); err == nil {
				q.Page = page
			}
		case "size":
			if size, err := strconv.Atoi(values[0]); err == nil {
				q.Size = size
			}
		default:
			q.Filters[key] = values[0]
		}
	}
	return q
}
