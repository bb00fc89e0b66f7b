package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/ruimfonseca/nightowl/internal/push"
	"github.com/ruimfonseca/nightowl/internal/realtime"
)

// RealtimeMiddleware injects the broadcast hub into the request context.
func RealtimeMiddleware(publisher realtime.Publisher) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("realtime", publisher)
		c.Next()
	}
}

func GetPublisher(c *gin.Context) realtime.Publisher {
	publisher, exists := c.Get("realtime")
	if !exists {
		return nil
	}
	return publisher.(realtime.Publisher)
}

// NotifierMiddleware injects the push dispatcher into the request context.
func NotifierMiddleware(notifier push.Dispatcher) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("notifier", notifier)
		c.Next()
	}
}

func GetNotifier(c *gin.Context) push.Dispatcher {
	notifier, exists := c.Get("notifier")
	if !exists {
		return nil
	}
	return notifier.(push.Dispatcher)
}
