// Package middleware holds the gin middlewares shared by every route.
package middleware

import (
	"line-knowledge-assistant/pkg/log"
	"line-knowledge-assistant/pkg/metrics"
)

type Middleware struct {
	l       log.Logger
	metrics *metrics.Metrics
}

func New(l log.Logger, m *metrics.Metrics) Middleware {
	return Middleware{
		l:       l,
		metrics: m,
	}
}
