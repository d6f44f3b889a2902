// Package http contains the HTTP surface of the spatial server.
package http

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/aukilabs/go-tooling/pkg/errors"
	"github.com/aukilabs/go-tooling/pkg/logs"
)

// ListenAndServe starts the servers and blocks until all of them stopped.
//
// The servers are shut down together when ctx is done or as soon as one of them
// stops on its own, for example because its address is already in use. They
// are drained concurrently and get up to shutdownTimeout to do so. The error of
// the first server that failed is returned.
func ListenAndServe(ctx context.Context, shutdownTimeout time.Duration, servers ...*http.Server) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		failOnce sync.Once
		failure  error
	)

	for _, s := range servers {
		wg.Add(1)

		go func(s *http.Server) {
			defer wg.Done()
			defer cancel()

			logs.WithTag("addr", s.Addr).Info("starting server")

			err := s.ListenAndServe()
			if err == nil || errors.Is(err, http.ErrServerClosed) {
				logs.WithTag("addr", s.Addr).Info("stopping server")
				return
			}

			err = errors.New("server stopped").
				WithTag("addr", s.Addr).
				Wrap(err)
			logs.Warn(err)
			failOnce.Do(func() {
				failure = err
			})
		}(s)
	}

	<-ctx.Done()
	shutdown(shutdownTimeout, servers)
	wg.Wait()
	return failure
}

func shutdown(timeout time.Duration, servers []*http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var wg sync.WaitGroup
	for _, s := range servers {
		wg.Add(1)

		go func(s *http.Server) {
			defer wg.Done()

			if err := s.Shutdown(ctx); err != nil {
				logs.Warn(errors.New("shutting down the server failed").
					WithTag("addr", s.Addr).
					Wrap(err))
			}
		}(s)
	}
	wg.Wait()
}

// MetricsPathFormatter drops the path of requests answered with HTTP 301, 400,
// 404 or 405 so that they do not create new metric series. Entity query paths
// are kept as is since their parameters are in the query string.
func MetricsPathFormatter(statusCode int, path string) string {
	switch statusCode {
	case http.StatusMovedPermanently,
		http.StatusBadRequest,
		http.StatusNotFound,
		http.StatusMethodNotAllowed:
		return ""
	}

	return path
}
