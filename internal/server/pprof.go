package server

import (
	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StartPprofServer exposes the profiling endpoints on their own listener,
// kept off the public port so only operators with host access reach them.
func StartPprofServer(addr string, logger *zap.Logger) {
	pprofRouter := gin.New()
	pprof.Register(pprofRouter)

	go func() {
		logger.Info("Profiling endpoints listening", zap.String("addr", addr))
		if err := pprofRouter.Run(addr); err != nil {
			logger.Error("Profiling server stopped", zap.Error(err))
		}
	}()
}
