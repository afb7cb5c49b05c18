package observability

import (
	"sync"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
)

var (
	httpMetricsOnce sync.Once
	httpMetrics     echo.MiddlewareFunc
)

// HTTPMiddleware 요청 수, 지연 시간, 요청/응답 크기를 기록하는 echo 미들웨어.
// 수집기는 기본 레지스트리에 한 번만 등록되므로 서버를 여러 개 만들어도 같은 미들웨어를 공유합니다.
func HTTPMiddleware() echo.MiddlewareFunc {
	httpMetricsOnce.Do(func() {
		httpMetrics = echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
			Subsystem: namespace + "_http",
			Skipper: func(c echo.Context) bool {
				return c.Path() == "/metrics"
			},
		})
	})
	return httpMetrics
}
