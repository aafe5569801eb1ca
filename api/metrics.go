/*
 * This file is part of hh-records-logic.
 *
 * hh-records-logic is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * hh-records-logic is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with hh-records-logic.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package api

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// MetricsPath is where the prometheus metrics are served.
const MetricsPath = "/metrics"

var (
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hh_records_operations_total",
		Help: "Records operations handled by the API, by operation and result kind",
	}, []string{"operation", "result"})
)

// observe counts one finished operation. The result label is "ok" or the failure kind.
func observe(operation string, err error) {
	result := "ok"
	if err != nil {
		result = kindName(err)
		if result == "" {
			result = "error"
		}
	}
	operationsTotal.WithLabelValues(operation, result).Inc()
}

// RegisterMetrics serves the default prometheus registry on MetricsPath.
func RegisterMetrics(router EchoRouter) {
	router.GET(MetricsPath, echo.WrapHandler(promhttp.Handler()))
}
