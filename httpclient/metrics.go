/*
 *  MIT License
 *
 *  Copyright (c) 2020 Nicolas JUHEL
 *
 *  Permission is hereby granted, free of charge, to any person obtaining a copy
 *  of this software and associated documentation files (the "Software"), to deal
 *  in the Software without restriction, including without limitation the rights
 *  to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 *  copies of the Software, and to permit persons to whom the Software is
 *  furnished to do so, subject to the following conditions:
 *
 *  The above copyright notice and this permission notice shall be included in all
 *  copies or substantial portions of the Software.
 *
 *  THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 *  IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 *  FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 *  AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 *  LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 *  OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 *  SOFTWARE.
 *
 */

package httpclient

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gsk_httpclient_requests_total",
			Help: "Requests queued for send, by verb.",
		},
		[]string{"verb"},
	)
	requestErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gsk_httpclient_request_errors_total",
			Help: "Requests that completed with a transport or decode error instead of a response.",
		},
		[]string{"verb"},
	)
	responseLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gsk_httpclient_response_duration_seconds",
			Help:    "Time from Do to the matching response callback, by status code.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"status"},
	)
)

func init() {
	prometheus.MustRegister(requestsTotal, requestErrorsTotal, responseLatency)
}

func observeRequestSent(verb string) {
	requestsTotal.WithLabelValues(verb).Inc()
}

func observeResponseReceived(verb string, statusCode int, elapsed time.Duration, err error) {
	if err != nil {
		requestErrorsTotal.WithLabelValues(verb).Inc()
		return
	}
	responseLatency.WithLabelValues(strconv.Itoa(statusCode)).Observe(elapsed.Seconds())
}
