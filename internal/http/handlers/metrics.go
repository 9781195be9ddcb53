package handlers

import "github.com/prometheus/client_golang/prometheus"

var todoDeleteFailures = prometheus.NewCounter(prometheus.CounterOpts{
	Name: "todo_delete_failures_total",
	Help: "Delete requests answered with the failure outcome",
})

func init() {
	prometheus.MustRegister(todoDeleteFailures)
}
