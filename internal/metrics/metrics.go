// Package metrics holds Prometheus instruments used across the app.
// All collectors are registered with the global registry, so importing
// this package in main.go is enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Requests served, labelled by method and status.",
		},
		[]string{"method", "status"},
	)

	CourseInsertsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "course_inserts_total",
			Help: "Courses created through the admin interface.",
		})

	CourseUpdatesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "course_updates_total",
			Help: "Course edits saved through the admin interface.",
		})

	CourseArchivesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "course_archives_total",
			Help: "Courses soft-deleted through the admin interface.",
		})

	RegistrationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Registration forms submitted by visitors.",
		})
)

func init() {
	prometheus.MustRegister(
		HTTPRequestsTotal,
		CourseInsertsTotal,
		CourseUpdatesTotal,
		CourseArchivesTotal,
		RegistrationsTotal,
	)
}
