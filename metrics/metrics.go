// Package metrics holds the prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	NotesPosted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "notes_posted_total",
		Help: "Notes committed, including their group fan-out.",
	})
	MessagesPosted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "messages_posted_total",
		Help: "Chat messages committed.",
	})
	MembershipChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "membership_changes_total",
		Help: "Committed membership transitions by kind.",
	}, []string{"kind"})
	SweepRemovals = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sweep_removed_members_total",
		Help: "Members removed by maintenance jobs by reason.",
	}, []string{"reason"})
	SweepGroupActions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sweep_group_actions_total",
		Help: "Ownership transfers and group deletions performed by the sweeper.",
	}, []string{"action"})
	SweepFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sweep_failures_total",
		Help: "Per-group or per-user failures logged and skipped by maintenance jobs.",
	})
	Notifications = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "notifications_total",
		Help: "Push notification deliveries by outcome.",
	}, []string{"outcome"})
	UpstreamFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "upstream_failures_total",
		Help: "AI and scraping failures degraded to empty results.",
	}, []string{"service"})
)
