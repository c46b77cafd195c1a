package board

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// postsTotal counts accepted posts.
// Labels: collection (questions, answers)
var postsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "querycloud",
	Subsystem: "board",
	Name:      "posts_total",
	Help:      "Questions and answers accepted",
}, []string{"collection"})
