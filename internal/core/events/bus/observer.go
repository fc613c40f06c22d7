package bus

import (
	"time"

	"github.com/zeusync/wildcatch/internal/core/observability/log"
)

// LogObserver writes deliveries to a logger: every event at debug, handler
// failures at warn.
type LogObserver struct {
	log log.Log
}

var _ EventBusObserver = (*LogObserver)(nil)

func NewLogObserver(logger log.Log) *LogObserver {
	if logger == nil {
		logger = log.NewNop()
	}
	return &LogObserver{log: logger}
}

func (o *LogObserver) OnPublish(string, Event) {}

func (o *LogObserver) OnDelivered(eventType string, handlers int, err error, durationMicros int64) {
	took := time.Duration(durationMicros) * time.Microsecond
	if err != nil {
		o.log.Warn("event handler failed",
			log.String("event", eventType),
			log.Int("handlers", handlers),
			log.Duration("took", took),
			log.Error(err),
		)
		return
	}
	o.log.Debug("event delivered",
		log.String("event", eventType),
		log.Int("handlers", handlers),
		log.Duration("took", took),
	)
}
