package trackers

import (
	"time"

	"github.com/terraincognita07/ciclo/internal/daysync"
)

// Options are shared by every tracker built for one session.
type Options struct {
	Session  *Session
	Notifier Notifier
	Policy   daysync.Policy
	Clock    func() time.Time
	Location *time.Location
	Observer daysync.Observer
}

func (options Options) normalized() Options {
	if options.Session == nil {
		options.Session = NewSession()
	}
	if options.Notifier == nil {
		options.Notifier = discardNotifier{}
	}
	if options.Clock == nil {
		options.Clock = time.Now
	}
	if options.Location == nil {
		options.Location = time.Local
	}
	return options
}

func syncConfig[T any](options Options, table string, defaults func() T) daysync.Config[T] {
	return daysync.Config[T]{
		Table:    table,
		Default:  defaults,
		Policy:   options.Policy,
		Clock:    options.Clock,
		Location: options.Location,
		Observer: options.Observer,
	}
}
