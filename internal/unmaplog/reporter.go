package unmaplog

import (
	"github.com/retroenv/retrogolib/set"
)

// Permission decides whether the environment issuing a report is allowed to
// produce log entries, for example not while a debugger inspects memory.
type Permission interface {
	AllowLogging() bool
}

type allow struct{}

func (allow) AllowLogging() bool {
	return true
}

// Allow permits every report.
var Allow Permission = allow{}

type key struct {
	write   bool
	address uint64
}

// Reporter throttles unmapped access reports of a single address space.
// Every distinct address and direction is reported once, up to limit
// distinct addresses. Everything else is only counted and handed to the sink
// as a summary on Flush. A limit of zero or less reports every distinct
// address.
type Reporter struct {
	space string
	sink  Sink
	limit int

	seen       set.Set[key]
	repeated   uint64
	suppressed uint64
	reported   uint64
}

// NewReporter returns a reporter for the named space.
func NewReporter(space string, sink Sink, limit int) *Reporter {
	return &Reporter{
		space: space,
		sink:  sink,
		limit: limit,
		seen:  set.New[key](),
	}
}

// Report handles a single access if perm allows logging.
func (r *Reporter) Report(perm Permission, access Access) {
	if perm != Allow && !perm.AllowLogging() {
		return
	}

	k := key{write: access.Write, address: access.Address}
	if r.seen.Contains(k) {
		r.repeated++
		return
	}
	if r.limit > 0 && len(r.seen) >= r.limit {
		r.suppressed++
		return
	}

	r.seen.Add(k)
	r.reported++
	r.sink.Unmapped(access)
}

// Flush hands the accumulated counters to the sink as a summary and resets
// them. Addresses that were reported stay known.
func (r *Reporter) Flush() {
	if r.repeated == 0 && r.suppressed == 0 {
		return
	}
	r.sink.Summary(Summary{
		Space:      r.space,
		Repeated:   r.repeated,
		Suppressed: r.suppressed,
	})
	r.repeated = 0
	r.suppressed = 0
}

// Stats returns the number of individually reported accesses and the
// counters pending for the next Flush.
func (r *Reporter) Stats() (reported uint64, pending Summary) {
	return r.reported, Summary{
		Space:      r.space,
		Repeated:   r.repeated,
		Suppressed: r.suppressed,
	}
}
