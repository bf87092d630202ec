package sim

// Phase is one gameplay step run by the scheduler each tick.
type Phase interface {
	Name() string
	Run(s *Store, ctx *Context)
}

// Scheduler runs its phases in a fixed order, once per tick.
// Every phase is gated on Playing: once a phase ends the game, the phases
// after it in the same tick are skipped as well.
type Scheduler struct {
	phases []Phase
}

// NewScheduler creates a scheduler running phases in the given order.
func NewScheduler(phases ...Phase) *Scheduler {
	return &Scheduler{phases: phases}
}

// Run executes one tick.
func (sc *Scheduler) Run(s *Store, ctx *Context) {
	for _, p := range sc.phases {
		if !ctx.Playing() {
			return
		}
		p.Run(s, ctx)
	}
}

// Names returns the phase names in execution order.
func (sc *Scheduler) Names() []string {
	names := make([]string, len(sc.phases))
	for i, p := range sc.phases {
		names[i] = p.Name()
	}
	return names
}
