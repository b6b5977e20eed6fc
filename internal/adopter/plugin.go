package adopter

// EventPreAutoloadDump fires right before the autoloader is regenerated.
const EventPreAutoloadDump = "pre-autoload-dump"

// Plugin dispatches package manager events to an Adopter. Every event is
// handled at most once per Plugin.
type Plugin struct {
	adopter *Adopter
	handled map[string]bool
}

// NewPlugin creates a Plugin for adopter.
func NewPlugin(adopter *Adopter) *Plugin {
	return &Plugin{
		adopter: adopter,
		handled: make(map[string]bool),
	}
}

// Events lists the subscribed event names.
func (p *Plugin) Events() []string {
	return []string{EventPreAutoloadDump}
}

// Listen handles event. Unsubscribed events and repeated events return a
// nil result.
func (p *Plugin) Listen(event string, devMode bool) (*Result, error) {
	if event != EventPreAutoloadDump || p.handled[event] {
		return nil, nil
	}
	p.handled[event] = true

	return p.adopter.Adopt(devMode)
}

// Reset forgets handled events and the loaded configuration.
func (p *Plugin) Reset() {
	p.handled = make(map[string]bool)
	p.adopter.Reset()
}
