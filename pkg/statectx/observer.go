package statectx

// Observer receives provider lifecycle events. Methods are called on the
// goroutine that renders or commits and must not block.
type Observer interface {
	ProviderMounted(name string)
	StateCommitted(name string, revision uint64)
	ProviderUnmounted(name string)
	WriteDropped(name string)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) ProviderMounted(string)        {}
func (NopObserver) StateCommitted(string, uint64) {}
func (NopObserver) ProviderUnmounted(string)      {}
func (NopObserver) WriteDropped(string)           {}

// Observers fans events out to every non-nil observer in order.
func Observers(obs ...Observer) Observer {
	var out multiObserver
	for _, o := range obs {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

type multiObserver []Observer

func (m multiObserver) ProviderMounted(name string) {
	for _, o := range m {
		o.ProviderMounted(name)
	}
}

func (m multiObserver) StateCommitted(name string, revision uint64) {
	for _, o := range m {
		o.StateCommitted(name, revision)
	}
}

func (m multiObserver) ProviderUnmounted(name string) {
	for _, o := range m {
		o.ProviderUnmounted(name)
	}
}

func (m multiObserver) WriteDropped(name string) {
	for _, o := range m {
		o.WriteDropped(name)
	}
}
