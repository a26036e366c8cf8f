package sim

// ComponentBase gives a simulation object a stable Name(). Embed it in any
// type that implements Object.
type ComponentBase struct {
	name string
}

// NewComponentBase creates a ComponentBase with the given name.
func NewComponentBase(name string) ComponentBase {
	return ComponentBase{name: name}
}

// Name returns the component's name.
func (c *ComponentBase) Name() string {
	return c.name
}
