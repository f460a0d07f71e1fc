package platform

// StubInput replays a script of intents, one per Update. Once the script runs out it keeps
// returning Idle with toggles cleared.
type StubInput struct {
	script  []Intent
	current Intent

	// Idle is returned after the script is exhausted.
	Idle Intent
}

// NewStubInput returns an input with an empty script.
func NewStubInput(script ...Intent) *StubInput {
	return &StubInput{script: script}
}

// Push appends intents to the script.
func (in *StubInput) Push(intents ...Intent) {
	in.script = append(in.script, intents...)
}

// Remaining is the number of scripted intents not yet consumed.
func (in *StubInput) Remaining() int {
	return len(in.script)
}

func (in *StubInput) Update() {
	if len(in.script) == 0 {
		in.current = in.Idle
		in.current.ClearToggles()
		return
	}
	in.current = in.script[0]
	in.script = in.script[1:]
}

func (in *StubInput) Intent() Intent {
	return in.current
}
