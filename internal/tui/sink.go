package tui

// sink collects what the interaction manager reports during one Update.
type sink struct {
	status string
	prompt string
	done   func(float64, bool)
	dirty  bool

	// members is set by the object lists when membership or order changed.
	members bool
}

func (s *sink) Status(msg string) { s.status = msg }

func (s *sink) PromptHeight(prompt string, done func(float64, bool)) {
	s.prompt = prompt
	s.done = done
}

func (s *sink) Redraw() { s.dirty = true }

func (s *sink) listChanged() { s.members = true }

// answer hands the prompt result back and clears the pending prompt.
func (s *sink) answer(h float64, ok bool) {
	done := s.done
	s.prompt, s.done = "", nil
	if done != nil {
		done(h, ok)
	}
}
