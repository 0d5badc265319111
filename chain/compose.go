package chain

// Stage is a reusable piece of a chain.
type Stage func(Pipeline) Pipeline

// Through composes stages into one, applied left to right. Stages are not
// called once the Pipeline has failed.
func Through(stages ...Stage) Stage {
	for _, s := range stages {
		if s == nil {
			panic("Through: stage cannot be nil")
		}
	}
	stages = append([]Stage(nil), stages...)
	return func(p Pipeline) Pipeline {
		for _, s := range stages {
			if p.err != nil {
				return p
			}
			p = s(p)
		}
		return p
	}
}

// Apply runs stages on p in order.
func Apply(p Pipeline, stages ...Stage) Pipeline {
	return Through(stages...)(p)
}
