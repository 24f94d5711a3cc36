package rounddomain

// TimeFor returns the answer time in seconds for a question passed passCount
// times. Only the field authoritative for the current mode is read; pass counts
// past the end of a dynamic sequence use its last level.
func (t TimePolicy) TimeFor(passCount int) int {
	if passCount <= 0 {
		return t.BaseTime
	}
	if t.AfterPassTimeMode == AfterPassTimeDynamic && len(t.AfterPassTime) > 0 {
		return t.AfterPassTime[min(passCount, len(t.AfterPassTime))-1]
	}
	if t.StaticAfterPassTime != nil {
		return *t.StaticAfterPassTime
	}
	return t.BaseTime
}

// Unlimited reports whether questions have no time limit.
func (t TimePolicy) Unlimited() bool { return t.BaseTime == Unlimited }

// PointsFor returns the points for a correct answer on a question passed
// passCount times.
func (s ScoringPolicy) PointsFor(passCount int) int {
	if passCount <= 0 {
		return s.Correct
	}
	if n := len(s.CorrectWhenPassedMultiple); n > 0 {
		return s.CorrectWhenPassedMultiple[min(passCount, n)-1]
	}
	if s.CorrectWhenPassed != nil {
		return *s.CorrectWhenPassed
	}
	return s.Correct
}

// PassPoints returns the points for passing, zero when unset.
func (s ScoringPolicy) PassPoints() int {
	if s.Pass == nil {
		return 0
	}
	return *s.Pass
}

// PassLimit returns the pass quota: zero when passing is disabled, Unlimited
// when passes are uncapped or do not spend the quota.
func (p PassPolicy) PassLimit() int {
	if !p.Enabled {
		return 0
	}
	if !p.ReducesPassQuota || p.MaxPasses == nil {
		return Unlimited
	}
	return *p.MaxPasses
}

// HintLimit returns the hint quota, Unlimited when hints are enabled without a cap,
// and zero when hints are disabled.
func (h HintPolicy) HintLimit() int {
	if !h.Enabled {
		return 0
	}
	if h.MaxHints == nil {
		return Unlimited
	}
	return *h.MaxHints
}
