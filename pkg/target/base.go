package target

// BaseTarget provides the feature-flag bookkeeping shared by every
// concrete target, the way the teacher's BaseBackend centralizes common
// backend state. Concrete targets embed this and override only what makes
// them different.
type BaseTarget struct {
	features map[string]bool
}

// NewBaseTarget returns a BaseTarget with every optional feature starting
// unsupported; concrete targets turn on what they actually implement.
func NewBaseTarget() BaseTarget {
	return BaseTarget{features: make(map[string]bool)}
}

// SetFeature records whether this target implements feature.
func (b *BaseTarget) SetFeature(feature string, supported bool) {
	b.features[feature] = supported
}

// CheckFeature reports whether this target implements feature.
func (b *BaseTarget) CheckFeature(feature string) bool {
	return b.features[feature]
}
