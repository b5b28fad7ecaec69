package fieldscmd

// FeatureGates exposes runtime feature toggles required by the field command
// handlers. Callers supply closures reading Config.Features.Persistence so
// handlers stay decoupled from configuration.
type FeatureGates struct {
	PersistenceEnabled func() bool
}

func (g FeatureGates) persistenceEnabled() bool {
	if g.PersistenceEnabled == nil {
		return true
	}
	return g.PersistenceEnabled()
}
