package model

// AllModels lists every persisted entity, in migration order. main and the
// test helpers both migrate from this slice so the two never drift apart.
var AllModels = []interface{}{
	&Patient{},
	&Staff{},
	&Medicine{},
	&Stock{},
	&Checkup{},
	&CheckupMedicine{},
	&Session{},
	&AuditLog{},
}
