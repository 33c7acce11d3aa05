package container

import (
	canonerrors "github.com/travel-diary/canon-engine/errors"
	"github.com/travel-diary/canon-engine/validation"
)

// RegisterCustomCheck wires a user-supplied table check into the
// container's validation substrate, keyed on one or more table names
// (spec §4.6's "decorator keyed on one or more table names"). The
// check runs as layer 4 whenever any of tableNames is validated.
func (c *Container) RegisterCustomCheck(tableNames []string, fn validation.CustomCheckFunc) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.substrate.Custom.Register(tableNames, fn)
	for _, name := range tableNames {
		c.validated[name] = ""
	}
}

// RunAllCustomChecks runs every registered custom check once, outside
// the per-table five-layer sequence, for ad hoc cross-table auditing.
func (c *Container) RunAllCustomChecks() []*canonerrors.CanonError {
	return c.substrate.Custom.RunAll(c)
}
