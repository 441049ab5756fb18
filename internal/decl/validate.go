package decl

import (
	"errors"
	"fmt"

	"fortio.org/safecast"
)

// Validate walks the arenas checking structural invariants. It returns nil
// when everything is consistent and otherwise joins every detected issue.
func (t *Table) Validate() error {
	var errs []error

	for idx := 1; idx < len(t.Scopes.data); idx++ {
		scopeID, err := toScopeID(idx)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		scope := &t.Scopes.data[idx]
		if scope.Kind == ScopeInvalid {
			errs = append(errs, fmt.Errorf("scope %d has invalid kind", scopeID))
		}
		if scope.Kind == ScopeGlobal && scope.Parent.IsValid() {
			errs = append(errs, fmt.Errorf("global scope %d has parent %d", scopeID, scope.Parent))
		}
		if scope.Parent.IsValid() {
			if int(scope.Parent) >= len(t.Scopes.data) || scope.Parent >= scopeID {
				errs = append(errs, fmt.Errorf("scope %d has invalid parent %d", scopeID, scope.Parent))
				continue
			}
			found := false
			for _, child := range t.Scopes.data[scope.Parent].Children {
				if child == scopeID {
					found = true
					break
				}
			}
			if !found {
				errs = append(errs, fmt.Errorf("scope %d parent %d missing backlink", scopeID, scope.Parent))
			}
		} else if scope.Kind != ScopeGlobal {
			errs = append(errs, fmt.Errorf("%s scope %d has no parent", scope.Kind, scopeID))
		}

		for _, child := range scope.Children {
			if int(child) >= len(t.Scopes.data) || child == scopeID {
				errs = append(errs, fmt.Errorf("scope %d has invalid child %d", scopeID, child))
				continue
			}
			if t.Scopes.data[child].Parent != scopeID {
				errs = append(errs, fmt.Errorf("scope %d child %d missing parent backlink", scopeID, child))
			}
		}

		errs = append(errs, t.validateOwner(scopeID, scope)...)

		if len(scope.Names) != len(scope.NameIndex) {
			errs = append(errs, fmt.Errorf("scope %d lists %d names but indexes %d", scopeID, len(scope.Names), len(scope.NameIndex)))
		}
		for _, name := range scope.Names {
			bucket, ok := scope.NameIndex[name]
			if !ok || len(bucket) == 0 {
				errs = append(errs, fmt.Errorf("scope %d name %d has an empty bucket", scopeID, name))
				continue
			}
			for _, id := range bucket {
				if t.Decls.Get(id) == nil {
					errs = append(errs, fmt.Errorf("scope %d name %d references missing declarable %d", scopeID, name, id))
				}
			}
		}
	}

	for idx := 1; idx < len(t.Decls.data); idx++ {
		d := t.Decls.data[idx]
		if int(d.ID()) != idx {
			errs = append(errs, fmt.Errorf("declarable at %d carries id %d", idx, d.ID()))
			continue
		}
		if t.Scopes.Get(d.ParentScope()) == nil {
			errs = append(errs, fmt.Errorf("%s %d has invalid parent scope %d", d.Kind(), d.ID(), d.ParentScope()))
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errors.Join(errs...)
}

func (t *Table) validateOwner(scopeID ScopeID, scope *Scope) []error {
	switch scope.Kind {
	case ScopeModule:
		m, ok := DynamicCast[*Module](t.Decls.Get(scope.Owner))
		if !ok || m.scope != scopeID {
			return []error{fmt.Errorf("module scope %d is not owned by its module", scopeID)}
		}
	case ScopeCallable:
		c, ok := DynamicCast[Callable](t.Decls.Get(scope.Owner))
		if !ok || c.BodyScope() != scopeID {
			return []error{fmt.Errorf("callable scope %d is not owned by its callable", scopeID)}
		}
	}
	return nil
}

func toScopeID(idx int) (ScopeID, error) {
	value, err := safecast.Conv[uint32](idx)
	if err != nil {
		return NoScopeID, fmt.Errorf("scope index %d overflow: %w", idx, err)
	}
	return ScopeID(value), nil
}
